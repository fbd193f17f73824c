package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/devboard/internal/client/client"
	"github.com/dmitrijs2005/devboard/internal/client/models"
	"github.com/dmitrijs2005/devboard/internal/client/session"
	"github.com/dmitrijs2005/devboard/internal/common"
	"github.com/dmitrijs2005/devboard/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupSessionDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

// ---- fake client ----

// fakeClient implements client.Client for unit tests. Behavior is driven by
// the Err/Resp fields; calls and arguments are recorded for assertions.
type fakeClient struct {
	token string

	LoginResp  *client.AuthResponse
	LoginErr   error
	LoginCalls int
	LastLogin  [2]string // email, password

	SignUpResp  *client.AuthResponse
	SignUpErr   error
	SignUpCalls int
	LastSignUp  client.SignUpRequest

	ResetReqErr   error
	ResetReqCalls int

	ResetErr   error
	ResetCalls int
	LastReset  [2]string // token, newPassword

	Profile    *models.User
	ProfileErr error

	Onboarding    *models.OnboardingForm
	OnboardingErr error

	SaveErr    error
	SaveCalls  int
	SavedForms []models.OnboardingForm

	PingErr error
}

func (f *fakeClient) Close() error         { return nil }
func (f *fakeClient) SetToken(token string) { f.token = token }

func (f *fakeClient) Login(_ context.Context, email, password string) (*client.AuthResponse, error) {
	f.LoginCalls++
	f.LastLogin = [2]string{email, password}
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	f.token = f.LoginResp.Token
	return f.LoginResp, nil
}

func (f *fakeClient) SignUp(_ context.Context, req client.SignUpRequest) (*client.AuthResponse, error) {
	f.SignUpCalls++
	f.LastSignUp = req
	if f.SignUpErr != nil {
		return nil, f.SignUpErr
	}
	return f.SignUpResp, nil
}

func (f *fakeClient) RequestPasswordReset(_ context.Context, _ string) error {
	f.ResetReqCalls++
	return f.ResetReqErr
}

func (f *fakeClient) ResetPassword(_ context.Context, token, newPassword string) error {
	f.ResetCalls++
	f.LastReset = [2]string{token, newPassword}
	return f.ResetErr
}

func (f *fakeClient) FetchProfile(_ context.Context) (*models.User, error) {
	if f.ProfileErr != nil {
		return nil, f.ProfileErr
	}
	return f.Profile, nil
}

func (f *fakeClient) FetchOnboarding(_ context.Context) (*models.OnboardingForm, error) {
	if f.OnboardingErr != nil {
		return nil, f.OnboardingErr
	}
	return f.Onboarding, nil
}

func (f *fakeClient) SaveOnboarding(_ context.Context, form *models.OnboardingForm) error {
	f.SaveCalls++
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.SavedForms = append(f.SavedForms, *form)
	return nil
}

func (f *fakeClient) Ping(_ context.Context) error { return f.PingErr }

func newAuthFixture(t *testing.T, fc *fakeClient) (AuthService, *session.Manager) {
	t.Helper()
	mgr := session.NewManager(setupSessionDB(t))
	return NewAuthService(fc, mgr, discardLogger()), mgr
}

func authOK() *client.AuthResponse {
	return &client.AuthResponse{
		User:  models.User{ID: "u1", FirstName: "Jane", Email: "jane@example.com"},
		Token: "abc",
	}
}

// ---- Login ----

func TestLogin_MalformedEmail_NoNetworkCall(t *testing.T) {
	for _, email := range []string{"not-an-email", "missing-at.example.com", "user@host", ""} {
		fc := &fakeClient{}
		svc, _ := newAuthFixture(t, fc)

		s, err := svc.Login(context.Background(), email, []byte("x"))
		require.ErrorIs(t, err, common.ErrInvalidEmailAddress, "email %q", email)
		assert.Equal(t, common.MsgInvalidEmail, err.Error())
		assert.Nil(t, s)
		assert.Zero(t, fc.LoginCalls, "no network call may be made for %q", email)
	}
}

func TestLogin_InvalidCredentials_Distinguished(t *testing.T) {
	fc := &fakeClient{LoginErr: client.ErrInvalidCredentials}
	svc, mgr := newAuthFixture(t, fc)

	_, err := svc.Login(context.Background(), "jane@example.com", []byte("wrong"))
	require.ErrorIs(t, err, common.ErrIncorrectCredentials)
	assert.Equal(t, common.MsgIncorrectCredentials, err.Error())

	_, ok := mgr.Current()
	assert.False(t, ok)
}

func TestLogin_TransportFailure_Generic(t *testing.T) {
	fc := &fakeClient{LoginErr: client.ErrUnavailable}
	svc, _ := newAuthFixture(t, fc)

	_, err := svc.Login(context.Background(), "jane@example.com", []byte("pw"))
	require.ErrorIs(t, err, common.ErrSomethingWentWrong)
	assert.Equal(t, 1, fc.LoginCalls, "one attempt, no retry")
}

func TestLogin_Success_PopulatesSession(t *testing.T) {
	fc := &fakeClient{LoginResp: authOK()}
	svc, mgr := newAuthFixture(t, fc)

	s, err := svc.Login(context.Background(), "jane@example.com", []byte("secret123"))
	require.NoError(t, err)
	assert.Equal(t, "abc", s.Token)
	assert.Equal(t, [2]string{"jane@example.com", "secret123"}, fc.LastLogin)

	got, ok := mgr.Current()
	require.True(t, ok)
	assert.Equal(t, "u1", got.User.ID)
}

// ---- SignUp ----

func TestSignUp_LocalValidation_PreservesInput(t *testing.T) {
	fc := &fakeClient{}
	svc, _ := newAuthFixture(t, fc)

	res, err := svc.SignUp(context.Background(), SignUpInput{
		FirstName: "",
		LastName:  "Doe",
		Email:     "jane@",
		Password:  nil,
	})
	require.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, common.MsgFieldRequired, res.FieldErrors["firstName"])
	assert.Equal(t, common.MsgInvalidEmail, res.FieldErrors["email"])
	assert.Equal(t, common.MsgFieldRequired, res.FieldErrors["password"])

	// Typed values come back so the form can be redisplayed.
	assert.Equal(t, "Doe", res.LastName)
	assert.Equal(t, "jane@", res.Email)

	assert.Zero(t, fc.SignUpCalls)
	assert.Zero(t, fc.LoginCalls)
}

func TestSignUp_EmptyEmail_RequiredNotInvalid(t *testing.T) {
	svc, _ := newAuthFixture(t, &fakeClient{})

	res, err := svc.SignUp(context.Background(), SignUpInput{FirstName: "Jane", Password: []byte("x")})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, common.MsgFieldRequired, res.FieldErrors["email"])
}

func TestSignUp_ServerRejection_MessageVerbatim(t *testing.T) {
	fc := &fakeClient{SignUpErr: &client.APIError{StatusCode: 409, Message: "email already registered"}}
	svc, _ := newAuthFixture(t, fc)

	res, err := svc.SignUp(context.Background(), SignUpInput{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Password: []byte("secret123"),
	})
	require.Error(t, err)
	assert.Equal(t, "email already registered", err.Error())
	assert.False(t, res.AccountCreated)

	// Field values survive the round trip.
	assert.Equal(t, "Jane", res.FirstName)
	assert.Equal(t, "Doe", res.LastName)
	assert.Equal(t, "jane@example.com", res.Email)
}

func TestSignUp_ServerRejection_NoMessage_GenericFallback(t *testing.T) {
	fc := &fakeClient{SignUpErr: &client.APIError{StatusCode: 400}}
	svc, _ := newAuthFixture(t, fc)

	_, err := svc.SignUp(context.Background(), SignUpInput{
		FirstName: "Jane", Email: "jane@example.com", Password: []byte("secret123"),
	})
	require.ErrorIs(t, err, common.ErrSomethingWentWrong)
}

func TestSignUp_Success_AutoLoginWithSameCredentials(t *testing.T) {
	fc := &fakeClient{SignUpResp: authOK(), LoginResp: authOK()}
	svc, mgr := newAuthFixture(t, fc)

	res, err := svc.SignUp(context.Background(), SignUpInput{
		FirstName: "Jane", Email: "jane@example.com", Password: []byte("secret123"),
	})
	require.NoError(t, err)
	assert.True(t, res.AccountCreated)
	assert.True(t, res.SessionEstablished)
	assert.Empty(t, res.Message)

	assert.Equal(t, 1, fc.SignUpCalls)
	assert.Equal(t, 1, fc.LoginCalls, "signup must be followed by an automatic login")
	assert.Equal(t, [2]string{"jane@example.com", "secret123"}, fc.LastLogin)

	_, ok := mgr.Current()
	assert.True(t, ok)
}

func TestSignUp_Created_ButLoginFails_PartialSuccess(t *testing.T) {
	fc := &fakeClient{SignUpResp: authOK(), LoginErr: client.ErrUnavailable}
	svc, mgr := newAuthFixture(t, fc)

	res, err := svc.SignUp(context.Background(), SignUpInput{
		FirstName: "Jane", Email: "jane@example.com", Password: []byte("secret123"),
	})
	require.NoError(t, err, "a created account is not an error")
	assert.True(t, res.AccountCreated)
	assert.False(t, res.SessionEstablished)
	assert.NotEmpty(t, res.Message)

	_, ok := mgr.Current()
	assert.False(t, ok)
}

// ---- Logout ----

func TestLogout_DestroysSessionAndToken(t *testing.T) {
	fc := &fakeClient{LoginResp: authOK()}
	svc, mgr := newAuthFixture(t, fc)

	_, err := svc.Login(context.Background(), "jane@example.com", []byte("pw"))
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background()))

	_, ok := mgr.Current()
	assert.False(t, ok)
	assert.Empty(t, fc.token, "bearer token must be cleared")
}

// ---- Password reset ----

func TestRequestPasswordReset_MalformedEmail_NoNetworkCall(t *testing.T) {
	fc := &fakeClient{}
	svc, _ := newAuthFixture(t, fc)

	_, err := svc.RequestPasswordReset(context.Background(), "not-an-email")
	require.ErrorIs(t, err, common.ErrInvalidEmailAddress)
	assert.Zero(t, fc.ResetReqCalls)
}

func TestRequestPasswordReset_SameMessageForEveryOutcome(t *testing.T) {
	okClient := &fakeClient{}
	failClient := &fakeClient{ResetReqErr: client.ErrUnavailable}

	svcOK, _ := newAuthFixture(t, okClient)
	svcFail, _ := newAuthFixture(t, failClient)

	msgOK, err := svcOK.RequestPasswordReset(context.Background(), "jane@example.com")
	require.NoError(t, err)
	msgFail, err := svcFail.RequestPasswordReset(context.Background(), "jane@example.com")
	require.NoError(t, err)

	assert.Equal(t, common.MsgResetRequested, msgOK)
	assert.Equal(t, msgOK, msgFail, "outcomes must be indistinguishable")
}

func TestRequestPasswordReset_RepeatedCallsIndependent(t *testing.T) {
	fc := &fakeClient{}
	svc, _ := newAuthFixture(t, fc)
	ctx := context.Background()

	first, err1 := svc.RequestPasswordReset(ctx, "jane@example.com")
	second, err2 := svc.RequestPasswordReset(ctx, "jane@example.com")

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, fc.ResetReqCalls)
}

func TestResetPassword_FieldValidation(t *testing.T) {
	fc := &fakeClient{}
	svc, _ := newAuthFixture(t, fc)
	ctx := context.Background()

	_, err := svc.ResetPassword(ctx, "", []byte("a"), []byte("a"))
	require.ErrorIs(t, err, common.ErrMissingResetToken)

	_, err = svc.ResetPassword(ctx, "tok", nil, nil)
	require.ErrorIs(t, err, common.ErrFieldRequired)

	_, err = svc.ResetPassword(ctx, "tok", []byte("a"), []byte("b"))
	require.ErrorIs(t, err, common.ErrPasswordMismatch)

	assert.Zero(t, fc.ResetCalls, "field errors resolve before any network call")
}

func TestResetPassword_Success(t *testing.T) {
	fc := &fakeClient{}
	svc, _ := newAuthFixture(t, fc)

	msg, err := svc.ResetPassword(context.Background(), "tok-123", []byte("newpass"), []byte("newpass"))
	require.NoError(t, err)
	assert.NotEmpty(t, msg)
	assert.Equal(t, [2]string{"tok-123", "newpass"}, fc.LastReset)
}

func TestResetPassword_ServerMessageVerbatim(t *testing.T) {
	fc := &fakeClient{ResetErr: &client.APIError{StatusCode: 400, Message: "reset token expired"}}
	svc, _ := newAuthFixture(t, fc)

	_, err := svc.ResetPassword(context.Background(), "tok", []byte("a"), []byte("a"))
	require.Error(t, err)
	assert.Equal(t, "reset token expired", err.Error())
}

// ---- Profile refresh ----

func TestRefreshProfile_RequiresSession(t *testing.T) {
	svc, _ := newAuthFixture(t, &fakeClient{})

	_, err := svc.RefreshProfile(context.Background())
	require.ErrorIs(t, err, session.ErrNotAuthenticated)
}

func TestRefreshProfile_UpdatesSessionProfile(t *testing.T) {
	updated := models.User{ID: "u1", FirstName: "Janet", Email: "jane@example.com", EmailVerified: true}
	fc := &fakeClient{LoginResp: authOK(), Profile: &updated}
	svc, mgr := newAuthFixture(t, fc)

	_, err := svc.Login(context.Background(), "jane@example.com", []byte("pw"))
	require.NoError(t, err)

	u, err := svc.RefreshProfile(context.Background())
	require.NoError(t, err)
	assert.True(t, u.EmailVerified)

	got, _ := mgr.Current()
	assert.Equal(t, "Janet", got.User.FirstName)
	assert.Equal(t, "abc", got.Token, "token survives profile refresh")
}

func TestRefreshProfile_TokenInvalidated_DestroysSession(t *testing.T) {
	fc := &fakeClient{LoginResp: authOK(), ProfileErr: client.ErrUnauthorized}
	svc, mgr := newAuthFixture(t, fc)

	_, err := svc.Login(context.Background(), "jane@example.com", []byte("pw"))
	require.NoError(t, err)

	_, err = svc.RefreshProfile(context.Background())
	require.ErrorIs(t, err, session.ErrNotAuthenticated)

	_, ok := mgr.Current()
	assert.False(t, ok, "an invalidated token must drop the session entirely")
	assert.Empty(t, fc.token)
}
