package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// authenticated requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a client-generated id for request correlation.
const RequestIDHeaderName = "X-Request-Id"

// User-facing messages. Error text surfaced by the services layer is drawn
// from this list so forms and toasts stay consistent across commands.
const (
	MsgInvalidEmail         = "Please enter a valid email address."
	MsgIncorrectCredentials = "Incorrect email or password."
	MsgGenericFailure       = "Something went wrong. Please try again."
	MsgPasswordMismatch     = "Passwords do not match."
	MsgMissingResetToken    = "Reset link is invalid or expired."
	MsgFieldRequired        = "Required"
	MsgInvalidURL           = "Please enter a valid URL."

	// MsgResetRequested is reported for every outcome of a password reset
	// request, registered address or not, so responses cannot be used to
	// enumerate accounts.
	MsgResetRequested = "If that email is registered, you will receive reset instructions shortly."
)
