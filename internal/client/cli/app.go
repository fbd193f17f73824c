package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/devboard/internal/client/client"
	"github.com/dmitrijs2005/devboard/internal/client/config"
	"github.com/dmitrijs2005/devboard/internal/client/services"
	"github.com/dmitrijs2005/devboard/internal/client/session"
	"github.com/dmitrijs2005/devboard/internal/logging"

	_ "modernc.org/sqlite"
)

// Mode reflects the last known reachability of the backend. It only
// affects the prompt and status output; commands always try the network
// and report their own failures.
type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	client   client.Client
	sessions *session.Manager
	auth     services.AuthService
	Mode     Mode
	reader   *bufio.Reader
}

// NewApp assembles the client: local session cache, HTTP API client, and
// the auth service on top of both. A session cached from a previous run is
// restored here so the user does not have to log in again.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.CacheDSN)
	if err != nil {
		log.Error(ctx, "initializing session cache failed", "error", err)
		return nil, err
	}

	api := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)

	sessions := session.NewManager(db)
	if s, err := sessions.Restore(ctx); err != nil {
		log.Warn(ctx, "restoring cached session failed", "error", err)
	} else if s != nil {
		api.SetToken(s.Token)
	}

	auth := services.NewAuthService(api, sessions, log)

	return &App{
		config:   c,
		log:      log,
		client:   api,
		sessions: sessions,
		auth:     auth,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

// Run starts the command loop and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.auth.Close(ctx)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.sessions.Current()
	return ok
}

func (a *App) getStatus() string {
	s := ""
	if cur, ok := a.sessions.Current(); ok {
		s = cur.User.Email + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher periodically pings the server and flips Mode
// accordingly. It returns when ctx is cancelled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.auth.Ping(pingCtx)
			cancel()

			if err != nil {
				if a.Mode == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else {
				if a.Mode != ModeOnline {
					a.setMode(ModeOnline)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
