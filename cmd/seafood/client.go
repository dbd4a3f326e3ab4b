package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/todayseafood/seafood/internal/localstate"
	"github.com/todayseafood/seafood/internal/logging"
	"github.com/todayseafood/seafood/sdk"
	"github.com/todayseafood/seafood/sdk/restmachinery"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const sessionExpiredNotice = "재로그인이 필요합니다."

// session is one CLI invocation's view of the user's session: an API client
// whose cookie jar was restored from local state, and the local state itself.
type session struct {
	client      sdk.APIClient
	seafoodHome string
	apiAddress  string
	logger      *zap.Logger

	// notices receives messages meant for the user rather than the output
	notices    io.Writer
	expireOnce sync.Once

	mu    sync.Mutex
	state *localstate.State
	store *localstate.Store
	jar   *cookieJar
}

// sessionAction adapts a command that needs a session into a cli.ActionFunc.
// Local state is saved after the command runs, whether or not it succeeded.
func sessionAction(
	fn func(*cli.Context, *session) error,
) cli.ActionFunc {
	return func(c *cli.Context) error {
		s, err := getSession(c)
		if err != nil {
			return err
		}
		defer s.logger.Sync() // nolint: errcheck
		err = fn(c, s)
		if saveErr := s.save(); saveErr != nil {
			if err == nil {
				return saveErr
			}
			s.logger.Warn("error saving local state", zap.Error(saveErr))
		}
		return err
	}
}

func getSession(c *cli.Context) (*session, error) {
	env, err := getEnvironment()
	if err != nil {
		return nil, err
	}
	seafoodHome, err := env.seafoodHome()
	if err != nil {
		return nil, errors.Wrap(err, "error finding seafood home")
	}
	apiAddress := c.String(flagServer)
	if apiAddress == "" {
		cfg, err := getConfig(seafoodHome)
		if err != nil {
			return nil, errors.Wrap(err, "error retrieving configuration")
		}
		apiAddress = cfg.APIAddress
	}
	return newSession(
		seafoodHome,
		apiAddress,
		c.Bool(flagInsecure),
		logging.New(env.loggingConfig(c.Bool(flagDebug))),
	)
}

func newSession(
	seafoodHome string,
	apiAddress string,
	allowInsecure bool,
	logger *zap.Logger,
) (*session, error) {
	apiAddress = strings.TrimSuffix(apiAddress, "/")
	rootURL, err := url.Parse(apiAddress)
	if err != nil || rootURL.Scheme == "" || rootURL.Host == "" {
		return nil, errors.Errorf("invalid API server address %q", apiAddress)
	}
	store := localstate.NewStore(filepath.Join(seafoodHome, stateFileName))
	state, err := store.Load()
	if err != nil {
		return nil, err
	}
	jar := newCookieJar()
	cookies := state.HTTPCookies(time.Now())
	for _, cookie := range cookies {
		if cookie.Path == "" {
			cookie.Path = "/"
		}
	}
	jar.SetCookies(rootURL, cookies)

	s := &session{
		seafoodHome: seafoodHome,
		apiAddress:  apiAddress,
		logger:      logger,
		notices:     os.Stderr,
		state:       state,
		store:       store,
		jar:         jar,
	}
	s.client = sdk.NewAPIClient(
		apiAddress,
		&restmachinery.APIClientOptions{
			AllowInsecureConnections: allowInsecure,
			CookieJar:                jar,
			Logger:                   logger,
			OnSessionExpired:         s.expire,
		},
	)
	return s, nil
}

// expire forgets the logged in user once the API server has refused to
// refresh their access token. Concurrent requests may each see the refusal;
// the user is told only once.
func (s *session) expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireOnce.Do(func() {
		fmt.Fprintln(s.notices, sessionExpiredNotice)
	})
	s.state.Clear()
}

// requireLogin returns the current user's identifier or an error if nobody is
// logged in.
func (s *session) requireLogin() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.LoggedIn() {
		return 0, errors.New(
			"you are not logged in; please use `seafood login` to continue",
		)
	}
	return s.state.UserID, nil
}

// save persists local state, along with the refresh cookie if a user is still
// logged in.
func (s *session) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.LoggedIn() {
		s.state.SetCookies(s.jar.remembered())
	} else {
		s.state.Cookies = nil
	}
	return s.store.Save(s.state)
}
