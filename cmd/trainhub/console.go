package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/yigit/trainhub/internal/cache"
	"github.com/yigit/trainhub/internal/client"
	"github.com/yigit/trainhub/internal/config"
	"github.com/yigit/trainhub/internal/mutation"
	"github.com/yigit/trainhub/internal/pages"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
	"github.com/yigit/trainhub/internal/pkg/logger"
	"github.com/yigit/trainhub/internal/pkg/validation"
	"github.com/yigit/trainhub/internal/session"
	"github.com/yigit/trainhub/internal/viewmodel"
)

// cookieKey holds the server session cookie between invocations
const cookieKey = "cookies"

// ErrSignedOut is returned by commands that need a session
var ErrSignedOut = apperrors.NewCustomError(apperrors.ErrUnauthenticated, "not signed in, run `trainhub login` first")

// console is the state shared by one command invocation
type console struct {
	cfg       *config.Config
	logger    zerolog.Logger
	api       *client.Client
	jar       http.CookieJar
	persister session.Persister
	session   *session.Store
	cache     *cache.Cache
	recorder  *mutation.Recorder
	pages     *viewmodel.Pages
	out       io.Writer
}

func openConsole(c *cli.Context) (*console, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	level := logger.WarnLevel
	if c.Bool("verbose") {
		level = logger.DebugLevel
	}
	logger.Configure(logger.Config{Level: level, Pretty: true, Output: c.App.ErrWriter})
	lgr := logger.Component("console")

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	api, err := client.New(cfg.Client.BaseURL,
		client.WithHTTPClient(&http.Client{Jar: jar}),
		client.WithTimeout(cfg.RequestTimeout()),
		client.WithLogger(lgr),
	)
	if err != nil {
		return nil, err
	}

	persister, err := session.NewFilePersister(cfg.Client.SessionDir)
	if err != nil {
		return nil, err
	}

	var storeOpts []session.Option
	if !cfg.Client.DemoLogins {
		storeOpts = append(storeOpts, session.WithDemoAccounts(nil))
	}
	storeOpts = append(storeOpts, session.WithLogger(lgr))

	con := &console{
		cfg:       cfg,
		logger:    lgr,
		api:       client.NewClient(api),
		jar:       jar,
		persister: persister,
		cache:     cache.New(cache.WithRetry(cfg.Client.ReadRetries, cfg.RetryDelay()), cache.WithLogger(lgr)),
		recorder:  &mutation.Recorder{},
		out:       c.App.Writer,
	}
	con.session = session.NewStore(con.api.Auth, persister, storeOpts...)
	if err := con.session.Restore(); err != nil {
		return nil, err
	}
	con.restoreCookies()

	coordOpts := []mutation.Option{mutation.WithLogger(lgr)}
	if cfg.Client.InvalidateRelated {
		coordOpts = append(coordOpts, mutation.WithPolicy(mutation.Related{}))
	}
	coordinator := mutation.NewCoordinator(con.cache, mutation.Multi{mutation.LogNotifier{Logger: lgr}, con.recorder}, coordOpts...)

	viewmodel.RegisterLoaders(con.cache, con.api)
	con.pages = viewmodel.NewPages(con.api, con.cache, coordinator)
	return con, nil
}

// require resolves route for the current session
func (con *console) require(route session.Route) error {
	resolved, err := pages.Resolve(con.session, string(route))
	if err != nil {
		return err
	}
	if resolved == session.RouteLogin {
		return ErrSignedOut
	}
	return nil
}

func (con *console) apiURL() *url.URL {
	u, err := url.Parse(con.api.API.BaseURL())
	if err != nil {
		return &url.URL{}
	}
	return u
}

// saveCookies keeps the server session for the next invocation
func (con *console) saveCookies() {
	data, err := json.Marshal(con.jar.Cookies(con.apiURL()))
	if err != nil {
		con.logger.Warn().Err(err).Msg("failed to encode cookies")
		return
	}
	if err := con.persister.Save(cookieKey, data); err != nil {
		con.logger.Warn().Err(err).Msg("failed to persist cookies")
	}
}

func (con *console) restoreCookies() {
	data, err := con.persister.Load(cookieKey)
	if err != nil {
		if !errors.Is(err, session.ErrNoRecord) {
			con.logger.Warn().Err(err).Msg("failed to load cookies")
		}
		return
	}

	var cookies []*http.Cookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		con.logger.Warn().Err(err).Msg("discarding unreadable cookies")
		return
	}
	for _, ck := range cookies {
		ck.Path = "/"
	}
	con.jar.SetCookies(con.apiURL(), cookies)
}

func (con *console) forgetCookies() {
	if err := con.persister.Remove(cookieKey); err != nil {
		con.logger.Warn().Err(err).Msg("failed to remove cookies")
	}
}

// flush prints the notifications raised since the last call
func (con *console) flush() {
	for _, n := range con.recorder.Drain() {
		fmt.Fprintf(con.out, "[%s] %s\n", n.Level, n.Message)
	}
}

// describe adds the rejected fields to a validation error
func describe(err error) error {
	var fields validation.Errors
	if !errors.As(err, &fields) {
		return err
	}
	msgs := make([]string, len(fields))
	for i, f := range fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return fmt.Errorf("invalid input\n  %s", strings.Join(msgs, "\n  "))
}
