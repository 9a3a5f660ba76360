package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/milan604/esb-oms/pkg/apierr"
	"github.com/milan604/esb-oms/pkg/logger"
	"github.com/milan604/esb-oms/pkg/models"
	"github.com/milan604/esb-oms/pkg/observability"
	"github.com/milan604/esb-oms/pkg/transport"
)

const (
	// DefaultExpirySkew renews tokens this long before they expire.
	DefaultExpirySkew = 30 * time.Second
	// DefaultFlightTimeout bounds one renewal, refresh and login fallback included.
	DefaultFlightTimeout = time.Minute

	LoginPath   = "/auth/login"
	RefreshPath = "/auth/refresh"

	renewKey = "renew"
)

// Causes wrapped by Authentication errors from the manager.
var (
	ErrNotAuthenticated = errors.New("not authenticated: call Login first or enable auto refresh")
	ErrTokenExpired     = errors.New("access token expired and auto refresh is disabled")
	ErrRefreshFailed    = errors.New("token refresh failed")
)

type renewMode int

const (
	renewIfNeeded renewMode = iota
	renewRefresh
	renewLogin
)

// Manager owns the token state of one client. Renewals are single-flight:
// concurrent callers share one login or refresh and its outcome.
type Manager struct {
	creds         Credentials
	sender        transport.Sender
	autoRefresh   bool
	skew          time.Duration
	flightTimeout time.Duration
	now           func() time.Time
	log           logger.LogManager
	metrics       observability.Collector

	mu    sync.RWMutex
	st    state
	group singleflight.Group
}

var _ transport.TokenSource = (*Manager)(nil)

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithAutoRefresh enables renewal on demand. It is on by default.
func WithAutoRefresh(enabled bool) ManagerOption {
	return func(m *Manager) { m.autoRefresh = enabled }
}

// WithExpirySkew sets how long before expiry a token counts as expired.
func WithExpirySkew(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d >= 0 {
			m.skew = d
		}
	}
}

// WithFlightTimeout bounds a renewal that outlives the caller that started it.
func WithFlightTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.flightTimeout = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func WithLogger(l logger.LogManager) ManagerOption {
	return func(m *Manager) { m.log = logger.OrNop(l) }
}

func WithCollector(c observability.Collector) ManagerOption {
	return func(m *Manager) { m.metrics = observability.OrNop(c) }
}

// NewManager creates a Manager that sends auth calls through sender. No
// network call is made.
func NewManager(creds Credentials, sender transport.Sender, opts ...ManagerOption) *Manager {
	m := &Manager{
		creds:         creds,
		sender:        sender,
		autoRefresh:   true,
		skew:          DefaultExpirySkew,
		flightTimeout: DefaultFlightTimeout,
		now:           time.Now,
		log:           logger.NewNop(),
		metrics:       observability.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Token returns a valid access token, renewing it first when auto refresh
// is enabled.
func (m *Manager) Token(ctx context.Context) (string, error) {
	if m.creds.IsStatic() {
		return m.creds.token, nil
	}

	m.mu.RLock()
	st := m.st
	m.mu.RUnlock()
	if st.usable(m.now(), m.skew) {
		return st.accessToken, nil
	}

	if !m.autoRefresh {
		if st.accessToken == "" {
			return "", apierr.New(apierr.KindAuthentication, "not authenticated", apierr.WithCause(ErrNotAuthenticated))
		}
		return "", apierr.New(apierr.KindAuthentication, "access token expired", apierr.WithCause(ErrTokenExpired))
	}
	return m.renew(ctx, renewIfNeeded, "")
}

// Reauthenticate renews after the server rejected token rejected. If another
// caller already replaced it, the current token is returned without a call.
func (m *Manager) Reauthenticate(ctx context.Context, rejected string) (string, error) {
	if m.creds.IsStatic() {
		return "", apierr.New(apierr.KindAuthentication, "static token rejected")
	}
	token, err := m.renew(ctx, renewIfNeeded, rejected)
	if err == nil && token == rejected {
		// joined a flight that found the rejected token still current
		return m.renew(ctx, renewRefresh, rejected)
	}
	return token, err
}

// AutoRefresh reports whether a rejected token may be renewed.
func (m *Manager) AutoRefresh() bool {
	return m.autoRefresh && !m.creds.IsStatic()
}

// Login authenticates with username and password. It is a no-op for static
// tokens.
func (m *Manager) Login(ctx context.Context) error {
	if m.creds.IsStatic() {
		return nil
	}
	_, err := m.renew(ctx, renewLogin, "")
	return err
}

// Refresh renews the access token with the refresh token, falling back to a
// login once. It is a no-op for static tokens.
func (m *Manager) Refresh(ctx context.Context) error {
	if m.creds.IsStatic() {
		return nil
	}
	_, err := m.renew(ctx, renewRefresh, "")
	return err
}

// IsAuthenticated reports a static token or an unexpired access token.
func (m *Manager) IsAuthenticated() bool {
	if m.creds.IsStatic() {
		return true
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.st.accessToken != "" && m.now().Before(m.st.expiresAt)
}

// State returns a snapshot of the token state.
func (m *Manager) State() State {
	if m.creds.IsStatic() {
		return State{Static: true, HasAccessToken: true}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.st.snapshot()
}

// Session returns the profile of the last login or refresh, without tokens.
func (m *Manager) Session() (models.LoginResult, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.st.session == nil {
		return models.LoginResult{}, false
	}
	return m.st.session.Profile(), true
}

// renew joins or starts the single renewal flight. The flight runs detached
// from ctx so a cancelled waiter does not fail the others.
func (m *Manager) renew(ctx context.Context, mode renewMode, rejected string) (string, error) {
	ch := m.group.DoChan(renewKey, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.flightTimeout)
		defer cancel()
		return m.runFlight(fctx, mode, rejected)
	})

	select {
	case <-ctx.Done():
		return "", apierr.FromTransport(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (m *Manager) runFlight(ctx context.Context, mode renewMode, rejected string) (string, error) {
	m.mu.RLock()
	st := m.st
	m.mu.RUnlock()

	if mode == renewIfNeeded && st.usable(m.now(), m.skew) && st.accessToken != rejected {
		return st.accessToken, nil
	}

	if mode == renewLogin || st.refreshToken == "" {
		return m.login(ctx)
	}

	token, refreshErr := m.refresh(ctx, st.refreshToken)
	if refreshErr == nil {
		return token, nil
	}
	m.log.WarnFCtx(ctx, "token refresh failed, falling back to login: %v", refreshErr)

	token, loginErr := m.login(ctx)
	if loginErr != nil {
		return "", apierr.New(apierr.KindAuthentication, "token refresh and login fallback failed",
			apierr.WithCause(errors.Join(ErrRefreshFailed, refreshErr, loginErr)))
	}
	return token, nil
}

func (m *Manager) login(ctx context.Context) (string, error) {
	m.log.InfoFCtx(ctx, "logging in as %s", m.creds.Username())

	var result models.LoginResult
	issued := m.now()
	err := m.sender.Send(ctx, &transport.Request{
		Operation: "auth.login",
		Method:    http.MethodPost,
		Host:      transport.HostCore,
		Path:      LoginPath,
		Auth:      transport.AuthNone,
		Body:      m.creds.loginRequest(),
		Unwrap:    transport.UnwrapResult,
	}, &result)
	if err != nil {
		m.metrics.ObserveRenewal("login", "failure")
		m.log.ErrorFCtx(ctx, "login failed: %v", err)
		return "", asAuthentication("login failed", err)
	}

	m.metrics.ObserveRenewal("login", "success")
	m.store(&result, issued)
	m.log.InfoFCtx(ctx, "logged in as %s (%s)", result.Username, result.CompanyCode)
	return result.AccessToken, nil
}

func (m *Manager) refresh(ctx context.Context, refreshToken string) (string, error) {
	m.log.DebugFCtx(ctx, "refreshing access token")

	header := http.Header{}
	header.Set("Authorization", "Bearer "+refreshToken)

	var result models.LoginResult
	issued := m.now()
	err := m.sender.Send(ctx, &transport.Request{
		Operation: "auth.refresh",
		Method:    http.MethodGet,
		Host:      transport.HostCore,
		Path:      RefreshPath,
		Auth:      transport.AuthNone,
		Header:    header,
		Unwrap:    transport.UnwrapResult,
	}, &result)
	if err != nil {
		m.metrics.ObserveRenewal("refresh", "failure")
		return "", asAuthentication("token refresh failed", err)
	}

	m.metrics.ObserveRenewal("refresh", "success")
	if result.RefreshToken == "" {
		result.RefreshToken = refreshToken
	}
	m.store(&result, issued)
	m.log.DebugFCtx(ctx, "access token refreshed")
	return result.AccessToken, nil
}

func (m *Manager) store(result *models.LoginResult, issued time.Time) {
	profile := result.Profile()
	next := state{
		accessToken:     result.AccessToken,
		refreshToken:    result.RefreshToken,
		expiresAt:       expiresAt(result.AccessToken, result.ExpiresIn, issued),
		lastRefreshedAt: m.now(),
		session:         &profile,
	}

	m.mu.Lock()
	m.st = next
	m.mu.Unlock()
}

// asAuthentication keeps Authentication errors as they are and wraps any
// other failure in one, so errors.Is still finds the original kind.
func asAuthentication(msg string, err error) error {
	if apierr.IsKind(err, apierr.KindAuthentication) {
		return err
	}
	opts := []apierr.Option{apierr.WithCause(err)}
	if status := apierr.StatusCode(err); status != 0 {
		opts = append(opts, apierr.WithStatus(status))
	}
	return apierr.New(apierr.KindAuthentication, msg, opts...)
}
