// Package omstest runs an in-process fake of the ESB OMS hosts for tests.
//
// One httptest server answers for all three hosts under the path prefixes
// /core, /api and /pos. Login and refresh mint HS256 JWTs; every other route
// is programmed by the test with Handle.
package omstest

import (
	"bytes"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/milan604/esb-oms/pkg/transport"
)

const (
	DefaultUsername = "oms-user"
	DefaultPassword = "oms-pass"

	CorePrefix      = "/core"
	APIPrefix       = "/api"
	MasterPOSPrefix = "/pos"

	HeaderRequestID = "X-Request-ID"
)

// Capture is what the server saw for one request.
type Capture struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Server is a fake ESB. The zero value is not usable; call New.
type Server struct {
	srv    *httptest.Server
	engine *gin.Engine

	username   string
	password   string
	secret     []byte
	tokenTTL   time.Duration
	expiresIn  *int
	loginDelay time.Duration
	limiter    *rate.Limiter

	logins    atomic.Int64
	refreshes atomic.Int64
	requests  atomic.Int64
	reject    atomic.Int64

	mu       sync.Mutex
	routes   map[string]gin.HandlerFunc
	hits     map[string]int
	captures map[string][]Capture
	static   map[string]bool
	revoked  map[string]bool
}

// Option configures a Server.
type Option func(*Server)

// WithUser sets the accepted username and password.
func WithUser(username, password string) Option {
	return func(s *Server) {
		s.username = username
		s.password = password
	}
}

// WithTokenTTL sets the lifetime of minted access tokens.
func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.tokenTTL = d }
}

// WithExpiresIn makes login and refresh report expiresIn seconds.
func WithExpiresIn(seconds int) Option {
	return func(s *Server) { s.expiresIn = &seconds }
}

// WithLoginDelay slows down login and refresh.
func WithLoginDelay(d time.Duration) Option {
	return func(s *Server) { s.loginDelay = d }
}

// WithRateLimit answers 429 with Retry-After once the token bucket is empty.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) { s.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithStaticToken accepts token on Bearer routes without a login.
func WithStaticToken(token string) Option {
	return func(s *Server) { s.static[token] = true }
}

// New starts a Server and stops it when t finishes.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		username: DefaultUsername,
		password: DefaultPassword,
		secret:   []byte(uuid.NewString()),
		tokenTTL: time.Hour,
		routes:   make(map[string]gin.HandlerFunc),
		hits:     make(map[string]int),
		captures: make(map[string][]Capture),
		static:   make(map[string]bool),
		revoked:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}

	engine := gin.New()
	engine.Use(requestID(), s.rateLimit())
	core := engine.Group(CorePrefix)
	core.POST("/auth/login", s.login)
	core.GET("/auth/refresh", s.refresh)
	engine.NoRoute(s.dispatch)
	s.engine = engine

	s.srv = httptest.NewServer(engine)
	t.Cleanup(s.srv.Close)
	return s
}

// URL is the root URL of the server.
func (s *Server) URL() string { return s.srv.URL }

func (s *Server) CoreURL() string      { return s.srv.URL + CorePrefix }
func (s *Server) APIURL() string       { return s.srv.URL + APIPrefix }
func (s *Server) MasterPOSURL() string { return s.srv.URL + MasterPOSPrefix }

// Hosts returns base URLs pointing at the server.
func (s *Server) Hosts() transport.Hosts {
	return transport.Hosts{Core: s.CoreURL(), API: s.APIURL(), MasterPOS: s.MasterPOSURL()}
}

// Client returns an http.Client for the server.
func (s *Server) Client() *http.Client { return s.srv.Client() }

// Handle programs the handler for method and path on host. Bearer auth is
// enforced on the core and API hosts, Basic auth on the Master POS host.
func (s *Server) Handle(host transport.Host, method, path string, h gin.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[routeKey(method, prefix(host)+path)] = h
}

// RejectNext answers the next n Bearer requests with 401 whatever the token.
func (s *Server) RejectNext(n int) { s.reject.Store(int64(n)) }

// Revoke makes token fail Bearer checks from now on.
func (s *Server) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = true
}

func (s *Server) Logins() int    { return int(s.logins.Load()) }
func (s *Server) Refreshes() int { return int(s.refreshes.Load()) }

// Requests counts every request, auth calls included.
func (s *Server) Requests() int { return int(s.requests.Load()) }

// Hits counts requests that reached the handler of method and path on host.
func (s *Server) Hits(host transport.Host, method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[routeKey(method, prefix(host)+path)]
}

// Captured returns the requests seen by the route, oldest first. Requests
// rejected by auth are included.
func (s *Server) Captured(host transport.Host, method, path string) []Capture {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Capture(nil), s.captures[routeKey(method, prefix(host)+path)]...)
}

// Last returns the most recent capture of the route.
func (s *Server) Last(host transport.Host, method, path string) (Capture, bool) {
	all := s.Captured(host, method, path)
	if len(all) == 0 {
		return Capture{}, false
	}
	return all[len(all)-1], true
}

func (s *Server) dispatch(c *gin.Context) {
	s.requests.Add(1)
	key := routeKey(c.Request.Method, c.Request.URL.Path)

	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	s.mu.Lock()
	h := s.routes[key]
	s.captures[key] = append(s.captures[key], Capture{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.Query(),
		Header: c.Request.Header.Clone(),
		Body:   body,
	})
	s.mu.Unlock()

	if h == nil {
		Fail(c, http.StatusNotFound, "EC0110", "route not found")
		return
	}

	var ok bool
	if strings.HasPrefix(c.Request.URL.Path, MasterPOSPrefix+"/") {
		ok = s.basicOK(c)
	} else {
		ok = s.bearerOK(c)
	}
	if !ok {
		return
	}

	s.mu.Lock()
	s.hits[key]++
	s.mu.Unlock()
	h(c)
}

func (s *Server) basicOK(c *gin.Context) bool {
	user, pass, ok := c.Request.BasicAuth()
	if !ok || user != s.username || pass != s.password {
		Fail(c, http.StatusUnauthorized, "EC03100001", "Invalid username or password")
		return false
	}
	return true
}

func (s *Server) bearerOK(c *gin.Context) bool {
	token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !found || token == "" {
		Fail(c, http.StatusUnauthorized, "EC03100032", "Unauthorized")
		return false
	}
	if s.reject.Load() > 0 && s.reject.Add(-1) >= 0 {
		Fail(c, http.StatusUnauthorized, "EC03100032", "Session expired")
		return false
	}

	s.mu.Lock()
	static, revoked := s.static[token], s.revoked[token]
	s.mu.Unlock()
	if static {
		return true
	}
	if revoked || !s.valid(token, "access") {
		Fail(c, http.StatusUnauthorized, "EC03100032", "Session expired")
		return false
	}
	return true
}

func (s *Server) login(c *gin.Context) {
	s.requests.Add(1)
	s.logins.Add(1)
	s.sleep(c)

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "EC0118", err.Error())
		return
	}
	if req.Username != s.username || req.Password != s.password {
		Fail(c, http.StatusUnauthorized, "EC03100001", "Invalid username or password")
		return
	}
	Result(c, s.session(""))
}

func (s *Server) refresh(c *gin.Context) {
	s.requests.Add(1)
	s.refreshes.Add(1)
	s.sleep(c)

	token, _ := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !s.valid(token, "refresh") {
		Fail(c, http.StatusUnauthorized, "EC03100032", "Refresh token expired")
		return
	}
	Result(c, s.session(token))
}

func (s *Server) sleep(c *gin.Context) {
	if s.loginDelay <= 0 {
		return
	}
	select {
	case <-time.After(s.loginDelay):
	case <-c.Request.Context().Done():
	}
}

// session mints a token pair. A non-empty refresh token is kept.
func (s *Server) session(refresh string) gin.H {
	access := s.mint("access", s.tokenTTL)
	if refresh == "" {
		refresh = s.mint("refresh", 24*time.Hour)
	}
	out := gin.H{
		"username":     s.username,
		"fullName":     "OMS Integration",
		"companyID":    1,
		"companyCode":  "ESB",
		"companyName":  "ESB Test Company",
		"accessToken":  access,
		"refreshToken": refresh,
		"flagActive":   1,
		"logInfo": gin.H{
			"logID":     1,
			"username":  s.username,
			"loginTime": time.Now().Format(time.DateTime),
		},
	}
	if s.expiresIn != nil {
		out["expiresIn"] = *s.expiresIn
	}
	return out
}

// Mint signs a token of kind "access" or "refresh" valid for ttl.
func (s *Server) Mint(kind string, ttl time.Duration) string { return s.mint(kind, ttl) }

func (s *Server) mint(kind string, ttl time.Duration) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": s.username,
		"typ": kind,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return signed
}

func (s *Server) valid(token, kind string) bool {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return false
	}
	typ, _ := claims["typ"].(string)
	return typ == kind
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter != nil && !s.limiter.Allow() {
			c.Header("Retry-After", "1")
			Fail(c, http.StatusTooManyRequests, "", "Too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}

// requestID echoes X-Request-ID, generating one when the client sent none.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}

// BasicHeader returns the Authorization value for Basic credentials.
func BasicHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func prefix(h transport.Host) string {
	switch h {
	case transport.HostAPI:
		return APIPrefix
	case transport.HostMasterPOS:
		return MasterPOSPrefix
	}
	return CorePrefix
}

func routeKey(method, path string) string { return method + " " + path }
