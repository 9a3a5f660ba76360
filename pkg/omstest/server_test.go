package omstest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milan604/esb-oms/pkg/transport"
)

func do(t *testing.T, s *Server, method, url, auth string, body any) (*http.Response, Envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env Envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp, env
}

func login(t *testing.T, s *Server) (access, refresh string) {
	t.Helper()
	resp, env := do(t, s, http.MethodPost, s.CoreURL()+"/auth/login", "",
		gin.H{"username": DefaultUsername, "password": DefaultPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result, ok := env.Result.(map[string]any)
	require.True(t, ok)
	return result["accessToken"].(string), result["refreshToken"].(string)
}

func TestLoginAndBearerRoute(t *testing.T) {
	s := New(t)
	s.Handle(transport.HostAPI, http.MethodGet, "/ping", Reply("pong"))

	access, refresh := login(t, s)
	assert.NotEqual(t, access, refresh)
	assert.Equal(t, 1, s.Logins())

	resp, env := do(t, s, http.MethodGet, s.APIURL()+"/ping", "Bearer "+access, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", env.Result)

	resp, env = do(t, s, http.MethodGet, s.APIURL()+"/ping", "Bearer "+refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "EC03100032", env.Code)
	assert.Equal(t, 1, s.Hits(transport.HostAPI, http.MethodGet, "/ping"))
	assert.Len(t, s.Captured(transport.HostAPI, http.MethodGet, "/ping"), 2)
}

func TestLoginWrongPassword(t *testing.T) {
	s := New(t)
	resp, env := do(t, s, http.MethodPost, s.CoreURL()+"/auth/login", "",
		gin.H{"username": DefaultUsername, "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "fail", env.Status)
	assert.Equal(t, "EC03100001", env.Code)
}

func TestRefreshKeepsRefreshToken(t *testing.T) {
	s := New(t, WithExpiresIn(120))
	_, refresh := login(t, s)

	resp, env := do(t, s, http.MethodGet, s.CoreURL()+"/auth/refresh", "Bearer "+refresh, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := env.Result.(map[string]any)
	assert.Equal(t, refresh, result["refreshToken"])
	assert.Equal(t, float64(120), result["expiresIn"])
	assert.Equal(t, 1, s.Refreshes())
}

func TestRejectNextAndRevoke(t *testing.T) {
	s := New(t)
	s.Handle(transport.HostCore, http.MethodGet, "/report/x", Reply(1))
	access, _ := login(t, s)

	s.RejectNext(1)
	resp, _ := do(t, s, http.MethodGet, s.CoreURL()+"/report/x", "Bearer "+access, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = do(t, s, http.MethodGet, s.CoreURL()+"/report/x", "Bearer "+access, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	s.Revoke(access)
	resp, _ = do(t, s, http.MethodGet, s.CoreURL()+"/report/x", "Bearer "+access, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStaticTokenAndBasicAuth(t *testing.T) {
	s := New(t, WithStaticToken("fixed"))
	s.Handle(transport.HostAPI, http.MethodGet, "/a", Reply(true))
	s.Handle(transport.HostMasterPOS, http.MethodPost, "/b", ReplyJSON(http.StatusOK, []int{1}))

	resp, _ := do(t, s, http.MethodGet, s.APIURL()+"/a", "Bearer fixed", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, s, http.MethodPost, s.MasterPOSURL()+"/b", "Bearer fixed", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = do(t, s, http.MethodPost, s.MasterPOSURL()+"/b", BasicHeader(DefaultUsername, DefaultPassword), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, s.Logins())
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	s := New(t)
	resp, env := do(t, s, http.MethodGet, s.APIURL()+"/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "EC0110", env.Code)
}

func TestRateLimitAndRequestID(t *testing.T) {
	s := New(t, WithRateLimit(0.001, 1), WithStaticToken("fixed"))
	s.Handle(transport.HostAPI, http.MethodGet, "/a", Reply(true))

	req, err := http.NewRequest(http.MethodGet, s.APIURL()+"/a", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer fixed")
	req.Header.Set(HeaderRequestID, "req-1")
	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-1", resp.Header.Get(HeaderRequestID))

	resp, _ = do(t, s, http.MethodGet, s.APIURL()+"/a", "Bearer fixed", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))
}
