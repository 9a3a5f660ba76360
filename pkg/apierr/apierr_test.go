package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"message only", New(KindAPI, "boom"), "boom"},
		{"with code", New(KindAPI, "boom", WithCode("EC0118")), "boom [EC0118]"},
		{"with status", New(KindServer, "boom", WithStatus(502)), "boom (HTTP 502)"},
		{"all parts", New(KindNotFound, "missing", WithCode("EC0110"), WithStatus(404)), "missing [EC0110] (HTTP 404)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorIsMatchesKindSentinels(t *testing.T) {
	err := fmt.Errorf("menu lookup: %w", New(KindNotFound, "menu not found", WithStatus(404)))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrServer)
	assert.True(t, IsKind(err, KindNotFound))
	assert.Equal(t, 404, StatusCode(err))

	other := New(KindNotFound, "different message")
	assert.False(t, errors.Is(err, other), "only bare sentinels match by kind")
}

func TestErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("refresh rejected")
	err := New(KindAuthentication, "login failed", WithCause(cause))

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestFromTransport(t *testing.T) {
	timeout := FromTransport(context.DeadlineExceeded)
	assert.Equal(t, KindTimeout, timeout.Kind)
	assert.True(t, IsTransport(timeout))

	refused := FromTransport(errors.New("dial tcp 127.0.0.1:1: connect: connection refused"))
	assert.Equal(t, KindNetwork, refused.Kind)
	assert.True(t, IsTransport(refused))

	cancelled := FromTransport(context.Canceled)
	assert.ErrorIs(t, cancelled, context.Canceled)

	assert.Nil(t, FromTransport(nil))
	assert.False(t, IsTransport(New(KindServer, "x")))
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2024, 5, 20, 13, 0, 0, 0, time.UTC)

	assert.Equal(t, 7*time.Second, ParseRetryAfter("7", now))
	assert.Equal(t, time.Duration(0), ParseRetryAfter("", now))
	assert.Equal(t, time.Duration(0), ParseRetryAfter("-3", now))
	assert.Equal(t, time.Duration(0), ParseRetryAfter("soon", now))

	date := now.Add(90 * time.Second).Format(http.TimeFormat)
	assert.Equal(t, 90*time.Second, ParseRetryAfter(date, now))
}

func TestShapeMismatchKeepsBody(t *testing.T) {
	body := []byte(`{"result":"nope"}`)
	err := ShapeMismatch(200, body, errors.New("cannot decode"))

	require.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, body, err.Body)
	assert.Equal(t, 200, err.StatusCode)
	assert.Contains(t, err.Message, "cannot decode")
}
