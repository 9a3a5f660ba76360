package auth

import (
	"time"

	"github.com/milan604/esb-oms/pkg/models"
)

// State is a read-only snapshot of the token state. Tokens themselves are
// not exposed.
type State struct {
	Static          bool
	HasAccessToken  bool
	HasRefreshToken bool
	ExpiresAt       time.Time
	LastRefreshedAt time.Time
}

type state struct {
	accessToken     string
	refreshToken    string
	expiresAt       time.Time
	lastRefreshedAt time.Time
	session         *models.LoginResult
}

// usable reports a token that stays valid for at least skew.
func (s *state) usable(now time.Time, skew time.Duration) bool {
	return s.accessToken != "" && now.Before(s.expiresAt.Add(-skew))
}

func (s *state) snapshot() State {
	return State{
		HasAccessToken:  s.accessToken != "",
		HasRefreshToken: s.refreshToken != "",
		ExpiresAt:       s.expiresAt,
		LastRefreshedAt: s.lastRefreshedAt,
	}
}
