package models

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LogInfo describes the login session on the core server.
type LogInfo struct {
	LogID      int    `json:"logID"`
	Username   string `json:"username"`
	LoginTime  string `json:"loginTime"`
	LogoutTime string `json:"logoutTime,omitempty"`
}

// LoginResult is returned by both login and refresh.
type LoginResult struct {
	Username     string  `json:"username"`
	FullName     string  `json:"fullName"`
	CompanyID    int     `json:"companyID"`
	CompanyCode  string  `json:"companyCode"`
	CompanyName  string  `json:"companyName"`
	AccessToken  string  `json:"accessToken" validate:"required"`
	RefreshToken string  `json:"refreshToken"`
	FlagActive   int     `json:"flagActive"`
	LogInfo      LogInfo `json:"logInfo"`
	// ExpiresIn is the access token lifetime in seconds when the server sends it.
	ExpiresIn *int `json:"expiresIn,omitempty"`
}

// IsActive reports whether the account is active.
func (r LoginResult) IsActive() bool { return r.FlagActive == 1 }

// Profile returns r without its tokens.
func (r LoginResult) Profile() LoginResult {
	r.AccessToken = ""
	r.RefreshToken = ""
	return r
}
