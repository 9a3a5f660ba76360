package esb

import (
	"fmt"

	"github.com/milan604/esb-oms/pkg/config"
	"github.com/milan604/esb-oms/pkg/logger"
	"github.com/milan604/esb-oms/pkg/transport"
)

// Config keys read by NewFromConfig.
const (
	KeyUsername    = "username"
	KeyPassword    = "password"
	KeyStaticToken = "static_token"
	KeyEnvironment = "environment"
	KeyAutoRefresh = "auto_refresh"
	KeyTimeout     = "timeout"
	KeyExpirySkew  = "expiry_skew"
	KeyLogLevel    = "log.level"
	KeyLogEncoding = "log.encoding"
)

// SensitiveKeys are masked by config.MaskedSettings.
var SensitiveKeys = []string{KeyPassword, KeyStaticToken}

// NewFromConfig builds a Client from cfg. A logger is created when
// log.level is set; opts are applied last and win over cfg.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	env, err := transport.ParseEnvironment(cfg.GetStringD(KeyEnvironment, ""))
	if err != nil {
		return nil, fmt.Errorf("esb: %w", err)
	}

	base := []Option{
		WithEnvironment(env),
		WithCredentials(cfg.GetString(KeyUsername), cfg.GetString(KeyPassword)),
		WithStaticToken(cfg.GetString(KeyStaticToken)),
		WithAutoRefresh(cfg.GetBoolD(KeyAutoRefresh, true)),
		WithTimeout(cfg.GetDurationD(KeyTimeout, transport.DefaultTimeout)),
		WithExpirySkew(cfg.GetDurationD(KeyExpirySkew, -1)),
	}
	if level := cfg.GetString(KeyLogLevel); level != "" {
		log, err := logger.NewLogger(logger.LoggerOptions{
			Level:    level,
			Encoding: cfg.GetStringD(KeyLogEncoding, "console"),
		})
		if err != nil {
			return nil, fmt.Errorf("esb: creating logger: %w", err)
		}
		base = append(base, WithLogger(log))
	}

	return New(append(base, opts...)...)
}
