package transport

import (
	"fmt"
	"strings"
)

// Environment selects the set of ESB hosts a client talks to.
type Environment string

const (
	Production Environment = "production"
	Staging    Environment = "staging"
	StagingInt Environment = "staging_int"
)

// Host identifies which of the three ESB base URLs a request targets.
type Host int

const (
	HostCore Host = iota
	HostAPI
	HostMasterPOS
)

func (h Host) String() string {
	switch h {
	case HostCore:
		return "core"
	case HostAPI:
		return "api"
	case HostMasterPOS:
		return "master_pos"
	}
	return fmt.Sprintf("host(%d)", int(h))
}

// Hosts holds the base URLs of one environment.
type Hosts struct {
	Core      string
	API       string
	MasterPOS string
}

var environmentHosts = map[Environment]Hosts{
	Production: {
		Core:      "https://services.esb.co.id/core",
		API:       "https://core-api.esb.co.id",
		MasterPOS: "https://esbcore.co.id",
	},
	Staging: {
		Core:      "https://stg7.esb.co.id/core-stg",
		API:       "https://stg7.esb.co.id/api-fnb-backend/web",
		MasterPOS: "https://int-erp.esb.co.id",
	},
	StagingInt: {
		Core:      "https://stg7.esb.co.id/core",
		API:       "https://stg7.esb.co.id/api-fnb-backend-int/web",
		MasterPOS: "https://int-erp.esb.co.id",
	},
}

// ParseEnvironment accepts production, staging and staging_int (or
// staging-int) in any case. An empty string means Production.
func ParseEnvironment(s string) (Environment, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if norm == "" {
		return Production, nil
	}
	env := Environment(norm)
	if _, ok := environmentHosts[env]; !ok {
		return "", fmt.Errorf("unknown environment %q", s)
	}
	return env, nil
}

// Hosts returns the base URLs of e. Unknown values fall back to Production.
func (e Environment) Hosts() Hosts {
	if h, ok := environmentHosts[e]; ok {
		return h
	}
	return environmentHosts[Production]
}

func (e Environment) String() string { return string(e) }

// Base returns the base URL for h without a trailing slash.
func (hs Hosts) Base(h Host) string {
	var base string
	switch h {
	case HostCore:
		base = hs.Core
	case HostAPI:
		base = hs.API
	case HostMasterPOS:
		base = hs.MasterPOS
	}
	return strings.TrimRight(base, "/")
}

// Validate reports a missing base URL.
func (hs Hosts) Validate() error {
	for _, h := range []Host{HostCore, HostAPI, HostMasterPOS} {
		if hs.Base(h) == "" {
			return fmt.Errorf("missing base URL for %s host", h)
		}
	}
	return nil
}
