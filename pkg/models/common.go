// Package models holds the request and response payloads of the ESB OMS
// API. JSON names follow the wire format; validate tags are checked locally
// before a request is sent and after a response is decoded.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DateLayout is the date format used by report and filter parameters.
const DateLayout = "2006-01-02"

// Flex holds a scalar the servers send either as a JSON string or a number.
// It always marshals as a string.
type Flex string

func (f *Flex) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*f = ""
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = Flex(s)
	case bytes.Equal(trimmed, []byte("true")), bytes.Equal(trimmed, []byte("false")):
		*f = Flex(trimmed)
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return fmt.Errorf("flex: unsupported value %s", trimmed)
		}
		*f = Flex(n.String())
	}
	return nil
}

func (f Flex) String() string { return string(f) }

// Int parses the value as an integer.
func (f Flex) Int() (int64, error) { return strconv.ParseInt(strings.TrimSpace(string(f)), 10, 64) }

// Decimal parses the value as a decimal. Empty values are zero.
func (f Flex) Decimal() (decimal.Decimal, error) {
	if strings.TrimSpace(string(f)) == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.TrimSpace(string(f)))
}

// Page is the paging block shared by the list endpoints.
type Page struct {
	TotalData int `json:"totalData"`
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	TotalPage int `json:"totalPage"`
}

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool { return p.Page < p.TotalPage }

// HasPrevious reports whether an earlier page exists.
func (p Page) HasPrevious() bool { return p.Page > 1 }

// query is a small builder for url.Values that skips zero values.
type query url.Values

func (q query) str(key, v string) {
	if v != "" {
		url.Values(q).Set(key, v)
	}
}

func (q query) num(key string, v int) {
	if v != 0 {
		url.Values(q).Set(key, strconv.Itoa(v))
	}
}

func (q query) ptr(key string, v *int) {
	if v != nil {
		url.Values(q).Set(key, strconv.Itoa(*v))
	}
}

// Int returns a pointer to v, for optional integer fields.
func Int(v int) *int { return &v }

// String returns a pointer to v, for optional string fields.
func String(v string) *string { return &v }
