// Package api holds the resource clients of the ESB OMS API. Each client
// builds a transport.Request per call and leaves authentication, retries
// and error mapping to the transport.Sender it wraps.
package api

import (
	"context"
	"net/http"

	"github.com/milan604/esb-oms/pkg/transport"
)

// call sends req and decodes the payload into a new T.
func call[T any](ctx context.Context, s transport.Sender, req *transport.Request) (T, error) {
	var out T
	if err := s.Send(ctx, req, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// optional is call for endpoints where an empty payload means no result.
func optional[T any](ctx context.Context, s transport.Sender, req *transport.Request) (*T, error) {
	req.AllowEmpty = true
	var out *T
	if err := s.Send(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// bearerGet builds a Bearer GET on the API host that unwraps "result".
func bearerGet(op, path string, q transport.Query) *transport.Request {
	return &transport.Request{
		Operation: op,
		Method:    http.MethodGet,
		Host:      transport.HostAPI,
		Path:      path,
		Auth:      transport.AuthBearer,
		Query:     q,
		Unwrap:    transport.UnwrapResult,
	}
}

// bearerPost builds a Bearer POST on the API host that unwraps "result".
func bearerPost(op, path string, body any) *transport.Request {
	return &transport.Request{
		Operation: op,
		Method:    http.MethodPost,
		Host:      transport.HostAPI,
		Path:      path,
		Auth:      transport.AuthBearer,
		Body:      body,
		Unwrap:    transport.UnwrapResult,
	}
}

// basicPost builds a Basic POST on the Master POS host, which answers with
// bare JSON.
func basicPost(op, path string, q transport.Query, body any) *transport.Request {
	return &transport.Request{
		Operation: op,
		Method:    http.MethodPost,
		Host:      transport.HostMasterPOS,
		Path:      path,
		Auth:      transport.AuthBasic,
		Query:     q,
		Body:      body,
		Unwrap:    transport.UnwrapNone,
	}
}
