// Package esb is the entry point of the ESB order-management client.
//
//	client, err := esb.New(
//	  esb.WithCredentials(os.Getenv("ESB_USERNAME"), os.Getenv("ESB_PASSWORD")),
//	  esb.WithEnvironment(transport.Staging),
//	)
//	if err != nil { ... }
//	defer client.Close()
//
//	summary, err := client.Reports.SalesPaymentSummary(ctx, params)
package esb

import (
	"context"
	"fmt"

	"github.com/milan604/esb-oms/pkg/api"
	"github.com/milan604/esb-oms/pkg/auth"
	"github.com/milan604/esb-oms/pkg/logger"
	"github.com/milan604/esb-oms/pkg/models"
	"github.com/milan604/esb-oms/pkg/observability"
	"github.com/milan604/esb-oms/pkg/transport"
)

// Client is safe for concurrent use. It starts no goroutines of its own.
type Client struct {
	Sales          *api.Sales
	MasterPOS      *api.MasterPOS
	MenuCategories *api.MenuCategories
	Menus          *api.Menus
	MenuTemplates  *api.MenuTemplates
	Promotions     *api.Promotions
	Members        *api.Members
	Reports        *api.Reports
	Other          *api.Other

	env        transport.Environment
	dispatcher *transport.Dispatcher
	tokens     *auth.Manager
	log        logger.LogManager
}

// New builds a Client. Credentials are checked here, without any network
// call: supply either WithCredentials or WithStaticToken.
func New(opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	creds, err := auth.NewCredentials(o.username, o.password, o.staticToken)
	if err != nil {
		return nil, err
	}

	hosts := o.environment.Hosts()
	if o.hosts != nil {
		hosts = *o.hosts
	}

	collector := observability.Nop()
	if o.registry != nil {
		pc, err := observability.NewPrometheusCollector(o.registry)
		if err != nil {
			return nil, fmt.Errorf("esb: registering metrics: %w", err)
		}
		collector = pc
	}

	log := logger.OrNop(o.logger).Named("esb")
	c := &Client{env: o.environment, log: log}

	c.tokens = auth.NewManager(creds, transport.SenderFunc(c.send),
		auth.WithAutoRefresh(o.autoRefresh),
		auth.WithExpirySkew(o.skew),
		auth.WithLogger(log.Named("auth")),
		auth.WithCollector(collector),
	)

	dopts := []transport.Option{
		transport.WithHTTPClient(o.httpClient),
		transport.WithTimeout(o.timeout),
		transport.WithTokenSource(c.tokens),
		transport.WithBasicCredentials(creds),
		transport.WithLogger(log.Named("transport")),
		transport.WithCollector(collector),
		transport.WithTracerProvider(o.tp),
	}
	if o.breaker != nil {
		dopts = append(dopts, transport.WithCircuitBreaker(*o.breaker))
	}
	c.dispatcher, err = transport.NewDispatcher(hosts, dopts...)
	if err != nil {
		return nil, fmt.Errorf("esb: %w", err)
	}

	c.Sales = api.NewSales(c.dispatcher)
	c.MasterPOS = api.NewMasterPOS(c.dispatcher)
	c.MenuCategories = api.NewMenuCategories(c.dispatcher)
	c.Menus = api.NewMenus(c.dispatcher)
	c.MenuTemplates = api.NewMenuTemplates(c.dispatcher)
	c.Promotions = api.NewPromotions(c.dispatcher)
	c.Members = api.NewMembers(c.dispatcher)
	c.Reports = api.NewReports(c.dispatcher)
	c.Other = api.NewOther(c.dispatcher)

	log.DebugF("client ready: environment=%s %s", o.environment, creds)
	return c, nil
}

// send lets the token manager use the dispatcher built after it.
func (c *Client) send(ctx context.Context, req *transport.Request, out any) error {
	return c.dispatcher.Send(ctx, req, out)
}

// Login authenticates now instead of on the first request. It is a no-op
// for static tokens.
func (c *Client) Login(ctx context.Context) error { return c.tokens.Login(ctx) }

// RefreshToken renews the access token, falling back to a login once.
func (c *Client) RefreshToken(ctx context.Context) error { return c.tokens.Refresh(ctx) }

// IsAuthenticated reports a static token or an unexpired access token.
func (c *Client) IsAuthenticated() bool { return c.tokens.IsAuthenticated() }

func (c *Client) TokenState() auth.State { return c.tokens.State() }

// Session returns the profile of the last login or refresh.
func (c *Client) Session() (models.LoginResult, bool) { return c.tokens.Session() }

func (c *Client) Environment() transport.Environment { return c.env }

func (c *Client) Hosts() transport.Hosts { return c.dispatcher.Hosts() }

// Close releases idle connections. Later calls fail with transport.ErrClosed.
func (c *Client) Close() error {
	err := c.dispatcher.Close()
	_ = c.log.Sync()
	return err
}
