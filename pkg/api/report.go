package api

import (
	"context"
	"net/http"

	"github.com/milan604/esb-oms/pkg/models"
	"github.com/milan604/esb-oms/pkg/transport"
)

const (
	pathSalesHead           = "/external/general/sales-head"
	pathSalesInformation    = "/corev1/sales/sales-information"
	pathSalesMenuCompletion = "/external/general/sales-menu-completion"
	pathSalesMenuSummary    = "/extv1/sales/sales-menu-summary/"
	pathSalesMenu           = "/external/general/sales-menu"
	pathSalesPaymentSummary = "/report/sales-payment-summary"
)

// Reports reads sales reports from all three hosts.
type Reports struct {
	s transport.Sender
}

func NewReports(s transport.Sender) *Reports { return &Reports{s: s} }

// SalesHead lists transaction headers with their menus and payments.
func (c *Reports) SalesHead(ctx context.Context, req models.SalesHeadRequest, page int) ([]models.SalesHeadItem, error) {
	return call[[]models.SalesHeadItem](ctx, c.s,
		basicPost("report.sales_head", pathSalesHead, models.PageParams{Page: page}, req))
}

func (c *Reports) SalesInformation(ctx context.Context, p models.SalesInformationParams) ([]models.SalesInformationItem, error) {
	return call[[]models.SalesInformationItem](ctx, c.s,
		bearerGet("report.sales_information", pathSalesInformation, p))
}

// SalesMenuCompletion reports kitchen and checker progress per sold menu.
func (c *Reports) SalesMenuCompletion(ctx context.Context, req models.SalesMenuCompletionRequest, page int) ([]models.SalesMenuCompletionItem, error) {
	return call[[]models.SalesMenuCompletionItem](ctx, c.s,
		basicPost("report.sales_menu_completion", pathSalesMenuCompletion, models.PageParams{Page: page}, req))
}

// SalesMenuSummary returns nil and no error when the day has no sales.
func (c *Reports) SalesMenuSummary(ctx context.Context, p models.SalesMenuSummaryParams) (*models.SalesMenuSummaryResult, error) {
	req := bearerGet("report.sales_menu_summary", pathSalesMenuSummary, p)
	req.Unwrap = transport.UnwrapData
	return optional[models.SalesMenuSummaryResult](ctx, c.s, req)
}

func (c *Reports) SalesMenu(ctx context.Context, req models.SalesMenuRequest, page int) ([]models.SalesMenuReportItem, error) {
	return call[[]models.SalesMenuReportItem](ctx, c.s,
		basicPost("report.sales_menu", pathSalesMenu, models.PageParams{Page: page}, req))
}

// SalesPaymentSummary is served by the core host with the managed token.
func (c *Reports) SalesPaymentSummary(ctx context.Context, p models.SalesPaymentSummaryParams) ([]models.SalesPaymentSummaryItem, error) {
	return call[[]models.SalesPaymentSummaryItem](ctx, c.s, &transport.Request{
		Operation: "report.sales_payment_summary",
		Method:    http.MethodGet,
		Host:      transport.HostCore,
		Path:      pathSalesPaymentSummary,
		Auth:      transport.AuthBearer,
		Query:     p,
		Unwrap:    transport.UnwrapResult,
	})
}
