package api

import (
	"context"

	"github.com/milan604/esb-oms/pkg/models"
	"github.com/milan604/esb-oms/pkg/transport"
)

const (
	pathBranchSalesSummary = "/external/general/sales-branch-summary"
	pathDailyMaterialUsage = "/corev1/sales/get-daily-sales-material-usage"
	pathGetSales           = "/external/general/get-sales"
)

// Other groups the remaining report endpoints.
type Other struct {
	s transport.Sender
}

func NewOther(s transport.Sender) *Other { return &Other{s: s} }

func (c *Other) BranchSalesSummary(ctx context.Context, req models.BranchSalesSummaryRequest) ([]models.BranchSalesSummaryItem, error) {
	return call[[]models.BranchSalesSummaryItem](ctx, c.s,
		basicPost("other.branch_sales_summary", pathBranchSalesSummary, nil, req))
}

// DailyMaterialUsage accepts both a bare list and a result envelope.
func (c *Other) DailyMaterialUsage(ctx context.Context, p models.DailyMaterialUsageParams) ([]models.DailySalesMaterialUsageItem, error) {
	req := bearerGet("other.daily_material_usage", pathDailyMaterialUsage, p)
	req.Unwrap = transport.UnwrapResultOrBody
	return call[[]models.DailySalesMaterialUsageItem](ctx, c.s, req)
}

// GetSales looks a transaction up by bill number or sales number.
func (c *Other) GetSales(ctx context.Context, req models.GetSalesRequest) ([]models.SalesDetailItem, error) {
	return call[[]models.SalesDetailItem](ctx, c.s, basicPost("other.get_sales", pathGetSales, nil, req))
}
