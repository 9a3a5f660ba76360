package api

import (
	"context"

	"github.com/milan604/esb-oms/pkg/models"
	"github.com/milan604/esb-oms/pkg/transport"
)

const (
	pathPushSales   = "/extv1/push/sales-data"
	pathPushShift   = "/extv1/push/shift-data"
	pathPushSalesV1 = "/ext/push/sales-data"
	pathPushShiftV1 = "/ext/push/shift-data"
)

// Sales pushes POS transactions and cashier shifts.
type Sales struct {
	s transport.Sender
}

func NewSales(s transport.Sender) *Sales { return &Sales{s: s} }

// PushSalesData sends one transaction. The head is validated before sending.
func (c *Sales) PushSalesData(ctx context.Context, head models.SalesHead) (models.PushSalesDataResult, error) {
	return call[models.PushSalesDataResult](ctx, c.s,
		bearerPost("sales.push_sales_data", pathPushSales, models.PushSalesDataRequest{SalesHead: head}))
}

// PushShiftData sends one cashier shift.
func (c *Sales) PushShiftData(ctx context.Context, shift models.ShiftData) (models.PushShiftDataResult, error) {
	return call[models.PushShiftDataResult](ctx, c.s,
		bearerPost("sales.push_shift_data", pathPushShift, models.PushShiftDataRequest{ShiftData: shift}))
}

// PushSalesDataV1 uses the legacy endpoint.
func (c *Sales) PushSalesDataV1(ctx context.Context, head models.SalesHead) (models.PushSalesDataResult, error) {
	return call[models.PushSalesDataResult](ctx, c.s,
		bearerPost("sales.push_sales_data_v1", pathPushSalesV1, models.PushSalesDataRequest{SalesHead: head}))
}

// PushShiftDataV1 uses the legacy endpoint.
func (c *Sales) PushShiftDataV1(ctx context.Context, shift models.ShiftData) (models.PushShiftDataResult, error) {
	return call[models.PushShiftDataResult](ctx, c.s,
		bearerPost("sales.push_shift_data_v1", pathPushShiftV1, models.PushShiftDataRequest{ShiftData: shift}))
}
