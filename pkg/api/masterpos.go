package api

import (
	"context"

	"github.com/milan604/esb-oms/pkg/models"
	"github.com/milan604/esb-oms/pkg/transport"
)

const (
	pathPOSMenu          = "/external/general/get-menu"
	pathPOSStockBranch   = "/external/general/stock-branch"
	pathPOSVisitPurpose  = "/external/general/get-visit-purpose"
	pathPOSPaymentMethod = "/external/general/get-payment-method"
	pathPOSBranch        = "/external/general/get-branch"
)

// MasterPOS reads POS master data. Calls use Basic auth.
type MasterPOS struct {
	s transport.Sender
}

func NewMasterPOS(s transport.Sender) *MasterPOS { return &MasterPOS{s: s} }

// GetMenu returns the menu tree of a branch for a visit purpose.
func (c *MasterPOS) GetMenu(ctx context.Context, branchCode, visitPurposeID string) ([]models.MenuCategory, error) {
	return call[[]models.MenuCategory](ctx, c.s, basicPost("master_pos.get_menu", pathPOSMenu, nil,
		models.GetMenuRequest{FilterBranchCode: branchCode, FilterVisitPurposeID: visitPurposeID}))
}

func (c *MasterPOS) GetStockBranch(ctx context.Context, branchCode string) ([]models.StockBranchItem, error) {
	return call[[]models.StockBranchItem](ctx, c.s, basicPost("master_pos.get_stock_branch", pathPOSStockBranch, nil,
		models.GetStockBranchRequest{FilterBranchCode: branchCode}))
}

// GetVisitPurpose lists visit purposes, or one when id is not empty.
func (c *MasterPOS) GetVisitPurpose(ctx context.Context, id string) ([]models.VisitPurpose, error) {
	req := models.GetVisitPurposeRequest{}
	if id != "" {
		req.VisitPurposeID = &id
	}
	return call[[]models.VisitPurpose](ctx, c.s, basicPost("master_pos.get_visit_purpose", pathPOSVisitPurpose, nil, req))
}

// GetPaymentMethod returns the payment methods of a branch keyed by type.
func (c *MasterPOS) GetPaymentMethod(ctx context.Context, branchCode string) (models.PaymentMethods, error) {
	return call[models.PaymentMethods](ctx, c.s, basicPost("master_pos.get_payment_method", pathPOSPaymentMethod, nil,
		models.GetPaymentMethodRequest{FilterBranchCode: branchCode}))
}

func (c *MasterPOS) GetBranch(ctx context.Context, filter models.GetBranchRequest) ([]models.Branch, error) {
	return call[[]models.Branch](ctx, c.s, basicPost("master_pos.get_branch", pathPOSBranch, nil, filter))
}
