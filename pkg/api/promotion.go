package api

import (
	"context"

	"github.com/milan604/esb-oms/pkg/models"
	"github.com/milan604/esb-oms/pkg/transport"
)

const (
	pathCreatePromotion = "/corev1/promotion/"
	pathListPromotion   = "/extv1/promotion"
)

// Promotions creates and lists promotions.
type Promotions struct {
	s transport.Sender
}

func NewPromotions(s transport.Sender) *Promotions { return &Promotions{s: s} }

// Create posts any promotion variant. promotionType is set from the variant.
func (c *Promotions) Create(ctx context.Context, req models.PromotionRequest) (models.CreatePromotionResult, error) {
	op := "promotion.create_" + req.PromotionType().String()
	return call[models.CreatePromotionResult](ctx, c.s, bearerPost(op, pathCreatePromotion, req))
}

func (c *Promotions) CreateDiscountPercentage(ctx context.Context, req models.DiscountPercentageRequest) (models.CreatePromotionResult, error) {
	return c.Create(ctx, req)
}

func (c *Promotions) CreateDiscountLimitPercentage(ctx context.Context, req models.DiscountLimitPercentageRequest) (models.CreatePromotionResult, error) {
	return c.Create(ctx, req)
}

func (c *Promotions) CreateFreeItem(ctx context.Context, req models.FreeItemRequest) (models.CreatePromotionResult, error) {
	return c.Create(ctx, req)
}

func (c *Promotions) CreateDiscountPercentageESO(ctx context.Context, req models.DiscountPercentageESORequest) (models.CreatePromotionResult, error) {
	return c.Create(ctx, req)
}

func (c *Promotions) CreateDiscountAmountESO(ctx context.Context, req models.DiscountAmountESORequest) (models.CreatePromotionResult, error) {
	return c.Create(ctx, req)
}

// List returns one page of promotions. The server sends either a list or a
// page object; both decode the same way.
func (c *Promotions) List(ctx context.Context, p models.PromotionListParams) ([]models.PromotionResult, error) {
	list, err := call[models.PromotionList](ctx, c.s, bearerGet("promotion.list", pathListPromotion, p))
	return list, err
}
