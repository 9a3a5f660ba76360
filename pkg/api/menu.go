package api

import (
	"context"

	"github.com/milan604/esb-oms/pkg/models"
	"github.com/milan604/esb-oms/pkg/transport"
)

const (
	pathGetMenuCategory    = "/corev1/master/get-menu-category"
	pathCreateMenuCategory = "/corev1/master/create-menu-category"
	pathUpdateMenuCategory = "/corev1/master/update-menu-category"
	pathGetMenu            = "/corev1/master/get-menu"
	pathCreateMenu         = "/corev1/master/create-menu"
	pathUpdateMenu         = "/corev1/master/update-menu"
	pathGetMenuTemplate    = "/corev1/master/get-menu-template"
	pathCreateMenuTemplate = "/corev1/master/create-menu-template"
	pathUpdateMenuTemplate = "/corev1/master/update-menu-template"
)

// MenuCategories manages menu categories on the core API.
type MenuCategories struct {
	s transport.Sender
}

func NewMenuCategories(s transport.Sender) *MenuCategories { return &MenuCategories{s: s} }

func (c *MenuCategories) List(ctx context.Context, p models.MenuCategoryParams) (models.MenuCategoryPage, error) {
	return call[models.MenuCategoryPage](ctx, c.s, bearerGet("menu_category.list", pathGetMenuCategory, p))
}

func (c *MenuCategories) Create(ctx context.Context, req models.CreateMenuCategoryRequest) (models.MenuCategoryResult, error) {
	return call[models.MenuCategoryResult](ctx, c.s, bearerPost("menu_category.create", pathCreateMenuCategory, req))
}

func (c *MenuCategories) Update(ctx context.Context, req models.UpdateMenuCategoryRequest) (models.MenuCategoryResult, error) {
	return call[models.MenuCategoryResult](ctx, c.s, bearerPost("menu_category.update", pathUpdateMenuCategory, req))
}

// Menus manages menus on the core API.
type Menus struct {
	s transport.Sender
}

func NewMenus(s transport.Sender) *Menus { return &Menus{s: s} }

// List pages through menus. FlagActive defaults to active menus.
func (c *Menus) List(ctx context.Context, p models.MenuParams) (models.MenuPage, error) {
	return call[models.MenuPage](ctx, c.s, bearerGet("menu.list", pathGetMenu, p))
}

func (c *Menus) Create(ctx context.Context, req models.CreateMenuRequest) ([]models.MenuResult, error) {
	return call[[]models.MenuResult](ctx, c.s, bearerPost("menu.create", pathCreateMenu, req))
}

func (c *Menus) Update(ctx context.Context, req models.UpdateMenuRequest) ([]models.MenuResult, error) {
	return call[[]models.MenuResult](ctx, c.s, bearerPost("menu.update", pathUpdateMenu, req))
}

// MenuTemplates manages price templates on the core API.
type MenuTemplates struct {
	s transport.Sender
}

func NewMenuTemplates(s transport.Sender) *MenuTemplates { return &MenuTemplates{s: s} }

func (c *MenuTemplates) List(ctx context.Context, p models.MenuTemplateParams) (models.MenuTemplatePage, error) {
	return call[models.MenuTemplatePage](ctx, c.s, bearerGet("menu_template.list", pathGetMenuTemplate, p))
}

func (c *MenuTemplates) Create(ctx context.Context, req models.CreateMenuTemplateRequest) ([]models.MenuTemplateResult, error) {
	return call[[]models.MenuTemplateResult](ctx, c.s, bearerPost("menu_template.create", pathCreateMenuTemplate, req))
}

func (c *MenuTemplates) Update(ctx context.Context, req models.UpdateMenuTemplateRequest) ([]models.MenuTemplateResult, error) {
	return call[[]models.MenuTemplateResult](ctx, c.s, bearerPost("menu_template.update", pathUpdateMenuTemplate, req))
}
