package models

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// PagedResult is the page shape of the menu master endpoints. Page arrives
// as a string on some servers and a number on others.
type PagedResult[T any] struct {
	Page  Flex `json:"page"`
	Limit int  `json:"limit"`
	Count int  `json:"count"`
	Data  []T  `json:"data" validate:"dive"`
}

type (
	MenuCategoryPage = PagedResult[MenuCategoryResult]
	MenuPage         = PagedResult[MenuResult]
	MenuTemplatePage = PagedResult[MenuTemplateResult]
)

// MenuCategoryParams filters GET /corev1/master/get-menu-category.
type MenuCategoryParams struct {
	Page           int  `validate:"gte=0"`
	MenuCategoryID *int `validate:"omitempty,gt=0"`
}

func (p MenuCategoryParams) Values() url.Values {
	q := query{}
	q.num("page", max(p.Page, 1))
	q.ptr("menuCategoryID", p.MenuCategoryID)
	return url.Values(q)
}

type MenuCategoryDetailInput struct {
	MenuCategoryDetailID    *int            `json:"menuCategoryDetailID,omitempty"`
	MenuCategoryDetailName  string          `json:"menuCategoryDetailName" validate:"required"`
	MenuCategoryDetailOnESO string          `json:"menuCategoryDetailOnEso"`
	MenuCategoryDetailCode  string          `json:"menuCategoryDetailCode"`
	Description             string          `json:"description"`
	MaxOrderQty             decimal.Decimal `json:"maxOrderQty"`
	MenuCategoryDetailTheme string          `json:"menuCategoryDetailTheme"`
	ImageURL                string          `json:"imageUrl"`
}

// MenuCategoryTheme holds the optional presentation fields of a category.
type MenuCategoryTheme struct {
	MenuCategoryNameOnESO    string `json:"menuCategoryNameOnEso"`
	MenuCategoryCode         string `json:"menuCategoryCode"`
	Description              string `json:"description"`
	ImageURL                 string `json:"imageUrl"`
	ThemeCategoryOnPOS       string `json:"themeCategoryOnPos"`
	ThemeOptionCategoryOnPOS string `json:"themeOptionCategoryOnPos"`
}

type CreateMenuCategoryRequest struct {
	MenuCategoryName    string                    `json:"menuCategoryName" validate:"required"`
	SalesAccount        string                    `json:"salesAccount" validate:"required"`
	COGSAccount         string                    `json:"cogsAccount" validate:"required"`
	DiscountAccount     string                    `json:"discountAccount" validate:"required"`
	MenuCategoryDetails []MenuCategoryDetailInput `json:"menuCategoryDetails" validate:"required,dive"`
	MenuCategoryTheme
}

type UpdateMenuCategoryRequest struct {
	MenuCategoryID      int                       `json:"menuCategoryID" validate:"required"`
	MenuCategoryName    string                    `json:"menuCategoryName" validate:"required"`
	SalesAccount        string                    `json:"salesAccount" validate:"required"`
	COGSAccount         string                    `json:"cogsAccount" validate:"required"`
	DiscountAccount     string                    `json:"discountAccount" validate:"required"`
	MenuCategoryDetails []MenuCategoryDetailInput `json:"menuCategoryDetails" validate:"required,dive"`
	MenuCategoryTheme
}

type MenuCategoryDetailResult struct {
	MenuCategoryDetailID   int             `json:"menuCategoryDetailID"`
	MenuCategoryDetailName string          `json:"menuCategoryDetailName"`
	MenuCategoryDetailCode string          `json:"menuCategoryDetailCode"`
	MaxOrderQty            decimal.Decimal `json:"maxOrderQty"`
	Status                 string          `json:"status"`
	OrderID                *int            `json:"orderID"`
	Description            *string         `json:"description"`
	ButtonColor            string          `json:"buttonColor"`
}

type MenuCategoryResult struct {
	MenuCategoryID      int                        `json:"menuCategoryID" validate:"required"`
	MenuCategoryName    string                     `json:"menuCategoryName"`
	MenuCategoryCode    string                     `json:"menuCategoryCode"`
	SalesAccount        string                     `json:"salesAccount"`
	COGSAccount         string                     `json:"cogsAccount"`
	DiscountAccount     string                     `json:"discountAccount"`
	Notes               string                     `json:"notes"`
	Description         string                     `json:"description"`
	Status              string                     `json:"status"`
	ButtonColor         string                     `json:"buttonColor"`
	MenuCategoryDetails []MenuCategoryDetailResult `json:"menuCategoryDetails"`
}

// MenuParams filters GET /corev1/master/get-menu. FlagActive defaults to 1.
type MenuParams struct {
	Page       int
	FlagActive *int `validate:"omitempty,oneof=0 1"`
	MenuCode   string
}

func (p MenuParams) Values() url.Values {
	q := query{}
	q.num("page", max(p.Page, 1))
	if p.FlagActive == nil {
		q.num("flagActive", 1)
	} else {
		q.ptr("flagActive", p.FlagActive)
	}
	q.str("menuCode", p.MenuCode)
	return url.Values(q)
}

type MenuTemplatePrice struct {
	MenuTemplateID int             `json:"menuTemplateID" validate:"required"`
	Price          decimal.Decimal `json:"price"`
}

type MenuPackageMenuInput struct {
	MenuID               int                 `json:"menuID" validate:"required"`
	MenuName             string              `json:"menuName"`
	MenuCode             string              `json:"menuCode"`
	Price                decimal.Decimal     `json:"price"`
	DefaultItem          bool                `json:"defaultItem"`
	MenuTemplatePackages []MenuTemplatePrice `json:"menuTemplatePackages" validate:"dive"`
}

type MenuPackageGroupInput struct {
	MenuGroupID   Flex                   `json:"menuGroupID"`
	MenuGroupName string                 `json:"menuGroupName"`
	MinQty        decimal.Decimal        `json:"minQty"`
	MaxQty        decimal.Decimal        `json:"maxQty"`
	Notes         string                 `json:"notes"`
	OrderID       int                    `json:"orderID"`
	FlagActive    bool                   `json:"flagActive"`
	Menus         []MenuPackageMenuInput `json:"menus" validate:"dive"`
}

type MenuExtraInput struct {
	MenuExtraID Flex            `json:"menuExtraID"`
	MenuID      int             `json:"menuID" validate:"required"`
	MenuName    string          `json:"menuName"`
	Price       decimal.Decimal `json:"price"`
	MinExtraQty decimal.Decimal `json:"minExtraQty"`
	MaxExtraQty decimal.Decimal `json:"maxExtraQty"`
	Color       string          `json:"color"`
}

type MenuIconInput struct {
	MenuIconName string `json:"menuIconName" validate:"required"`
}

type MenuTagInput struct {
	TagName string `json:"tagName" validate:"required"`
}

type RelatedMenuInput struct {
	MenuID   int    `json:"menuID" validate:"required"`
	MenuName string `json:"menuName"`
	MenuCode string `json:"menuCode"`
}

type CheckerInput struct {
	StationName string `json:"stationName" validate:"required"`
}

// MenuAttributes holds the optional fields shared by menu create and update.
type MenuAttributes struct {
	BOMID                      int    `json:"bomID"`
	MenuShortName              string `json:"menuShortName"`
	AlternativeMenuName        string `json:"alternativeMenuName"`
	FlagTax                    int    `json:"flagTax"`
	FlagOtherTax               bool   `json:"flagOtherTax"`
	ZeroValueText              string `json:"zeroValueText"`
	SalesAccount               string `json:"salesAccount"`
	COGSAccount                string `json:"cogsAccount"`
	DiscountAccount            string `json:"discountAccount"`
	Description                string `json:"description"`
	ImageURL                   string `json:"imageUrl"`
	FlagOpenPrice              bool   `json:"flagOpenPrice"`
	PrintZeroValue             bool   `json:"printZeroValue"`
	ThemeMenuOnPOS             string `json:"themeMenuOnPos"`
	Notes                      string `json:"notes"`
	FlagSeparatePrintPackage   bool   `json:"flagSeparatePrintPackage"`
	FlagSeparateTaxCalculation bool   `json:"flagSeparateTaxCalculation"`
	UpdateCheckerAndStation    bool   `json:"updateCheckerAndStation"`
}

type CreateMenuRequest struct {
	MenuCategoryDetailID int                     `json:"menuCategoryDetailID" validate:"required"`
	MenuName             string                  `json:"menuName" validate:"required"`
	MenuCode             string                  `json:"menuCode" validate:"required"`
	MenuTemplates        []MenuTemplatePrice     `json:"menuTemplates" validate:"dive"`
	CheckerList          []CheckerInput          `json:"checkerList" validate:"dive"`
	MenuPackages         []MenuPackageGroupInput `json:"menuPackages" validate:"dive"`
	MenuExtras           []MenuExtraInput        `json:"menuExtras" validate:"dive"`
	MenuIcons            []MenuIconInput         `json:"menuIcons" validate:"dive"`
	MenuTags             []MenuTagInput          `json:"menuTags" validate:"dive"`
	RelatedMenus         []RelatedMenuInput      `json:"relatedMenus" validate:"dive"`
	MenuAttributes
}

type UpdateMenuRequest struct {
	MenuID               int                     `json:"menuID" validate:"required"`
	MenuCategoryDetailID int                     `json:"menuCategoryDetailID" validate:"required"`
	MenuName             string                  `json:"menuName" validate:"required"`
	MenuCode             string                  `json:"menuCode" validate:"required"`
	MenuTemplates        []MenuTemplatePrice     `json:"menuTemplates" validate:"dive"`
	CheckerList          []CheckerInput          `json:"checkerList" validate:"dive"`
	MenuPackages         []MenuPackageGroupInput `json:"menuPackages" validate:"dive"`
	MenuExtras           []MenuExtraInput        `json:"menuExtras" validate:"dive"`
	MenuIcons            []MenuIconInput         `json:"menuIcons" validate:"dive"`
	MenuTags             []MenuTagInput          `json:"menuTags" validate:"dive"`
	RelatedMenus         []RelatedMenuInput      `json:"relatedMenus" validate:"dive"`
	MenuAttributes
}

type MenuTemplatePackageResult struct {
	MenuTemplateID int  `json:"menuTemplateID"`
	Price          Flex `json:"price"`
}

type MenuPackageMenuResult struct {
	MenuID               int                         `json:"menuID"`
	MenuName             string                      `json:"menuName"`
	MenuCode             string                      `json:"menuCode"`
	FlagActive           int                         `json:"flagActive"`
	AdditionalPrice      Flex                        `json:"additionalPrice"`
	DefaultItem          string                      `json:"defaultItem"`
	MenuTemplatePackages []MenuTemplatePackageResult `json:"menuTemplatePackages"`
}

type MenuPackageGroupResult struct {
	MenuGroupID   int                     `json:"menuGroupID"`
	MenuGroupName string                  `json:"menuGroupName"`
	FlagActive    int                     `json:"flagActive"`
	OrderID       int                     `json:"orderID"`
	MinQty        Flex                    `json:"minQty"`
	MaxQty        Flex                    `json:"maxQty"`
	Notes         string                  `json:"notes"`
	Menus         []MenuPackageMenuResult `json:"menus"`
}

type MenuPackagesResult struct {
	FlagSeparatePrintPackage   string                   `json:"flagSeparatePrintPackage"`
	FlagSeparateTaxCalculation string                   `json:"flagSeparateTaxCalculation"`
	MenuGroup                  []MenuPackageGroupResult `json:"menuGroup"`
}

type MenuExtraResult struct {
	MenuExtraID   int    `json:"menuExtraID"`
	MenuID        int    `json:"menuID"`
	MenuExtraName string `json:"menuExtraName"`
	FlagActive    int    `json:"flagActive"`
	MinExtraQty   Flex   `json:"minExtraQty"`
	MaxExtraQty   Flex   `json:"maxExtraQty"`
	Price         Flex   `json:"price"`
}

type MenuIconResult struct {
	MenuIconName string `json:"menuIconName"`
	MenuIconURL  string `json:"menuIconUrl"`
}

type MenuTagResult struct {
	TagName string `json:"tagName"`
}

type RelatedMenuResult struct {
	MenuID   int    `json:"menuID"`
	MenuName string `json:"menuName"`
	MenuCode string `json:"menuCode"`
}

type MenuTemplateAssignment struct {
	MenuTemplateID   int    `json:"menuTemplateID"`
	MenuTemplateName string `json:"menuTemplateName"`
	FlagActive       int    `json:"flagActive"`
	Price            Flex   `json:"price"`
}

// MenuResult is a menu as returned by get, create and update. Yes/No flags
// are kept as the server sends them.
type MenuResult struct {
	MenuID              int                      `json:"menuID" validate:"required"`
	CategoryDetail      string                   `json:"categoryDetail"`
	BOMID               int                      `json:"bomID"`
	BOMName             string                   `json:"bomName"`
	MenuCode            string                   `json:"menuCode"`
	MenuName            string                   `json:"menuName"`
	FlagActive          int                      `json:"flagActive"`
	MenuShortName       string                   `json:"menuShortName"`
	AlternativeMenuName string                   `json:"alternativeMenuName"`
	FlagTax             Flex                     `json:"flagTax"`
	FlagOtherTax        Flex                     `json:"flagOtherTax"`
	ZeroValueText       string                   `json:"zeroValueText"`
	SalesAccount        string                   `json:"salesAccount"`
	COGSAccount         string                   `json:"cogsAccount"`
	DiscountAccount     string                   `json:"discountAccount"`
	Description         string                   `json:"description"`
	MenuImage           string                   `json:"menuImage"`
	FlagOpenPrice       Flex                     `json:"flagOpenPrice"`
	PrintZeroValue      Flex                     `json:"printZeroValue"`
	ThemeMenuOnPOS      string                   `json:"themeMenuOnPos"`
	Notes               string                   `json:"notes"`
	MenuTemplates       []MenuTemplateAssignment `json:"menuTemplates"`
	MenuPackages        *MenuPackagesResult      `json:"menuPackages"`
	MenuExtras          []MenuExtraResult        `json:"menuExtras"`
	MenuIcons           []MenuIconResult         `json:"menuIcons"`
	MenuTags            []MenuTagResult          `json:"menuTags"`
	RelatedMenus        []RelatedMenuResult      `json:"relatedMenus"`
}

// MenuTemplateParams pages GET /corev1/master/get-menu-template.
type MenuTemplateParams struct {
	Page int
}

func (p MenuTemplateParams) Values() url.Values {
	q := query{}
	q.num("page", max(p.Page, 1))
	return url.Values(q)
}

type MenuTemplateDetailInput struct {
	MenuID    int             `json:"menuID" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	ShowOnESO bool            `json:"showOnEso"`
	StartTime string          `json:"startTime"`
	EndTime   string          `json:"endTime"`
	Days      []string        `json:"days"`
}

type CreateMenuTemplateRequest struct {
	MenuTemplateName    string                    `json:"menuTemplateName" validate:"required"`
	ActiveDate          string                    `json:"activeDate" validate:"required"`
	Notes               string                    `json:"notes"`
	FlagInclusive       bool                      `json:"flagInclusive"`
	MenuTemplateDetails []MenuTemplateDetailInput `json:"menuTemplateDetails" validate:"required,dive"`
}

type UpdateMenuTemplateRequest struct {
	MenuTemplateID      int                       `json:"menuTemplateID" validate:"required"`
	MenuTemplateName    string                    `json:"menuTemplateName" validate:"required"`
	ActiveDate          string                    `json:"activeDate" validate:"required"`
	Notes               string                    `json:"notes"`
	FlagInclusive       bool                      `json:"flagInclusive"`
	MenuTemplateDetails []MenuTemplateDetailInput `json:"menuTemplateDetails" validate:"required,dive"`
}

type MenuTemplateDetailResult struct {
	MenuTemplateID   int             `json:"menuTemplateID"`
	MenuName         string          `json:"menuName"`
	BeforePrice      decimal.Decimal `json:"beforePrice"`
	Price            decimal.Decimal `json:"price"`
	Status           string          `json:"status"`
	FlagShowESO      bool            `json:"flagShowEso"`
	StartTime        *string         `json:"startTime"`
	EndTime          *string         `json:"endTime"`
	OrderID          int             `json:"orderID"`
	MenuTemplateDays []string        `json:"menuTemplateDays"`
}

type MenuCategoryDetailSummary struct {
	MenuCategoryDetailName string `json:"menuCategoryDetailName"`
	OrderID                int    `json:"orderID"`
}

type MenuCategorySummary struct {
	MenuCategoryName    string                      `json:"menuCategoryName"`
	OrderID             int                         `json:"orderID"`
	MenuCategoryDetails []MenuCategoryDetailSummary `json:"menuCategoryDetails"`
}

type MenuTemplateResult struct {
	MenuTemplateID      int                        `json:"menuTemplateID" validate:"required"`
	MenuTemplateName    string                     `json:"menuTemplateName"`
	ActiveDate          string                     `json:"activeDate"`
	Notes               string                     `json:"notes"`
	FlagInclusive       bool                       `json:"flagInclusive"`
	Status              string                     `json:"status"`
	MenuTemplateDetails []MenuTemplateDetailResult `json:"menuTemplateDetails"`
	MenuCategories      []MenuCategorySummary      `json:"menuCategories"`
}
