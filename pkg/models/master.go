package models

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

type MenuPackageItem struct {
	ID               int             `json:"ID"`
	MenuGroupID      int             `json:"menuGroupID"`
	MenuID           int             `json:"menuID"`
	MenuName         string          `json:"menuName"`
	MenuShortName    string          `json:"menuShortName"`
	MenuCode         string          `json:"menuCode"`
	Description      string          `json:"description"`
	MenuCategoryID   int             `json:"menuCategoryID"`
	MenuCategoryName string          `json:"menuCategoryName"`
	Price            decimal.Decimal `json:"price"`
	ImageURL         *string         `json:"imageUrl"`
	FlagDefault      int             `json:"flagDefault"`
	FlagActive       int             `json:"flagActive"`
	CreatedBy        string          `json:"createdBy"`
	CreatedDate      string          `json:"createdDate"`
	EditedBy         string          `json:"editedBy"`
	EditedDate       string          `json:"editedDate"`
}

type MenuPackageGroup struct {
	MenuGroupID int               `json:"menuGroupID"`
	MenuGroup   string            `json:"menuGroup"`
	MinQty      decimal.Decimal   `json:"minQty"`
	MaxQty      decimal.Decimal   `json:"maxQty"`
	Notes       string            `json:"notes"`
	Packages    []MenuPackageItem `json:"packages"`
}

type MenuExtraItem struct {
	MenuGroupID        int             `json:"menuGroupID"`
	MenuExtraID        int             `json:"menuExtraID"`
	MenuExtraName      string          `json:"menuExtraName"`
	MenuExtraShortName string          `json:"menuExtraShortName"`
	MenuExtraCode      string          `json:"menuExtraCode"`
	Price              decimal.Decimal `json:"price"`
	Notes              string          `json:"notes"`
}

type MenuExtraGroup struct {
	MenuGroupID int             `json:"menuGroupID"`
	MenuGroup   string          `json:"menuGroup"`
	MinQty      decimal.Decimal `json:"minQty"`
	MaxQty      decimal.Decimal `json:"maxQty"`
	Notes       string          `json:"notes"`
	Extras      []MenuExtraItem `json:"extras"`
}

type MenuIcon struct {
	MenuIconID   int    `json:"menuIconID"`
	MenuIconName string `json:"menuIconName"`
	MenuIconURL  string `json:"menuIconUrl"`
}

// POSMenuItem is a sellable menu as configured on the POS.
type POSMenuItem struct {
	MenuCategoryID    int                `json:"menuCategoryID"`
	MenuCategoryName  string             `json:"menuCategoryName"`
	MenuID            int                `json:"menuID" validate:"required"`
	MenuName          string             `json:"menuName"`
	MenuShortName     string             `json:"menuShortName"`
	MenuCode          string             `json:"menuCode" validate:"required"`
	Price             decimal.Decimal    `json:"price"`
	FlagTax           int                `json:"flagTax"`
	FlagOtherTax      int                `json:"flagOtherTax"`
	ZeroValueText     string             `json:"zeroValueText"`
	FlagCustomerPrint int                `json:"flagCustomerPrint"`
	ShowMenuImage     int                `json:"showMenuImage"`
	ImageURL          *string            `json:"imageUrl"`
	CatDetailImageURL *string            `json:"catDetailImageUrl"`
	Description       string             `json:"description"`
	FlagSoldOut       int                `json:"flagSoldOut"`
	MenuIcons         []MenuIcon         `json:"menuIcons"`
	MenuPackages      []MenuPackageGroup `json:"menuPackages"`
	MenuExtras        []MenuExtraGroup   `json:"menuExtras"`
}

// SoldOut reports a menu flagged as sold out.
func (m POSMenuItem) SoldOut() bool { return m.FlagSoldOut == 1 }

type MenuCategoryDetail struct {
	ID                     int           `json:"ID"`
	MenuCategoryDetailDesc string        `json:"menuCategoryDetailDesc"`
	ImageURL               *string       `json:"imageUrl"`
	Menus                  []POSMenuItem `json:"menus" validate:"dive"`
}

// MenuCategory is one category of the POS menu tree.
type MenuCategory struct {
	MenuCategoryID      int                  `json:"menuCategoryID"`
	MenuCategoryDesc    string               `json:"menuCategoryDesc"`
	MenuCategoryDetails []MenuCategoryDetail `json:"menuCategoryDetails" validate:"dive"`
}

type StockBranchItem struct {
	BranchCode           string          `json:"branchCode"`
	BranchName           string          `json:"branchName"`
	ProductName          string          `json:"productName"`
	ProductCode          string          `json:"productCode" validate:"required"`
	UOMName              string          `json:"uomName"`
	Stock                decimal.Decimal `json:"stock"`
	HPP                  decimal.Decimal `json:"hpp"`
	SellPriceMerchandise decimal.Decimal `json:"sellPriceMerchandise"`
}

type VisitPurpose struct {
	VisitPurposeID   int    `json:"visitPurposeID" validate:"required"`
	VisitPurposeName string `json:"visitPurposeName"`
	FlagDineIn       int    `json:"flagDineIn"`
	KioskModeID      int    `json:"kioskModeID"`
	FlagQuickService int    `json:"flagQuickService"`
	FlagShowQueue    int    `json:"flagShowQueue"`
	FlagMaxOrder     int    `json:"flagMaxOrder"`
	FlagActive       int    `json:"flagActive"`
	CreatedBy        string `json:"createdBy"`
	CreatedDate      string `json:"createdDate"`
	EditedBy         string `json:"editedBy"`
	EditedDate       string `json:"editedDate"`
}

type PaymentMethodItem struct {
	PaymentMethodID   int    `json:"paymentMethodID"`
	PaymentMethodCode string `json:"paymentMethodCode"`
	PaymentMethodName string `json:"paymentMethodName"`
}

type PaymentMethodType struct {
	PaymentMethodType string              `json:"paymentMethodType"`
	PaymentMethods    []PaymentMethodItem `json:"paymentMethods"`
}

// PaymentMethods maps a payment method type key to its group. Entries whose
// value is not an object are dropped.
type PaymentMethods map[string]PaymentMethodType

func (m *PaymentMethods) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(PaymentMethods, len(raw))
	for key, value := range raw {
		trimmed := bytes.TrimSpace(value)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			continue
		}
		var group PaymentMethodType
		if err := json.Unmarshal(trimmed, &group); err != nil {
			return err
		}
		out[key] = group
	}
	*m = out
	return nil
}

type BusinessHour struct {
	BranchID  int    `json:"branchID"`
	DayID     int    `json:"dayID"`
	DayName   string `json:"dayName"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    int    `json:"status"`
}

type BranchVisitPurpose struct {
	VisitPurposeID   int             `json:"visitPurposeID"`
	VisitPurposeName string          `json:"visitPurposeName"`
	OrderFee         decimal.Decimal `json:"orderFee"`
	FlagSelfOrder    int             `json:"flagSelfOrder"`
	URL              string          `json:"url"`
}

// Branch is an outlet as listed by get-branch.
type Branch struct {
	BranchCode            string               `json:"branchCode" validate:"required"`
	BranchName            string               `json:"branchName"`
	BranchThumbnailImage  *string              `json:"branchThumbnailImage"`
	BranchBannerImage     *string              `json:"branchBannerImage"`
	BrandName             string               `json:"brandName"`
	Address               string               `json:"address"`
	Phone                 string               `json:"phone"`
	Latitude              decimal.NullDecimal  `json:"latitude"`
	Longitude             decimal.NullDecimal  `json:"longitude"`
	Timezone              string               `json:"timezone"`
	TimezoneVal           decimal.NullDecimal  `json:"timezoneVal"`
	IsOpen                *string              `json:"isOpen"`
	IsForcedClosed        *string              `json:"isForcedClosed"`
	IsForcedClosedMessage *string              `json:"isForcedClosedMessage"`
	Distance              *int                 `json:"distance"`
	InCoverage            *int                 `json:"inCoverage"`
	BusinessHour          []BusinessHour       `json:"businessHour"`
	VisitPurposes         []BranchVisitPurpose `json:"visitPurposes"`
}

type GetMenuRequest struct {
	FilterBranchCode     string `json:"filterBranchCode" validate:"required"`
	FilterVisitPurposeID string `json:"filterVisitPurposeID" validate:"required"`
}

type GetStockBranchRequest struct {
	FilterBranchCode string `json:"filterBranchCode" validate:"required"`
}

type GetVisitPurposeRequest struct {
	VisitPurposeID *string `json:"visitPurposeID,omitempty"`
}

type GetPaymentMethodRequest struct {
	FilterBranchCode string `json:"filterBranchCode" validate:"required"`
}

type GetBranchRequest struct {
	FilterBranchName    *string `json:"filterBranchName,omitempty"`
	FilterBranchAddress *string `json:"filterBranchAddress,omitempty"`
	FilterBranchPhone   *string `json:"filterBranchPhone,omitempty"`
	FilterBrandID       *string `json:"filterBrandID,omitempty"`
}
