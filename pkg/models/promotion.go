package models

import (
	"bytes"
	"encoding/json"
	"net/url"

	"github.com/shopspring/decimal"
)

// PromotionType selects the promotion variant accepted by POST /corev1/promotion/.
type PromotionType int

const (
	PromotionDiscountPercentage      PromotionType = 1
	PromotionFreeItem                PromotionType = 4
	PromotionDiscountPercentageESO   PromotionType = 5
	PromotionDiscountAmountESO       PromotionType = 6
	PromotionDiscountLimitPercentage PromotionType = 10
)

func (t PromotionType) String() string {
	switch t {
	case PromotionDiscountPercentage:
		return "discount_percentage"
	case PromotionFreeItem:
		return "free_item"
	case PromotionDiscountPercentageESO:
		return "discount_percentage_eso"
	case PromotionDiscountAmountESO:
		return "discount_amount_eso"
	case PromotionDiscountLimitPercentage:
		return "discount_limit_percentage"
	}
	return "unknown"
}

// ApplyDiscountTo narrows a promotion that does not cover all categories.
type ApplyDiscountTo int

const (
	ApplyToMenuCategory       ApplyDiscountTo = 1
	ApplyToMenuCategoryDetail ApplyDiscountTo = 2
	ApplyToMenu               ApplyDiscountTo = 3
)

// PromotionDay is an ISO weekday, Monday = 1.
type PromotionDay int

const (
	Monday PromotionDay = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Weekdays is Monday to Friday.
var Weekdays = []PromotionDay{Monday, Tuesday, Wednesday, Thursday, Friday}

// ApplyTo restricts who may use a promotion.
type ApplyTo int

const (
	ApplyToAllTransaction ApplyTo = 1
	ApplyToMemberAndStaff ApplyTo = 2
	ApplyToStaffOnly      ApplyTo = 3
	ApplyToMemberOnly     ApplyTo = 4
)

type PromotionTime struct {
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// PromotionScope holds the fields every promotion variant carries.
type PromotionScope struct {
	PromotionMasterCode  string           `json:"promotionMasterCode" validate:"required"`
	BranchCode           string           `json:"branchCode" validate:"required"`
	Notes                string           `json:"notes"`
	PromotionDaysID      []PromotionDay   `json:"promotionDaysID" validate:"dive,min=1,max=7"`
	StartDate            string           `json:"startDate" validate:"required"`
	EndDate              string           `json:"endDate" validate:"required"`
	AllCategories        bool             `json:"allCategories"`
	ApplyDiscountTo      *ApplyDiscountTo `json:"applyDiscountTo,omitempty" validate:"omitempty,min=1,max=3"`
	MenuCategoryID       []int            `json:"menuCategoryID"`
	MenuCategoryDetailID []int            `json:"menuCategoryDetailID"`
	MenuID               []int            `json:"menuID"`
	UsedForLoyalty       bool             `json:"usedForLoyalty"`
	PromotionCode        string           `json:"promotionCode"`
	PromotionDesc        string           `json:"promotionDesc"`
	PaymentMethodName    *string          `json:"paymentMethodName,omitempty"`
}

// PromotionRequest is implemented by every promotion variant.
type PromotionRequest interface {
	PromotionType() PromotionType
}

// StaffTargeting limits a POS promotion to an audience.
type StaffTargeting struct {
	AuthorizationNeeded bool            `json:"authorizationNeeded"`
	ApplyTo             *ApplyTo        `json:"applyTo,omitempty" validate:"omitempty,min=1,max=4"`
	EmployeeGroupName   []string        `json:"employeeGroupName"`
	PromotionTime       []PromotionTime `json:"promotionTime" validate:"dive"`
}

// PercentageDiscount is the body shared by the POS percentage variants.
type PercentageDiscount struct {
	Discount              decimal.Decimal  `json:"discount"`
	MinSalesPrice         decimal.Decimal  `json:"minSalesPrice"`
	MaxSalesPrice         *decimal.Decimal `json:"maxSalesPrice,omitempty"`
	IncludePackageContent bool             `json:"includePackageContent"`
	IncludeMenuExtra      bool             `json:"includeMenuExtra"`
}

// DiscountPercentageRequest creates a percentage discount (type 1).
type DiscountPercentageRequest struct {
	PromotionScope
	StaffTargeting
	PercentageDiscount
}

func (DiscountPercentageRequest) PromotionType() PromotionType { return PromotionDiscountPercentage }

func (r DiscountPercentageRequest) MarshalJSON() ([]byte, error) {
	type plain DiscountPercentageRequest
	return withType(plain(r), r.PromotionType())
}

// DiscountLimitPercentageRequest creates a percentage discount capped by
// MaxSalesPrice (type 10).
type DiscountLimitPercentageRequest struct {
	PromotionScope
	StaffTargeting
	PercentageDiscount
}

func (DiscountLimitPercentageRequest) PromotionType() PromotionType {
	return PromotionDiscountLimitPercentage
}

func (r DiscountLimitPercentageRequest) MarshalJSON() ([]byte, error) {
	type plain DiscountLimitPercentageRequest
	return withType(plain(r), r.PromotionType())
}

// SelfOrderTargeting holds the channel limits of self-order promotions.
type SelfOrderTargeting struct {
	MaxUsage                   *int     `json:"maxUsage,omitempty" validate:"omitempty,gt=0"`
	MaxUsageTotal              *int     `json:"maxUsageTotal,omitempty" validate:"omitempty,gt=0"`
	VisitPurposeID             []int    `json:"visitPurposeID"`
	SelfOrderPaymentMethodCode []string `json:"selfOrderPaymentMethodCode"`
}

// FreeItemRequest creates a free item promotion (type 4).
type FreeItemRequest struct {
	PromotionScope
	StaffTargeting
	SelfOrderTargeting
	ApplyToApplicationID []string         `json:"applyToApplicationID"`
	VoucherSourceName    *string          `json:"voucherSourceName,omitempty"`
	MinSalesPrice        *decimal.Decimal `json:"minSalesPrice,omitempty"`
	PrefixPromotion      *string          `json:"prefixPromotion,omitempty"`
}

func (FreeItemRequest) PromotionType() PromotionType { return PromotionFreeItem }

func (r FreeItemRequest) MarshalJSON() ([]byte, error) {
	type plain FreeItemRequest
	return withType(plain(r), r.PromotionType())
}

// ESODiscount is the body shared by the self-order discount variants.
type ESODiscount struct {
	Discount                  decimal.Decimal `json:"discount"`
	MinSalesPrice             decimal.Decimal `json:"minSalesPrice"`
	ShowPromotionEzo          bool            `json:"showPromotionEzo"`
	BankIdentificationNumbers []int           `json:"bankIdentificationNumbers"`
}

// DiscountPercentageESORequest creates a self-order percentage discount (type 5).
type DiscountPercentageESORequest struct {
	PromotionScope
	SelfOrderTargeting
	ESODiscount
	MaxDiscount *decimal.Decimal `json:"maxDiscount,omitempty"`
}

func (DiscountPercentageESORequest) PromotionType() PromotionType {
	return PromotionDiscountPercentageESO
}

func (r DiscountPercentageESORequest) MarshalJSON() ([]byte, error) {
	type plain DiscountPercentageESORequest
	return withType(plain(r), r.PromotionType())
}

// DiscountAmountESORequest creates a self-order fixed amount discount (type 6).
type DiscountAmountESORequest struct {
	PromotionScope
	SelfOrderTargeting
	ESODiscount
}

func (DiscountAmountESORequest) PromotionType() PromotionType { return PromotionDiscountAmountESO }

func (r DiscountAmountESORequest) MarshalJSON() ([]byte, error) {
	type plain DiscountAmountESORequest
	return withType(plain(r), r.PromotionType())
}

// withType encodes v with promotionType set, so callers never set it by hand.
func withType(v any, t PromotionType) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	typ, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSuffix(bytes.TrimSpace(body), []byte("}"))
	if len(body) > 1 {
		body = append(body, ',')
	}
	body = append(body, `"promotionType":`...)
	body = append(body, typ...)
	return append(body, '}'), nil
}

type CreatePromotionResult struct {
	PromotionID int    `json:"promotionID" validate:"required"`
	Notes       string `json:"notes"`
}

// PromotionListParams filters GET /extv1/promotion.
type PromotionListParams struct {
	Page          int
	BranchID      *int
	PromotionType *PromotionType `validate:"omitempty,oneof=1 4 5 6 10"`
}

func (p PromotionListParams) Values() url.Values {
	q := query{}
	q.num("page", max(p.Page, 1))
	q.ptr("branchID", p.BranchID)
	if p.PromotionType != nil {
		q.num("promotionType", int(*p.PromotionType))
	}
	return url.Values(q)
}

type PromotionCategoryResult struct {
	MenuCategoryID       *int `json:"menuCategoryID"`
	MenuCategoryDetailID *int `json:"menuCategoryDetailID"`
	MenuID               *int `json:"menuID"`
}

type PromotionBranchResult struct {
	BranchID   int    `json:"branchID"`
	BranchCode string `json:"branchCode"`
	BranchName string `json:"branchName"`
}

type SelfOrderPaymentMethodResult struct {
	SelfOrderPaymentMethodID   Flex   `json:"selfOrderPaymentMethodID"`
	SelfOrderPaymentMethodName string `json:"selfOrderPaymentMethodName"`
}

type PaymentMethodResult struct {
	PaymentMethodID   int    `json:"paymentMethodID"`
	PaymentMethodName string `json:"paymentMethodName"`
}

type PromotionResult struct {
	PromotionID             int                            `json:"promotionID" validate:"required"`
	PromotionCode           string                         `json:"promotionCode"`
	PromotionTypeDesc       string                         `json:"promotionTypeDesc"`
	Notes                   string                         `json:"notes"`
	Discount                decimal.Decimal                `json:"discount"`
	MinSubtotal             decimal.Decimal                `json:"minSubtotal"`
	StartDate               string                         `json:"startDate"`
	EndDate                 string                         `json:"endDate"`
	FlagShow                bool                           `json:"flagShow"`
	PromotionCategory       []PromotionCategoryResult      `json:"promotionCategory"`
	Branches                []PromotionBranchResult        `json:"branches"`
	SelfOrderPaymentMethods []SelfOrderPaymentMethodResult `json:"selfOrderPaymentMethods"`
	PaymentMethod           *PaymentMethodResult           `json:"paymentMethod"`
}

// PromotionList decodes the promotion list, which servers send either as a
// bare array or as a page object with the array under data.
type PromotionList []PromotionResult

func (l *PromotionList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var page struct {
			Data []PromotionResult `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return err
		}
		*l = page.Data
		return nil
	}
	var items []PromotionResult
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return err
	}
	*l = items
	return nil
}
