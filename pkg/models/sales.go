package models

import "github.com/shopspring/decimal"

// SalesStatus is the status of a sales transaction.
type SalesStatus int

const (
	SalesNew       SalesStatus = 1
	SalesFinished  SalesStatus = 8
	SalesCancelled SalesStatus = 12
	SalesVoid      SalesStatus = 24
)

func (s SalesStatus) String() string {
	switch s {
	case SalesNew:
		return "new"
	case SalesFinished:
		return "finished"
	case SalesCancelled:
		return "cancelled"
	case SalesVoid:
		return "void"
	}
	return "unknown"
}

// MenuStatus is the kitchen status of one menu line.
type MenuStatus int

const (
	MenuPreparing      MenuStatus = 13
	MenuPrepared       MenuStatus = 34
	MenuServed         MenuStatus = 14
	MenuPrintCancelled MenuStatus = 19
)

func (s MenuStatus) String() string {
	switch s {
	case MenuPreparing:
		return "preparing"
	case MenuPrepared:
		return "prepared"
	case MenuServed:
		return "served"
	case MenuPrintCancelled:
		return "print_cancelled"
	}
	return "unknown"
}

// Taxes is the tax block repeated on every sales line.
type Taxes struct {
	OtherTax      decimal.Decimal `json:"otherTax"`
	OtherTaxValue decimal.Decimal `json:"otherTaxValue"`
	VAT           decimal.Decimal `json:"vat"`
	VATValue      decimal.Decimal `json:"vatValue"`
	OtherVAT      decimal.Decimal `json:"otherVat"`
	OtherVATValue decimal.Decimal `json:"otherVatValue"`
	OtherTaxOnVAT int             `json:"otherTaxOnVat"`
}

// MenuExtra is an add-on ordered with a menu line.
type MenuExtra struct {
	MenuExtraID   int             `json:"menuExtraID"`
	MenuExtraCode string          `json:"menuExtraCode" validate:"required,max=50"`
	MenuExtraName string          `json:"menuExtraName" validate:"required,max=100"`
	Qty           int             `json:"qty"`
	Price         decimal.Decimal `json:"price"`
	Discount      decimal.Decimal `json:"discount"`
	Taxes
	Total    decimal.Decimal `json:"total"`
	StatusID MenuStatus      `json:"statusID"`
}

// MenuPackage is an item bundled with a menu line.
type MenuPackage struct {
	MenuID        int             `json:"menuID"`
	MenuGroupID   *int            `json:"menuGroupID,omitempty"`
	MenuName      string          `json:"menuName" validate:"required,max=50"`
	MenuCode      string          `json:"menuCode" validate:"required,max=50"`
	Qty           int             `json:"qty"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Price         decimal.Decimal `json:"price"`
	Discount      decimal.Decimal `json:"discount"`
	Taxes
	Total    decimal.Decimal `json:"total"`
	Notes    string          `json:"notes"`
	StatusID MenuStatus      `json:"statusID"`
}

// SalesMenuItem is one ordered menu line of a sale.
type SalesMenuItem struct {
	MenuID        int             `json:"menuID"`
	MenuCode      string          `json:"menuCode" validate:"required,max=50"`
	Qty           int             `json:"qty"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Price         decimal.Decimal `json:"price"`
	Discount      decimal.Decimal `json:"discount"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	Taxes
	Total             decimal.Decimal `json:"total"`
	Notes             string          `json:"notes"`
	StatusID          MenuStatus      `json:"statusID"`
	PromotionDetailID *int            `json:"promotionDetailID,omitempty"`
	PromotionID       *int            `json:"promotionID,omitempty"`
	CancelNotes       string          `json:"cancelNotes"`
	CreatedBy         string          `json:"createdBy" validate:"required,max=100"`
	CreatedDate       string          `json:"createdDate" validate:"required"`
	EditedDate        string          `json:"editedDate"`
	Packages          []MenuPackage   `json:"packages" validate:"dive"`
	Extras            []MenuExtra     `json:"extras" validate:"dive"`
}

// Payment is one tender of a sale.
type Payment struct {
	PaymentMethod string          `json:"paymentMethod" validate:"required,max=50"`
	COANo         string          `json:"coaNo" validate:"max=20"`
	VoucherCode   string          `json:"voucherCode" validate:"max=50"`
	Notes         string          `json:"notes" validate:"max=100"`
	CardNumber    string          `json:"cardNumber" validate:"max=20"`
	CardHolder    string          `json:"cardHolder" validate:"max=100"`
	Amount        decimal.Decimal `json:"amount"`
	Charge        decimal.Decimal `json:"charge"`
	Change        decimal.Decimal `json:"change"`
}

// SalesHead is a complete sales transaction as pushed to the API.
type SalesHead struct {
	SalesNum          string          `json:"salesNum" validate:"required,max=20"`
	BillNum           string          `json:"billNum" validate:"max=20"`
	SalesDate         string          `json:"salesDate" validate:"required"`
	SalesDateIn       string          `json:"salesDateIn" validate:"required"`
	SalesDateOut      string          `json:"salesDateOut"`
	BranchCode        string          `json:"branchCode" validate:"required,max=20"`
	MemberCode        string          `json:"memberCode" validate:"max=20"`
	CustomerName      string          `json:"customerName" validate:"max=100"`
	VisitPurposeName  string          `json:"visitPurposeName" validate:"max=50"`
	PaxTotal          int             `json:"paxTotal"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	DiscountTotal     decimal.Decimal `json:"discountTotal"`
	MenuDiscountTotal decimal.Decimal `json:"menuDiscountTotal"`
	PromotionDiscount decimal.Decimal `json:"promotionDiscount"`
	OtherTaxTotal     decimal.Decimal `json:"otherTaxTotal"`
	VATTotal          decimal.Decimal `json:"vatTotal"`
	OtherVATTotal     decimal.Decimal `json:"otherVatTotal"`
	DeliveryFee       decimal.Decimal `json:"deliveryFee"`
	OrderFee          decimal.Decimal `json:"orderFee"`
	GrandTotal        decimal.Decimal `json:"grandTotal"`
	VoucherTotal      decimal.Decimal `json:"voucherTotal"`
	RoundingTotal     decimal.Decimal `json:"roundingTotal"`
	PaymentTotal      decimal.Decimal `json:"paymentTotal"`
	BillingPrintCount int             `json:"billingPrintCount"`
	PaymentPrintCount int             `json:"paymentPrintCount"`
	AdditionalInfo    string          `json:"additionalInfo" validate:"max=200"`
	PromotionID       *int            `json:"promotionID,omitempty"`
	FlagInclusive     int             `json:"flagInclusive" validate:"oneof=0 1"`
	StatusID          SalesStatus     `json:"statusID,omitempty" validate:"omitempty,oneof=1 8 12 24"`
	CreatedBy         string          `json:"createdBy" validate:"required,max=100"`
	EditedBy          string          `json:"editedBy" validate:"max=100"`
	EditedDate        string          `json:"editedDate"`
	Menu              []SalesMenuItem `json:"menu" validate:"dive"`
	Payment           []Payment       `json:"payment" validate:"dive"`
}

// NewSalesHead returns a SalesHead with the server defaults for status and pax.
func NewSalesHead(salesNum, branchCode string) SalesHead {
	return SalesHead{
		SalesNum:   salesNum,
		BranchCode: branchCode,
		PaxTotal:   1,
		StatusID:   SalesNew,
		Menu:       []SalesMenuItem{},
		Payment:    []Payment{},
	}
}

type PushSalesDataRequest struct {
	SalesHead SalesHead `json:"salesHead"`
}

// ShiftData is a cashier shift summary.
type ShiftData struct {
	BranchCode    string          `json:"branchCode" validate:"required,max=20"`
	ShiftNum      string          `json:"shiftNum" validate:"required,max=20"`
	ShiftDate     string          `json:"shiftDate" validate:"required"`
	ShiftStart    string          `json:"shiftStart" validate:"required"`
	ShiftEnd      string          `json:"shiftEnd"`
	CashierName   string          `json:"cashierName" validate:"required,max=100"`
	OpeningCash   decimal.Decimal `json:"openingCash"`
	ClosingCash   decimal.Decimal `json:"closingCash"`
	TotalSales    decimal.Decimal `json:"totalSales"`
	TotalVoid     decimal.Decimal `json:"totalVoid"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	TotalRefund   decimal.Decimal `json:"totalRefund"`
	StatusID      int             `json:"statusID"`
	CreatedBy     string          `json:"createdBy" validate:"required,max=100"`
}

type PushShiftDataRequest struct {
	ShiftData ShiftData `json:"shiftData"`
}

type PushSalesDataResult struct {
	SalesID  *int   `json:"salesID,omitempty"`
	SalesNum string `json:"salesNum" validate:"required"`
	Message  string `json:"message"`
}

type PushShiftDataResult struct {
	ShiftID  *int   `json:"shiftID,omitempty"`
	ShiftNum string `json:"shiftNum" validate:"required"`
	Message  string `json:"message"`
}
