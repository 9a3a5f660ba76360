package models

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// PageParams carries the page query of the Master POS report endpoints.
type PageParams struct {
	Page int `validate:"gte=0"`
}

func (p PageParams) Values() url.Values {
	q := query{}
	q.num("page", max(p.Page, 1))
	return url.Values(q)
}

// SalesDateRange is the inclusive date filter of Master POS reports.
type SalesDateRange struct {
	FilterSalesDateFrom string `json:"filterSalesDateFrom" validate:"required,datetime=2006-01-02"`
	FilterSalesDateTo   string `json:"filterSalesDateTo" validate:"required,datetime=2006-01-02"`
}

// DateRange returns a SalesDateRange for the given days.
func DateRange(from, to string) SalesDateRange {
	return SalesDateRange{FilterSalesDateFrom: from, FilterSalesDateTo: to}
}

type SalesHeadRequest struct {
	SalesDateRange
	FilterBranchCode string `json:"filterBranchCode,omitempty"`
	FilterBillNum    string `json:"filterBillNum,omitempty"`
	FilterSalesNum   string `json:"filterSalesNum,omitempty"`
}

type SalesPaymentItem struct {
	SalesPaymentBackendID int             `json:"salesPaymentBackendID"`
	SalesPaymentPosID     int             `json:"salesPaymentPosID"`
	PaymentMethodTypeID   int             `json:"paymentMethodTypeID"`
	PaymentMethodTypeName string          `json:"paymentMethodTypeName"`
	PaymentMethodID       int             `json:"paymentMethodID"`
	PaymentMethodName     string          `json:"paymentMethodName"`
	VoucherCode           string          `json:"voucherCode"`
	Notes                 string          `json:"notes"`
	CardNumber            string          `json:"cardNumber"`
	BankName              string          `json:"bankName"`
	AccountName           string          `json:"accountName"`
	SelfOrderID           string          `json:"selfOrderID"`
	VerificationCode      string          `json:"verificationCode"`
	PaymentAmount         decimal.Decimal `json:"paymentAmount"`
	FullPaymentAmount     decimal.Decimal `json:"fullPaymentAmount"`
}

// LineTaxes is the tax block of reported sales lines. OtherTaxOnVAT is a
// flag on some endpoints and an amount on others.
type LineTaxes struct {
	OtherTax      decimal.Decimal `json:"otherTax"`
	OtherTaxValue decimal.Decimal `json:"otherTaxValue"`
	VAT           decimal.Decimal `json:"vat"`
	VATValue      decimal.Decimal `json:"vatValue"`
	OtherVAT      decimal.Decimal `json:"otherVat"`
	OtherVATValue decimal.Decimal `json:"otherVatValue"`
	OtherTaxOnVAT Flex            `json:"otherTaxOnVat"`
}

type SalesLinePackage struct {
	MenuID        int             `json:"menuID"`
	MenuName      string          `json:"menuName"`
	MenuCode      string          `json:"menuCode"`
	Qty           decimal.Decimal `json:"qty"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Price         decimal.Decimal `json:"price"`
	Discount      decimal.Decimal `json:"discount"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	LineTaxes
	Total      decimal.Decimal `json:"total"`
	Notes      string          `json:"notes"`
	StatusID   int             `json:"statusID"`
	StatusName string          `json:"statusName"`
}

type SalesLineExtra struct {
	MenuExtraID   int             `json:"menuExtraID"`
	MenuExtraName string          `json:"menuExtraName"`
	Qty           decimal.Decimal `json:"qty"`
	Price         decimal.Decimal `json:"price"`
	Discount      decimal.Decimal `json:"discount"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	LineTaxes
	Total      decimal.Decimal `json:"total"`
	StatusID   int             `json:"statusID"`
	StatusName string          `json:"statusName"`
}

// SalesMenuReportItem is one sold menu line as reported by the sales-menu,
// sales-head, sales-information and get-sales endpoints.
type SalesMenuReportItem struct {
	SalesDate              string          `json:"salesDate"`
	BranchID               int             `json:"branchID"`
	BranchCode             string          `json:"branchCode"`
	BranchName             string          `json:"branchName"`
	SalesNum               string          `json:"salesNum"`
	BillNum                string          `json:"billNum"`
	BatchID                int             `json:"batchID"`
	MenuCategoryID         int             `json:"menuCategoryID"`
	MenuCategoryName       string          `json:"menuCategoryName"`
	MenuCategoryDetailID   int             `json:"menuCategoryDetailID"`
	MenuCategoryDetailName string          `json:"menuCategoryDetailName"`
	MenuID                 int             `json:"menuID"`
	MenuName               string          `json:"menuName"`
	MenuCode               string          `json:"menuCode"`
	Qty                    decimal.Decimal `json:"qty"`
	OriginalPrice          decimal.Decimal `json:"originalPrice"`
	Price                  decimal.Decimal `json:"price"`
	InclusivePrice         decimal.Decimal `json:"inclusivePrice"`
	Discount               decimal.Decimal `json:"discount"`
	DiscountValue          decimal.Decimal `json:"discountValue"`
	InclusiveDiscountValue decimal.Decimal `json:"inclusiveDiscountValue"`
	LineTaxes
	Total             decimal.Decimal    `json:"total"`
	Notes             string             `json:"notes"`
	StatusID          int                `json:"statusID"`
	StatusName        string             `json:"statusName"`
	PromotionDetailID int                `json:"promotionDetailID"`
	PromotionID       int                `json:"promotionID"`
	MenuPromotionID   int                `json:"menuPromotionID"`
	SalesType         string             `json:"salesType"`
	CancelNotes       string             `json:"cancelNotes"`
	CreatedBy         string             `json:"createdBy"`
	CreatedDate       string             `json:"createdDate"`
	EditedBy          string             `json:"editedBy"`
	EditedDate        string             `json:"editedDate"`
	Packages          []SalesLinePackage `json:"packages"`
	Extras            []SalesLineExtra   `json:"extras"`
}

// SalesTotals is the money block of reported sales headers.
type SalesTotals struct {
	PaxTotal          int             `json:"paxTotal"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	DiscountTotal     decimal.Decimal `json:"discountTotal"`
	MenuDiscountTotal decimal.Decimal `json:"menuDiscountTotal"`
	PromotionDiscount decimal.Decimal `json:"promotionDiscount"`
	OtherTaxTotal     decimal.Decimal `json:"otherTaxTotal"`
	VATTotal          decimal.Decimal `json:"vatTotal"`
	GrandTotal        decimal.Decimal `json:"grandTotal"`
	VoucherTotal      decimal.Decimal `json:"voucherTotal"`
	RoundingTotal     decimal.Decimal `json:"roundingTotal"`
	PaymentTotal      decimal.Decimal `json:"paymentTotal"`
	BillingPrintCount int             `json:"billingPrintCount"`
	PaymentPrintCount int             `json:"paymentPrintCount"`
}

type SalesHeadItem struct {
	SalesNum           string `json:"salesNum" validate:"required"`
	ParentLinkSalesNum string `json:"parentLinkSalesNum"`
	BillNum            string `json:"billNum"`
	SalesDate          string `json:"salesDate"`
	SalesDateIn        string `json:"salesDateIn"`
	SalesDateOut       string `json:"salesDateOut"`
	BranchID           int    `json:"branchID"`
	BranchCode         string `json:"branchCode"`
	MemberID           Flex   `json:"memberID"`
	MemberCode         string `json:"memberCode"`
	MemberName         string `json:"memberName"`
	TableID            int    `json:"tableID"`
	TableName          string `json:"tableName"`
	VisitPurposeID     int    `json:"visitPurposeID"`
	VisitPurposeName   string `json:"visitPurposeName"`
	SalesTotals
	AdditionalInfo string                `json:"additionalInfo"`
	PromotionID    int                   `json:"promotionID"`
	PromotionName  string                `json:"promotionName"`
	StatusID       int                   `json:"statusID"`
	StatusName     string                `json:"statusName"`
	CreatedBy      string                `json:"createdBy"`
	EditedBy       string                `json:"editedBy"`
	EditedDate     string                `json:"editedDate"`
	SalesPayments  []SalesPaymentItem    `json:"salesPayments"`
	SalesMenus     []SalesMenuReportItem `json:"salesMenus"`
}

// SalesInformationParams filters GET /corev1/sales/sales-information.
type SalesInformationParams struct {
	SalesDateFrom string `validate:"required,datetime=2006-01-02"`
	SalesDateTo   string `validate:"required,datetime=2006-01-02"`
	BranchCode    string
	SalesNum      string
	BillNum       string
	SelfOrderID   string
	StatusName    string
	SortBy        string
	SortOrder     string `validate:"omitempty,oneof=asc desc"`
	ExtBranchCode string
	Page          int `validate:"gte=0"`
}

func (p SalesInformationParams) Values() url.Values {
	q := query{}
	q.str("salesDateFrom", p.SalesDateFrom)
	q.str("salesDateTo", p.SalesDateTo)
	q.num("page", max(p.Page, 1))
	q.str("branchCode", p.BranchCode)
	q.str("salesNum", p.SalesNum)
	q.str("billNum", p.BillNum)
	q.str("selfOrderID", p.SelfOrderID)
	q.str("statusName", p.StatusName)
	q.str("sortBy", p.SortBy)
	q.str("sortOrder", p.SortOrder)
	q.str("extBranchCode", p.ExtBranchCode)
	return url.Values(q)
}

type MergeTableItem struct {
	ID       int    `json:"ID"`
	LocalID  int    `json:"localID"`
	SalesNum string `json:"salesNum"`
	TableID  int    `json:"tableID"`
	SyncDate string `json:"syncDate"`
}

type ChildLinkSalesItem struct {
	SalesNum string `json:"salesNum"`
}

type SalesInformationItem struct {
	SalesNum             string          `json:"salesNum" validate:"required"`
	BillNum              string          `json:"billNum"`
	SalesDate            string          `json:"salesDate"`
	SalesDateIn          string          `json:"salesDateIn"`
	SalesDateOut         string          `json:"salesDateOut"`
	BranchID             int             `json:"branchID"`
	BranchCode           string          `json:"branchCode"`
	ExtBranchCode        string          `json:"extBranchCode"`
	MemberCode           string          `json:"memberCode"`
	MemberName           string          `json:"memberName"`
	ExternalMemberCode   string          `json:"externalMemberCode"`
	TableID              int             `json:"tableID"`
	TableName            string          `json:"tableName"`
	VisitPurposeID       int             `json:"visitPurposeID"`
	VisitPurposeName     string          `json:"visitPurposeName"`
	VisitorTypeID        int             `json:"visitorTypeID"`
	VoucherDiscountTotal decimal.Decimal `json:"voucherDiscountTotal"`
	OtherVATTotal        decimal.Decimal `json:"otherVatTotal"`
	DeliveryCost         decimal.Decimal `json:"deliveryCost"`
	OrderFee             decimal.Decimal `json:"orderFee"`
	SalesTotals
	AdditionalInfo     string                `json:"additionalInfo"`
	PromotionID        int                   `json:"promotionID"`
	PromotionName      string                `json:"promotionName"`
	FlagInclusive      Flex                  `json:"flagInclusive"`
	StatusID           int                   `json:"statusID"`
	StatusName         string                `json:"statusName"`
	FullName           string                `json:"fullName"`
	Email              string                `json:"email"`
	PhoneNumber        string                `json:"phoneNumber"`
	CreatedBy          string                `json:"createdBy"`
	EditedBy           string                `json:"editedBy"`
	EditedDate         string                `json:"editedDate"`
	SalesPayments      []SalesPaymentItem    `json:"salesPayments"`
	SalesMenus         []SalesMenuReportItem `json:"salesMenus"`
	ParentLinkSalesNum string                `json:"parentlinkSalesNum"`
	ChildLinkSalesNum  []ChildLinkSalesItem  `json:"childlinkSalesNum"`
	MergeTable         []MergeTableItem      `json:"mergetable"`
}

type SalesMenuCompletionRequest struct {
	SalesDateRange
	FilterBranchCode string `json:"filterBranchCode,omitempty"`
}

type SalesMenuCompletionItem struct {
	SalesDate          string          `json:"salesDate"`
	OrderTime          string          `json:"orderTime"`
	BranchCode         string          `json:"branchCode"`
	BranchName         string          `json:"branchName"`
	SalesNum           string          `json:"salesNum"`
	BillNum            string          `json:"billNum"`
	MenuCategoryDetail string          `json:"menuCategoryDetail"`
	MenuCategory       string          `json:"menuCategory"`
	SalesMenuID        int             `json:"salesMenuID"`
	MenuCode           string          `json:"menuCode"`
	Menu               string          `json:"menu"`
	KitchenQty         decimal.Decimal `json:"kitchenQty"`
	KitchenProcess     decimal.Decimal `json:"kitchenProcess"`
	CheckerQty         decimal.Decimal `json:"checkerQty"`
	CheckerProcess     decimal.Decimal `json:"checkerProcess"`
	TotalProcess       decimal.Decimal `json:"totalProcess"`
}

// SalesMenuSummaryParams filters GET /extv1/sales/sales-menu-summary/.
type SalesMenuSummaryParams struct {
	SalesDate  string `validate:"required,datetime=2006-01-02"`
	BranchCode string
}

func (p SalesMenuSummaryParams) Values() url.Values {
	q := query{}
	q.str("salesDate", p.SalesDate)
	q.str("branchCode", p.BranchCode)
	return url.Values(q)
}

type MenuSummaryItem struct {
	MenuID                 int             `json:"menuID"`
	MenuCode               string          `json:"menuCode"`
	MenuName               string          `json:"menuName"`
	MenuCategoryDetailDesc string          `json:"menuCategoryDetailDesc"`
	MenuCategoryDesc       string          `json:"menuCategoryDesc"`
	Qty                    decimal.Decimal `json:"qty"`
	Amount                 decimal.Decimal `json:"amount"`
	Tax                    decimal.Decimal `json:"tax"`
	VAT                    decimal.Decimal `json:"vat"`
	SC                     decimal.Decimal `json:"sc"`
	Discount               decimal.Decimal `json:"discount"`
	Total                  decimal.Decimal `json:"total"`
}

type SalesMenuSummaryResult struct {
	SalesDate  string            `json:"salesDate"`
	BranchCode string            `json:"branchCode"`
	BranchName string            `json:"branchName"`
	Menus      []MenuSummaryItem `json:"menus"`
}

// Total sums the line totals of the summary.
func (r SalesMenuSummaryResult) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, m := range r.Menus {
		sum = sum.Add(m.Total)
	}
	return sum
}

type SalesMenuRequest struct {
	SalesDateRange
	FilterBranchCode string `json:"filterBranchCode,omitempty"`
	FilterSalesNum   string `json:"filterSalesNum,omitempty"`
}

// SalesPaymentSummaryParams filters GET /report/sales-payment-summary.
type SalesPaymentSummaryParams struct {
	SalesDate  string `validate:"required,datetime=2006-01-02"`
	BranchCode string
	Page       int `validate:"gte=0"`
}

func (p SalesPaymentSummaryParams) Values() url.Values {
	q := query{}
	q.str("salesDate", p.SalesDate)
	q.num("page", max(p.Page, 1))
	q.str("branchCode", p.BranchCode)
	return url.Values(q)
}

type PaymentSummaryItem struct {
	PaymentMethodTypeID   int             `json:"paymentMethodTypeID"`
	PaymentMethodTypeName string          `json:"paymentMethodTypeName"`
	PaymentMethodID       int             `json:"paymentMethodID"`
	PaymentMethodCode     string          `json:"paymentMethodCode"`
	PaymentMethodName     string          `json:"paymentMethodName"`
	PaymentCount          int             `json:"paymentCount"`
	PaymentAmount         decimal.Decimal `json:"paymentAmount"`
	MDR                   decimal.Decimal `json:"mdr"`
	NetAfterMDR           decimal.Decimal `json:"netAfterMDR"`
}

type SalesPaymentSummaryItem struct {
	SalesDate  string               `json:"salesDate"`
	BranchCode string               `json:"branchCode"`
	BranchName string               `json:"branchName"`
	Payments   []PaymentSummaryItem `json:"payments"`
}

// Totals returns the summed payment amount and net after MDR.
func (s SalesPaymentSummaryItem) Totals() (amount, net decimal.Decimal) {
	amount, net = decimal.Zero, decimal.Zero
	for _, p := range s.Payments {
		amount = amount.Add(p.PaymentAmount)
		net = net.Add(p.NetAfterMDR)
	}
	return amount, net
}
