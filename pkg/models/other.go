package models

import (
	"net/url"

	"github.com/shopspring/decimal"
)

type BranchSalesSummaryRequest struct {
	SalesDateRange
	SalesType string `json:"salesType,omitempty"`
}

type BranchSalesSummaryItem struct {
	SalesDate     string          `json:"salesDate"`
	BranchCode    string          `json:"branchCode"`
	BranchName    string          `json:"branchName"`
	PaxTotal      int             `json:"paxTotal"`
	BillTotal     int             `json:"billTotal"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountTotal decimal.Decimal `json:"discountTotal"`
	SCTotal       decimal.Decimal `json:"scTotal"`
	TaxTotal      decimal.Decimal `json:"taxTotal"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
}

// Unit names accepted by the daily material usage report.
const (
	UnitStock    = "stockUnit"
	UnitPurchase = "purchaseUnit"
	UnitBase     = "baseUnit"
	UnitTransfer = "transferUnit"
	UnitSales    = "salesUnit"
)

// DailyMaterialUsageParams filters GET /corev1/sales/get-daily-sales-material-usage.
type DailyMaterialUsageParams struct {
	SalesDate  string `validate:"required,datetime=2006-01-02"`
	FlagUnit   string `validate:"required,oneof=stockUnit purchaseUnit baseUnit transferUnit salesUnit"`
	BranchCode string
}

func (p DailyMaterialUsageParams) Values() url.Values {
	q := query{}
	q.str("salesDate", p.SalesDate)
	q.str("flagUnit", p.FlagUnit)
	q.str("branchCode", p.BranchCode)
	return url.Values(q)
}

type DailySalesMaterialUsageItem struct {
	BranchCode         string          `json:"branchCode"`
	Branch             string          `json:"branch"`
	SalesDate          string          `json:"salesDate"`
	ProductCode        string          `json:"productCode"`
	ProductName        string          `json:"productName"`
	TotalQty           decimal.Decimal `json:"totalQty"`
	Unit               string          `json:"unit"`
	TotalConversionQty decimal.Decimal `json:"totalConversionQty"`
	UnitConversion     string          `json:"unitConversion"`
}

// GetSalesRequest looks up one transaction by bill or sales number.
type GetSalesRequest struct {
	BillNum  string `json:"billNum,omitempty" validate:"required_without=SalesNum"`
	SalesNum string `json:"salesNum,omitempty" validate:"required_without=BillNum"`
}

// SalesDetailItem is a full transaction as returned by get-sales.
type SalesDetailItem struct {
	SalesNum           string  `json:"salesNum"`
	ParentLinkSalesNum *string `json:"parentLinkSalesNum"`
	BillNum            string  `json:"billNum"`
	SalesDate          string  `json:"salesDate"`
	SalesDateIn        string  `json:"salesDateIn"`
	SalesDateOut       string  `json:"salesDateOut"`
	BranchCode         string  `json:"branchCode"`
	BranchName         string  `json:"branchName"`
	MemberID           *int    `json:"memberID"`
	MemberCode         *string `json:"memberCode"`
	MemberName         *string `json:"memberName"`
	TableID            int     `json:"tableID"`
	TableName          string  `json:"tableName"`
	VisitPurposeID     int     `json:"visitPurposeID"`
	VisitPurposeName   string  `json:"visitPurposeName"`
	SalesTotals
	AdditionalInfo string                `json:"additionalInfo"`
	PromotionID    *int                  `json:"promotionID"`
	PromotionName  *string               `json:"promotionName"`
	StatusID       int                   `json:"statusID"`
	StatusName     string                `json:"statusName"`
	CreatedBy      string                `json:"createdBy"`
	EditedBy       string                `json:"editedBy"`
	EditedDate     string                `json:"editedDate"`
	SalesPayments  []SalesPaymentItem    `json:"salesPayments"`
	SalesMenus     []SalesMenuReportItem `json:"salesMenus"`
	SalesInfo      []map[string]Flex     `json:"salesInfo"`
}
