package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milan604/esb-oms/pkg/api"
	"github.com/milan604/esb-oms/pkg/apierr"
	"github.com/milan604/esb-oms/pkg/auth"
	"github.com/milan604/esb-oms/pkg/models"
	"github.com/milan604/esb-oms/pkg/omstest"
	"github.com/milan604/esb-oms/pkg/transport"
)

// newSender wires a dispatcher and token manager to srv the way the client
// facade does.
func newSender(t *testing.T, srv *omstest.Server, creds auth.Credentials) transport.Sender {
	t.Helper()
	var d *transport.Dispatcher
	mgr := auth.NewManager(creds, transport.SenderFunc(func(ctx context.Context, req *transport.Request, out any) error {
		return d.Send(ctx, req, out)
	}))
	d, err := transport.NewDispatcher(srv.Hosts(),
		transport.WithHTTPClient(srv.Client()),
		transport.WithTokenSource(mgr),
		transport.WithBasicCredentials(creds),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func newEnv(t *testing.T, opts ...omstest.Option) (*omstest.Server, transport.Sender) {
	t.Helper()
	srv := omstest.New(t, opts...)
	creds, err := auth.NewCredentials(omstest.DefaultUsername, omstest.DefaultPassword, "")
	require.NoError(t, err)
	return srv, newSender(t, srv, creds)
}

func decodeBody(t *testing.T, c omstest.Capture) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(c.Body, &out))
	return out
}

func requireValidation(t *testing.T, err error) *apierr.ValidationErrors {
	t.Helper()
	require.Error(t, err)
	ae, ok := apierr.As(err)
	require.True(t, ok, "expected *apierr.Error, got %T", err)
	require.Equal(t, apierr.KindValidation, ae.Kind)
	require.NotNil(t, ae.ValidationErrors)
	return ae.ValidationErrors
}

func validHead() models.SalesHead {
	head := models.NewSalesHead("S-001", "BR001")
	head.SalesDate = "2024-01-15"
	head.SalesDateIn = "2024-01-15 10:00:00"
	head.CreatedBy = "cashier"
	return head
}

func TestSalesPushSalesData(t *testing.T) {
	srv, s := newEnv(t)
	srv.Handle(transport.HostAPI, http.MethodPost, "/extv1/push/sales-data",
		omstest.Reply(gin.H{"salesID": 10, "salesNum": "S-001"}))

	res, err := api.NewSales(s).PushSalesData(context.Background(), validHead())
	require.NoError(t, err)
	assert.Equal(t, "S-001", res.SalesNum)
	require.NotNil(t, res.SalesID)
	assert.Equal(t, 10, *res.SalesID)

	last, ok := srv.Last(transport.HostAPI, http.MethodPost, "/extv1/push/sales-data")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(last.Header.Get("Authorization"), "Bearer "))
	head, ok := decodeBody(t, last)["salesHead"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "S-001", head["salesNum"])
	assert.Equal(t, 1, srv.Logins())
}

func TestSalesRejectsInvalidHeadBeforeSending(t *testing.T) {
	srv, s := newEnv(t)
	head := validHead()
	head.SalesNum = ""

	_, err := api.NewSales(s).PushSalesData(context.Background(), head)
	ve := requireValidation(t, err)
	assert.Equal(t, []string{"is required"}, ve.Field("salesHead.salesNum"))
	assert.Zero(t, srv.Requests())
	assert.Zero(t, srv.Logins())
}

func TestSalesLegacyShiftEndpoint(t *testing.T) {
	srv, s := newEnv(t)
	srv.Handle(transport.HostAPI, http.MethodPost, "/ext/push/shift-data",
		omstest.Reply(gin.H{"shiftNum": "SH-1"}))

	res, err := api.NewSales(s).PushShiftDataV1(context.Background(), models.ShiftData{
		BranchCode:  "BR001",
		ShiftNum:    "SH-1",
		ShiftDate:   "2024-01-15",
		ShiftStart:  "2024-01-15 08:00:00",
		CashierName: "Budi",
		CreatedBy:   "manager",
	})
	require.NoError(t, err)
	assert.Equal(t, "SH-1", res.ShiftNum)
	assert.Nil(t, res.ShiftID)
	assert.Equal(t, 1, srv.Hits(transport.HostAPI, http.MethodPost, "/ext/push/shift-data"))
}

func TestMasterPOSUsesBasicAuth(t *testing.T) {
	srv, s := newEnv(t)
	srv.Handle(transport.HostMasterPOS, http.MethodPost, "/external/general/get-menu",
		omstest.ReplyRaw(http.StatusOK, `[{"menuCategoryID":1,"menuCategoryDesc":"Food","menuCategoryDetails":[
			{"ID":2,"menuCategoryDetailDesc":"Rice","menus":[
				{"menuID":3,"menuCode":"NR01","menuName":"Nasi","price":"25000","flagSoldOut":1}]}]}]`))

	menus, err := api.NewMasterPOS(s).GetMenu(context.Background(), "BR001", "1")
	require.NoError(t, err)
	require.Len(t, menus, 1)
	item := menus[0].MenuCategoryDetails[0].Menus[0]
	assert.Equal(t, "NR01", item.MenuCode)
	assert.Equal(t, "25000", item.Price.String())
	assert.True(t, item.SoldOut())

	last, ok := srv.Last(transport.HostMasterPOS, http.MethodPost, "/external/general/get-menu")
	require.True(t, ok)
	assert.Equal(t, omstest.BasicHeader(omstest.DefaultUsername, omstest.DefaultPassword), last.Header.Get("Authorization"))
	body := decodeBody(t, last)
	assert.Equal(t, "BR001", body["filterBranchCode"])
	assert.Equal(t, "1", body["filterVisitPurposeID"])
	assert.Zero(t, srv.Logins())
}

func TestMasterPOSPaymentMethodSkipsNonObjects(t *testing.T) {
	srv, s := newEnv(t)
	srv.Handle(transport.HostMasterPOS, http.MethodPost, "/external/general/get-payment-method",
		omstest.ReplyRaw(http.StatusOK, `{
			"cash":{"paymentMethodType":"Cash","paymentMethods":[{"paymentMethodID":1,"paymentMethodCode":"CASH","paymentMethodName":"Cash"}]},
			"status":"ok",
			"count":2}`))

	methods, err := api.NewMasterPOS(s).GetPaymentMethod(context.Background(), "BR001")
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, "CASH", methods["cash"].PaymentMethods[0].PaymentMethodCode)
}

func TestMasterPOSNeedsPasswordCredentials(t *testing.T) {
	srv := omstest.New(t)
	creds, err := auth.NewCredentials("", "", "static-token")
	require.NoError(t, err)
	s := newSender(t, srv, creds)

	_, err = api.NewMasterPOS(s).GetStockBranch(context.Background(), "BR001")
	require.Error(t, err)
	assert.True(t, apierr.IsKind(err, apierr.KindAuthentication))
	assert.True(t, errors.Is(err, transport.ErrBasicUnavailable))
	assert.Zero(t, srv.Requests())
}

func TestMenuListSendsQuery(t *testing.T) {
	srv, s := newEnv(t)
	srv.Handle(transport.HostAPI, http.MethodGet, "/corev1/master/get-menu",
		omstest.ReplyRaw(http.StatusOK, `{"status":"ok","result":{"page":"2","limit":10,"count":1,
			"data":[{"menuID":5,"menuCode":"T1","menuName":"Tea","flagTax":"Yes"}]}}`))

	page, err := api.NewMenus(s).List(context.Background(), models.MenuParams{Page: 2, MenuCode: "T1"})
	require.NoError(t, err)
	assert.Equal(t, models.Flex("2"), page.Page)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Yes", page.Data[0].FlagTax.String())

	last, ok := srv.Last(transport.HostAPI, http.MethodGet, "/corev1/master/get-menu")
	require.True(t, ok)
	assert.Equal(t, "2", last.Query.Get("page"))
	assert.Equal(t, "1", last.Query.Get("flagActive"))
	assert.Equal(t, "T1", last.Query.Get("menuCode"))
}

func TestMenuResultMissingIDIsShapeMismatch(t *testing.T) {
	srv, s := newEnv(t)
	srv.Handle(transport.HostAPI, http.MethodPost, "/corev1/master/create-menu",
		omstest.ReplyRaw(http.StatusOK, `{"status":"ok","result":[{"menuName":"Tea"}]}`))

	_, err := api.NewMenus(s).Create(context.Background(), models.CreateMenuRequest{
		MenuCategoryDetailID: 1,
		MenuName:             "Tea",
		MenuCode:             "T1",
	})
	ve := requireValidation(t, err)
	assert.NotEmpty(t, ve.Fields)
	assert.Contains(t, err.Error(), "unexpected response shape")
	assert.Equal(t, 1, srv.Hits(transport.HostAPI, http.MethodPost, "/corev1/master/create-menu"))
}

func promotionScope() models.PromotionScope {
	return models.PromotionScope{
		PromotionMasterCode: "PM-01",
		BranchCode:          "BR001",
		PromotionDaysID:     models.Weekdays,
		StartDate:           "2024-01-01",
		EndDate:             "2024-12-31",
		AllCategories:       true,
	}
}

func TestPromotionCreateSetsType(t *testing.T) {
	srv, s := newEnv(t)
	srv.Handle(transport.HostAPI, http.MethodPost, "/corev1/promotion/",
		omstest.Reply(gin.H{"promotionID": 7}))

	res, err := api.NewPromotions(s).CreateFreeItem(context.Background(), models.FreeItemRequest{
		PromotionScope: promotionScope(),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, res.PromotionID)

	last, ok := srv.Last(transport.HostAPI, http.MethodPost, "/corev1/promotion/")
	require.True(t, ok)
	body := decodeBody(t, last)
	assert.Equal(t, float64(models.PromotionFreeItem), body["promotionType"])
	assert.Equal(t, "PM-01", body["promotionMasterCode"])
}

func TestPromotionCreateValidatesScope(t *testing.T) {
	srv, s := newEnv(t)
	scope := promotionScope()
	scope.BranchCode = ""
	scope.PromotionDaysID = []models.PromotionDay{0}

	_, err := api.NewPromotions(s).Create(context.Background(), models.DiscountPercentageRequest{PromotionScope: scope})
	ve := requireValidation(t, err)
	assert.Equal(t, []string{"is required"}, ve.Field("branchCode"))
	assert.NotEmpty(t, ve.Field("promotionDaysID[0]"))
	assert.Zero(t, srv.Requests())
}

func TestPromotionListShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"list", `{"status":"ok","result":[{"promotionID":1}]}`, 1},
		{"page", `{"status":"ok","result":{"data":[{"promotionID":1},{"promotionID":2}]}}`, 2},
		{"empty", `{"status":"ok","result":[]}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, s := newEnv(t)
			srv.Handle(transport.HostAPI, http.MethodGet, "/extv1/promotion", omstest.ReplyRaw(http.StatusOK, tt.body))

			typ := models.PromotionDiscountPercentage
			got, err := api.NewPromotions(s).List(context.Background(), models.PromotionListParams{
				BranchID:      models.Int(3),
				PromotionType: &typ,
			})
			require.NoError(t, err)
			assert.Len(t, got, tt.want)

			last, _ := srv.Last(transport.HostAPI, http.MethodGet, "/extv1/promotion")
			assert.Equal(t, "1", last.Query.Get("page"))
			assert.Equal(t, "3", last.Query.Get("branchID"))
			assert.Equal(t, "1", last.Query.Get("promotionType"))
		})
	}
}

func TestMemberGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		srv, s := newEnv(t)
		srv.Handle(transport.HostAPI, http.MethodGet, "/extv1/member",
			omstest.ReplyRaw(http.StatusOK, `{"status":"ok","result":{"memberCode":"WGG1","memberName":"Ana","balance":"1500.50"}}`))

		m, err := api.NewMembers(s).Get(context.Background(), "WGG1")
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, "Ana", m.MemberName)
		assert.Equal(t, "1500.5", m.Balance.String())

		last, _ := srv.Last(transport.HostAPI, http.MethodGet, "/extv1/member")
		assert.Equal(t, "WGG1", last.Query.Get("searchMember"))
	})

	for _, body := range []string{`{"status":"ok","result":{}}`, `{"status":"ok","result":null}`, `{"status":"ok"}`} {
		t.Run("empty "+body, func(t *testing.T) {
			srv, s := newEnv(t)
			srv.Handle(transport.HostAPI, http.MethodGet, "/extv1/member", omstest.ReplyRaw(http.StatusOK, body))

			m, err := api.NewMembers(s).Get(context.Background(), "nobody")
			require.NoError(t, err)
			assert.Nil(t, m)
		})
	}

	t.Run("blank search", func(t *testing.T) {
		srv, s := newEnv(t)
		_, err := api.NewMembers(s).Get(context.Background(), "")
		ve := requireValidation(t, err)
		assert.Equal(t, []string{"is required"}, ve.Field("SearchMember"))
		assert.Zero(t, srv.Requests())
	})
}

func TestMemberRetriesOnceAfterRejectedToken(t *testing.T) {
	srv, s := newEnv(t)
	srv.Handle(transport.HostAPI, http.MethodGet, "/extv1/member",
		omstest.Reply(gin.H{"memberCode": "WGG1"}))
	srv.RejectNext(1)

	m, err := api.NewMembers(s).Get(context.Background(), "WGG1")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 1, srv.Logins())
	assert.Equal(t, 1, srv.Refreshes())
	assert.Len(t, srv.Captured(transport.HostAPI, http.MethodGet, "/extv1/member"), 2)
	assert.Equal(t, 1, srv.Hits(transport.HostAPI, http.MethodGet, "/extv1/member"))
}

func TestReportSalesHead(t *testing.T) {
	srv, s := newEnv(t)
	srv.Handle(transport.HostMasterPOS, http.MethodPost, "/external/general/sales-head",
		omstest.ReplyRaw(http.StatusOK, `[{"salesNum":"S-1","grandTotal":"120000","salesPayments":[{"paymentMethodName":"Cash","paymentAmount":120000}],
			"salesMenus":[{"menuCode":"NR01","qty":2,"otherTaxOnVat":1,"packages":[],"extras":[]}]}]`))

	got, err := api.NewReports(s).SalesHead(context.Background(), models.SalesHeadRequest{
		SalesDateRange:   models.DateRange("2024-01-01", "2024-01-31"),
		FilterBranchCode: "BR001",
	}, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "120000", got[0].GrandTotal.String())
	assert.Equal(t, "1", got[0].SalesMenus[0].OtherTaxOnVAT.String())

	last, _ := srv.Last(transport.HostMasterPOS, http.MethodPost, "/external/general/sales-head")
	assert.Equal(t, "3", last.Query.Get("page"))
	body := decodeBody(t, last)
	assert.Equal(t, "2024-01-01", body["filterSalesDateFrom"])
	assert.Equal(t, "BR001", body["filterBranchCode"])
	_, hasBill := body["filterBillNum"]
	assert.False(t, hasBill)
}

func TestReportRejectsMalformedDates(t *testing.T) {
	srv, s := newEnv(t)
	_, err := api.NewReports(s).SalesMenu(context.Background(), models.SalesMenuRequest{
		SalesDateRange: models.DateRange("2024/01/01", "2024-01-31"),
	}, 1)
	ve := requireValidation(t, err)
	assert.Equal(t, []string{"must match layout 2006-01-02"}, ve.Field("filterSalesDateFrom"))
	assert.Zero(t, srv.Requests())
}

func TestReportSalesMenuSummary(t *testing.T) {
	t.Run("data", func(t *testing.T) {
		srv, s := newEnv(t)
		srv.Handle(transport.HostAPI, http.MethodGet, "/extv1/sales/sales-menu-summary/",
			omstest.ReplyRaw(http.StatusOK, `{"status":"ok","data":{"salesDate":"2024-01-01","branchCode":"BR001",
				"menus":[{"menuCode":"A","total":"10.5"},{"menuCode":"B","total":4}]}}`))

		sum, err := api.NewReports(s).SalesMenuSummary(context.Background(), models.SalesMenuSummaryParams{SalesDate: "2024-01-01"})
		require.NoError(t, err)
		require.NotNil(t, sum)
		assert.Equal(t, "14.5", sum.Total().String())
	})

	t.Run("no sales", func(t *testing.T) {
		srv, s := newEnv(t)
		srv.Handle(transport.HostAPI, http.MethodGet, "/extv1/sales/sales-menu-summary/",
			omstest.ReplyRaw(http.StatusOK, `{"status":"ok","data":null}`))

		sum, err := api.NewReports(s).SalesMenuSummary(context.Background(), models.SalesMenuSummaryParams{SalesDate: "2024-01-01"})
		require.NoError(t, err)
		assert.Nil(t, sum)
	})
}

func TestReportSalesPaymentSummaryUsesCoreHost(t *testing.T) {
	srv, s := newEnv(t)
	srv.Handle(transport.HostCore, http.MethodGet, "/report/sales-payment-summary",
		omstest.ReplyRaw(http.StatusOK, `{"status":"ok","result":[{"branchCode":"BR001","payments":[
			{"paymentMethodName":"Cash","paymentAmount":"100","netAfterMDR":"100"},
			{"paymentMethodName":"Card","paymentAmount":"50","mdr":"1","netAfterMDR":"49"}]}]}`))

	got, err := api.NewReports(s).SalesPaymentSummary(context.Background(), models.SalesPaymentSummaryParams{
		SalesDate:  "2024-01-01",
		BranchCode: "BR001",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	amount, net := got[0].Totals()
	assert.Equal(t, "150", amount.String())
	assert.Equal(t, "149", net.String())

	last, _ := srv.Last(transport.HostCore, http.MethodGet, "/report/sales-payment-summary")
	assert.True(t, strings.HasPrefix(last.Header.Get("Authorization"), "Bearer "))
	assert.Equal(t, "2024-01-01", last.Query.Get("salesDate"))
	assert.Equal(t, "1", last.Query.Get("page"))
}

func TestOtherDailyMaterialUsageShapes(t *testing.T) {
	for name, body := range map[string]string{
		"bare":     `[{"productCode":"P1","totalQty":"2.5","unit":"kg"}]`,
		"envelope": `{"status":"ok","result":[{"productCode":"P1","totalQty":2.5,"unit":"kg"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv, s := newEnv(t)
			srv.Handle(transport.HostAPI, http.MethodGet, "/corev1/sales/get-daily-sales-material-usage",
				omstest.ReplyRaw(http.StatusOK, body))

			got, err := api.NewOther(s).DailyMaterialUsage(context.Background(), models.DailyMaterialUsageParams{
				SalesDate: "2024-01-01",
				FlagUnit:  models.UnitStock,
			})
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "2.5", got[0].TotalQty.String())

			last, _ := srv.Last(transport.HostAPI, http.MethodGet, "/corev1/sales/get-daily-sales-material-usage")
			assert.Equal(t, "stockUnit", last.Query.Get("flagUnit"))
		})
	}
}

func TestOtherDailyMaterialUsageRejectsUnknownUnit(t *testing.T) {
	srv, s := newEnv(t)
	_, err := api.NewOther(s).DailyMaterialUsage(context.Background(), models.DailyMaterialUsageParams{
		SalesDate: "2024-01-01",
		FlagUnit:  "crate",
	})
	requireValidation(t, err)
	assert.Zero(t, srv.Requests())
}

func TestOtherGetSales(t *testing.T) {
	t.Run("needs a number", func(t *testing.T) {
		srv, s := newEnv(t)
		_, err := api.NewOther(s).GetSales(context.Background(), models.GetSalesRequest{})
		ve := requireValidation(t, err)
		assert.Equal(t, []string{"is required when SalesNum is empty"}, ve.Field("billNum"))
		assert.Zero(t, srv.Requests())
	})

	t.Run("by bill", func(t *testing.T) {
		srv, s := newEnv(t)
		srv.Handle(transport.HostMasterPOS, http.MethodPost, "/external/general/get-sales",
			omstest.ReplyRaw(http.StatusOK, `[{"salesNum":"S-1","billNum":"B-1","memberID":null,
				"salesInfo":[{"key":"table","value":12}]}]`))

		got, err := api.NewOther(s).GetSales(context.Background(), models.GetSalesRequest{BillNum: "B-1"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Nil(t, got[0].MemberID)
		assert.Equal(t, models.Flex("12"), got[0].SalesInfo[0]["value"])

		last, _ := srv.Last(transport.HostMasterPOS, http.MethodPost, "/external/general/get-sales")
		assert.Equal(t, map[string]any{"billNum": "B-1"}, decodeBody(t, last))
	})
}

func TestServerCodeFailureOnSuccessStatus(t *testing.T) {
	srv, s := newEnv(t)
	srv.Handle(transport.HostAPI, http.MethodPost, "/corev1/master/create-menu-category",
		omstest.ReplyRaw(http.StatusOK, `{"status":"fail","code":"EC0110","message":"Menu category not found"}`))

	_, err := api.NewMenuCategories(s).Create(context.Background(), models.CreateMenuCategoryRequest{
		MenuCategoryName:    "Drinks",
		SalesAccount:        "4000",
		COGSAccount:         "5000",
		DiscountAccount:     "4100",
		MenuCategoryDetails: []models.MenuCategoryDetailInput{{MenuCategoryDetailName: "Tea"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierr.ErrNotFound))
	assert.Equal(t, "EC0110", apierrCode(err))
}

func apierrCode(err error) string {
	if ae, ok := apierr.As(err); ok {
		return ae.Code
	}
	return ""
}
