package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	_ "github.com/harvestlane/backoffice/docs/swagger"
	"github.com/harvestlane/backoffice/internal/api/dto"
	v1 "github.com/harvestlane/backoffice/internal/api/v1"
	"github.com/harvestlane/backoffice/internal/domain/order"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/service"
	"github.com/harvestlane/backoffice/internal/testutil"
	"github.com/harvestlane/backoffice/internal/types"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/suite"
)

type RouterSuite struct {
	testutil.BaseServiceTestSuite
	router *gin.Engine
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	gin.SetMode(gin.TestMode)

	stores := s.GetStores()
	params := service.ServiceParams{
		Logger:            s.GetLogger(),
		Config:            s.GetConfig(),
		DB:                s.GetDB(),
		Locker:            s.GetLocker(),
		Sentry:            s.GetSentry(),
		OrderRepo:         stores.OrderRepo,
		AdjustmentRepo:    stores.AdjustmentRepo,
		EnterpriseFeeRepo: stores.EnterpriseFeeRepo,
		OrderCycleRepo:    stores.OrderCycleRepo,
		TaxRateRepo:       stores.TaxRateRepo,
		FeeEventPublisher: s.GetPublisher(),
	}

	s.router = NewRouter(Handlers{
		Health:        v1.NewHealthHandler(s.GetLogger()),
		OrderFee:      v1.NewOrderFeeHandler(service.NewFeeSynchronizer(params), s.GetLogger()),
		EnterpriseFee: v1.NewEnterpriseFeeHandler(service.NewEnterpriseFeeService(params), s.GetLogger()),
		Calculator:    v1.NewCalculatorHandler(service.NewCalculatorService(params), s.GetLogger()),
	}, s.GetConfig(), s.GetLogger())
}

func (s *RouterSuite) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(w.Body.Bytes(), v))
}

const packingFeeBody = `{
	"enterprise_id": "ent_green_farm",
	"name": "Packing",
	"fee_type": "packing",
	"calculator": {"type": "per_item", "preferences": {"amount": "0.50"}},
	"inherits_tax_category": true
}`

func (s *RouterSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, w.Code)
	s.NotEmpty(w.Header().Get(types.HeaderRequestID))
}

func (s *RouterSuite) TestSwaggerDocs() {
	w := s.do(http.MethodGet, "/swagger/doc.json", "")
	s.Require().Equal(http.StatusOK, w.Code)

	var doc struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	s.decode(w, &doc)
	s.Equal("/v1", doc.BasePath)
	s.Contains(doc.Paths, "/enterprise_fees/{id}")
	s.Contains(doc.Paths["/orders/{id}/fees/recreate"], "post")
	s.Contains(doc.Paths["/calculators/preview"], "post")
}

func (s *RouterSuite) TestEnterpriseFeeLifecycle() {
	w := s.do(http.MethodPost, "/v1/enterprise_fees", packingFeeBody)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created dto.EnterpriseFeeResponse
	s.decode(w, &created)
	s.NotEmpty(created.ID)
	s.Equal("Packing", created.Name)
	s.False(created.PerOrder)

	w = s.do(http.MethodGet, "/v1/enterprise_fees/"+created.ID, "")
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/v1/enterprise_fees?enterprise_id=ent_green_farm", "")
	s.Require().Equal(http.StatusOK, w.Code)
	var list dto.ListEnterpriseFeesResponse
	s.decode(w, &list)
	s.Len(list.Items, 1)

	w = s.do(http.MethodPut, "/v1/enterprise_fees/"+created.ID, `{"name": "Boxing"}`)
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodDelete, "/v1/enterprise_fees/"+created.ID, "")
	s.Equal(http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/v1/enterprise_fees/"+created.ID, "")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestErrorResponses() {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"malformed json", http.MethodPost, "/v1/enterprise_fees", `{`, http.StatusBadRequest},
		{"non numeric preference", http.MethodPost, "/v1/enterprise_fees", `{
			"enterprise_id": "ent_green_farm", "name": "Packing", "fee_type": "packing",
			"calculator": {"type": "per_item", "preferences": {"amount": "a lot"}}
		}`, http.StatusBadRequest},
		{"per order fee inheriting tax category", http.MethodPost, "/v1/enterprise_fees", `{
			"enterprise_id": "ent_green_farm", "name": "Delivery", "fee_type": "transport",
			"calculator": {"type": "flat_rate", "preferences": {"amount": "5"}},
			"inherits_tax_category": true
		}`, http.StatusUnprocessableEntity},
		{"unknown fee", http.MethodGet, "/v1/enterprise_fees/fee_missing", "", http.StatusNotFound},
		{"unknown order", http.MethodPost, "/v1/orders/ord_missing/fees/recreate", "", http.StatusNotFound},
		{"preview without items", http.MethodPost, "/v1/calculators/preview", `{"calculator": {"type": "flat_rate"}}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(tt.method, tt.path, tt.body)
			s.Equal(tt.want, w.Code, w.Body.String())

			var resp ierr.ErrorResponse
			s.decode(w, &resp)
			s.False(resp.Success)
			s.NotEmpty(resp.Error.Display)
			s.NotEmpty(resp.Error.RequestID)
		})
	}
}

func (s *RouterSuite) TestTenantScoping() {
	w := s.do(http.MethodPost, "/v1/enterprise_fees", packingFeeBody, types.HeaderTenantID, "tenant_other")
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created dto.EnterpriseFeeResponse
	s.decode(w, &created)

	w = s.do(http.MethodGet, "/v1/enterprise_fees/"+created.ID, "", types.HeaderTenantID, "tenant_other")
	s.Equal(http.StatusOK, w.Code)

	// requests without a header run as the default tenant
	w = s.do(http.MethodGet, "/v1/enterprise_fees/"+created.ID, "")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestRecreateOrderFees() {
	o := &order.Order{
		ID:       "ord_empty",
		TenantID: types.DefaultTenantID,
		State:    types.OrderStateCart,
		Currency: "AUD",
	}
	s.Require().NoError(s.GetStores().OrderRepo.Put(s.GetContext(), o))

	w := s.do(http.MethodPost, "/v1/orders/ord_empty/fees/recreate", "")
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.OrderFeesResponse
	s.decode(w, &resp)
	s.Equal("ord_empty", resp.OrderID)
	s.Equal(0, resp.Created)
	s.True(resp.Total.IsZero())
}

func (s *RouterSuite) TestCalculatorPreview() {
	w := s.do(http.MethodPost, "/v1/calculators/preview", `{
		"calculator": {"type": "flat_percent_item_total", "preferences": {"percent": "10"}},
		"items": [{"quantity": 2, "price": "4.99"}]
	}`)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.CalculatorPreviewResponse
	s.decode(w, &resp)
	s.Equal("1", resp.Amount.String())
	s.False(resp.PerOrder)
}
