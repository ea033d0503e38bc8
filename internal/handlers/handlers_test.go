package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmcustoms/megaplan-expenses/config"
	"github.com/crmcustoms/megaplan-expenses/internal/megaplan"
	"github.com/crmcustoms/megaplan-expenses/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAPI подменяет клиента Мегаплана в тестах обработчиков.
type fakeAPI struct {
	dealFn        func(ctx context.Context, id string) (models.RawRecord, error)
	linkedFn      func(ctx context.Context, id string) ([]models.RawRecord, error)
	updateFn      func(ctx context.Context, dealID, fieldName string, value float64) error
	updatedCalls  int
	updatedDealID string
	updatedField  string
	updatedValue  float64
}

func (f *fakeAPI) Deal(ctx context.Context, id string) (models.RawRecord, error) {
	return f.dealFn(ctx, id)
}

func (f *fakeAPI) LinkedDeals(ctx context.Context, id string) ([]models.RawRecord, error) {
	return f.linkedFn(ctx, id)
}

func (f *fakeAPI) UpdateDealField(ctx context.Context, dealID, fieldName string, value float64) error {
	f.updatedCalls++
	f.updatedDealID = dealID
	f.updatedField = fieldName
	f.updatedValue = value
	if f.updateFn != nil {
		return f.updateFn(ctx, dealID, fieldName, value)
	}
	return nil
}

type fakePDF struct {
	convertFn func(ctx context.Context, html []byte) ([]byte, error)
}

func (f *fakePDF) ConvertHTML(ctx context.Context, html []byte) ([]byte, error) {
	return f.convertFn(ctx, html)
}

func testConfig() config.Config {
	return config.Config{
		MegaplanAccount:              "likhtman",
		FieldStatus:                  "1001",
		FieldCategory:                "1002",
		FieldBrand:                   "1003",
		FieldContractor:              "1004",
		FieldPaymentType:             "1005",
		FieldAmount:                  "1006",
		FieldAdditionalCost:          "1007",
		FieldFinalCost:               "1008",
		FieldFairCost:                "1009",
		FieldCurrency:                "1010",
		FieldExpensesTotal:           "Category1000061CustomFieldRashodiSummaItogo",
		FieldLogisticsFinalCost:      "$.Category1000084CustomFieldFinalnayaStoimost.valueInMain",
		FieldOtherSuppliersFinalCost: "$.Category1000083CustomFieldFinalnayaStoimost.valueInMain",
	}
}

// simpleAPI настраивает fakeAPI на головную сделку со связанными сделками.
func simpleAPI(parent models.RawRecord, children map[string]models.RawRecord) *fakeAPI {
	summaries := make([]models.RawRecord, 0, len(children))
	for id := range children {
		summaries = append(summaries, models.RawRecord{"id": id})
	}
	return &fakeAPI{
		dealFn: func(_ context.Context, id string) (models.RawRecord, error) {
			if id == parent["id"].(string) {
				return parent, nil
			}
			if rec, ok := children[id]; ok {
				return rec, nil
			}
			return nil, megaplan.ErrDealNotFound
		},
		linkedFn: func(_ context.Context, _ string) ([]models.RawRecord, error) {
			return summaries, nil
		},
	}
}

func perform(h *Handlers, register func(*gin.Engine, *Handlers), method, target string, body []byte) *httptest.ResponseRecorder {
	r := gin.New()
	register(r, h)

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGetExpensesHandler(t *testing.T) {
	parent := models.RawRecord{"id": "100", "name": "Головной проект"}
	child := models.RawRecord{
		"id":   "1",
		"name": "Доставка",
		"customFields": map[string]any{
			"1008": 1250.5,
		},
	}
	h := New(testConfig(), simpleAPI(parent, map[string]models.RawRecord{"1": child}), nil)

	w := perform(h, func(r *gin.Engine, h *Handlers) {
		r.GET("/api/expenses", h.GetExpensesHandler)
	}, http.MethodGet, "/api/expenses?dealId=100", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "100", body["dealId"])
	assert.Equal(t, "Головной проект", body["dealName"])
	assert.Equal(t, 1250.5, body["total"])

	list, ok := body["expenses"].([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	first := list[0].(map[string]any)
	assert.Equal(t, "1", first["deal_id"])
	assert.Equal(t, "Доставка", first["deal_name"])
	assert.Equal(t, 1250.5, first["finalCost"])
}

func TestGetExpensesHandlerRequiresDealID(t *testing.T) {
	h := New(testConfig(), &fakeAPI{}, nil)

	w := perform(h, func(r *gin.Engine, h *Handlers) {
		r.GET("/api/expenses", h.GetExpensesHandler)
	}, http.MethodGet, "/api/expenses", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "dealId parameter is required")
}

func TestGetExpensesHandlerDealNotFound(t *testing.T) {
	api := &fakeAPI{
		dealFn: func(_ context.Context, _ string) (models.RawRecord, error) {
			return nil, megaplan.ErrDealNotFound
		},
	}
	h := New(testConfig(), api, nil)

	w := perform(h, func(r *gin.Engine, h *Handlers) {
		r.GET("/api/expenses", h.GetExpensesHandler)
	}, http.MethodGet, "/api/expenses?dealId=404", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Deal not found")
}

func TestGetExpensesHandlerUpstreamFailure(t *testing.T) {
	api := &fakeAPI{
		dealFn: func(_ context.Context, _ string) (models.RawRecord, error) {
			return nil, errors.New("Мегаплан недоступен")
		},
	}
	h := New(testConfig(), api, nil)

	w := perform(h, func(r *gin.Engine, h *Handlers) {
		r.GET("/api/expenses", h.GetExpensesHandler)
	}, http.MethodGet, "/api/expenses?dealId=100", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
