package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"shipfee/internal/service/shipping/application"
	"shipfee/internal/service/shipping/domain"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	holder, err := application.NewFeeTableHolder(domain.DefaultFeeTable(), nil, nil)
	require.NoError(t, err)
	tracer := noop.NewTracerProvider().Tracer("test")

	mux := http.NewServeMux()
	NewShippingHandler(application.NewQuoteService(holder, tracer), tracer).RegisterRoutes(mux)
	return mux
}

func post(mux http.Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/shipping/quote", strings.NewReader(body))
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandleQuote_Rush(t *testing.T) {
	rec := post(newTestMux(t), `{
		"method": "rush",
		"rushDistanceKm": 10,
		"destination": {"province": "Hà Nội"},
		"sellers": [{"sellerId": "s1", "shop": {"shopId": "p1", "province": "Hà Nội"}}]
	}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp application.QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.QuoteID)
	assert.Equal(t, domain.MethodRush, resp.Summary.Method)
	assert.Equal(t, int64(79000), resp.Summary.TotalShippingFee)
	require.Len(t, resp.Summary.Breakdown, 1)

	entry := resp.Summary.Breakdown[0]
	assert.Equal(t, "s1", entry.SellerID)
	assert.Equal(t, "p1", entry.ShopID)
	assert.Equal(t, domain.ScopeDistance, entry.Scope)
	assert.True(t, entry.UsedFallbackDistance)
	require.NotNil(t, entry.DistanceKm)
	assert.Equal(t, 10.0, *entry.DistanceKm)
}

func TestHandleQuote_WireFormat(t *testing.T) {
	rec := post(newTestMux(t), `{"method":"standard","sellers":[{"sellerId":"s1"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	summary := raw["summary"].(map[string]interface{})
	assert.Equal(t, "standard", summary["method"])
	assert.Equal(t, 28000.0, summary["totalShippingFee"])

	entry := summary["breakdown"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "out_of_province", entry["scope"])
	assert.Contains(t, entry, "distanceKm")
	assert.Nil(t, entry["distanceKm"])
	assert.Equal(t, false, entry["usedFallbackDistance"])
}

func TestHandleQuote_BadRequests(t *testing.T) {
	mux := newTestMux(t)
	cases := map[string]string{
		"malformed json":    `{"method":`,
		"empty cart":        `{"method":"standard"}`,
		"missing seller id": `{"sellers":[{"shop":{}}]}`,
		"bad rush distance": `{"method":"rush","rushDistanceKm":-1,"sellers":[{"sellerId":"s"}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := post(mux, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestHandleQuote_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMux(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shipping/quote", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMux(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
