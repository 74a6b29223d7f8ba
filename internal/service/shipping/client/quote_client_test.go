package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"shipfee/internal/pkg/httpclient"
	"shipfee/internal/service/shipping/application"
	"shipfee/internal/service/shipping/domain"
	"shipfee/internal/service/shipping/interfaces"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	holder, err := application.NewFeeTableHolder(domain.DefaultFeeTable(), nil, nil)
	require.NoError(t, err)
	tracer := noop.NewTracerProvider().Tracer("test")

	mux := http.NewServeMux()
	interfaces.NewShippingHandler(application.NewQuoteService(holder, tracer), tracer).RegisterRoutes(mux)
	return httptest.NewServer(mux)
}

func TestQuoteClient_RoundTrip(t *testing.T) {
	srv := newServer(t)
	defer srv.Close()

	c := NewQuoteClient(httpclient.NewClient(noop.NewTracerProvider().Tracer("test")), srv.URL+"/")
	lat, lng := 21.0285, 105.8542
	coord := &application.CoordinateDTO{Lat: &lat, Lng: &lng}

	resp, err := c.Quote(context.Background(), &application.QuoteRequest{
		Method:      "express",
		Destination: &application.DestinationDTO{Coordinate: coord},
		Sellers:     []application.SellerDTO{{SellerID: "s1", Shop: &application.ShopDTO{Coordinate: coord}}},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.MethodExpress, resp.Summary.Method)
	assert.Equal(t, int64(22000), resp.Summary.TotalShippingFee)
}

func TestQuoteClient_BadRequest(t *testing.T) {
	srv := newServer(t)
	defer srv.Close()

	c := NewQuoteClient(httpclient.NewClient(noop.NewTracerProvider().Tracer("test")), srv.URL)
	_, err := c.Quote(context.Background(), &application.QuoteRequest{Method: "standard"})

	var statusErr *httpclient.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
}
