package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"shipfee/internal/pkg/logger"
	"shipfee/internal/service/shipping/application"
	"shipfee/internal/tracing"
)

const maxBodyBytes = 1 << 20

// ShippingHandler 封装了 shipping 服务的 HTTP 处理器
type ShippingHandler struct {
	service *application.QuoteService
	tracer  trace.Tracer
}

// NewShippingHandler 创建一个新的 HTTP 处理器实例
func NewShippingHandler(service *application.QuoteService, tracer trace.Tracer) *ShippingHandler {
	return &ShippingHandler{service: service, tracer: tracer}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *ShippingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/shipping/quote", h.withTrace("shipping-service.Quote", h.handleQuote))
	mux.HandleFunc("/healthz", handleHealthz)
}

// withTrace 提取上游的追踪上下文，开启 server span，并把带 trace_id 的 logger 放进 context
func (h *ShippingHandler) withTrace(spanName string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := h.tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		ctx = logger.WithTraceID(ctx, tracing.GetTraceIDFromContext(ctx))
		next(w, r.WithContext(ctx))
	})
}

func (h *ShippingHandler) handleQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req application.QuoteRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		logger.Ctx(r.Context()).Warn().Err(err).Msg("invalid quote request body")
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		var statusCode int
		switch {
		case errors.Is(err, application.ErrEmptyCart),
			errors.Is(err, application.ErrMissingSellerID),
			errors.Is(err, application.ErrInvalidRushDistance):
			statusCode = http.StatusBadRequest
		default:
			statusCode = http.StatusInternalServerError
			logger.Ctx(r.Context()).Error().Err(err).Msg("quote failed")
		}
		writeError(w, statusCode, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
