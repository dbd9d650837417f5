package httpapi

import (
	"crypto/hmac"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"loveplanet/payment-svc/internal/domain"
	"loveplanet/payment-svc/internal/service"
	"loveplanet/payment-svc/internal/ws"
)

type Handler struct {
	Coordinator   service.CoordinatorInterface
	Publisher     service.StatusPublisher
	Hub           *ws.Hub
	WebhookSecret string
}

func NewHandler(coordinator service.CoordinatorInterface, publisher service.StatusPublisher, hub *ws.Hub, webhookSecret string) *Handler {
	return &Handler{
		Coordinator:   coordinator,
		Publisher:     publisher,
		Hub:           hub,
		WebhookSecret: webhookSecret,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/payment/create", h.createPayment).Methods("POST")
	r.HandleFunc("/api/payment/webhook", h.webhook).Methods("POST")
	r.HandleFunc("/ws", h.serveWS)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"service":   "payment-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	var req service.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OrderCode == 0 {
		writeError(w, http.StatusBadRequest, "orderCode is required")
		return
	}
	if req.Method == "" {
		req.Method = domain.MethodPayOS
	}

	result, err := h.Coordinator.CreateSession(r.Context(), req)
	if err != nil {
		h.fail(w, "create payment", err)
		return
	}

	data := map[string]interface{}{
		"checkoutUrl": result.CheckoutURL,
		"orderCode":   result.OrderCode,
	}
	if result.IsExistingOrder {
		data["isExistingOrder"] = true
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"code": "00",
		"desc": "success",
		"data": data,
	})
}

// webhookPayload covers both gateway callback shapes: PayOS nests the order
// under data, the PayPal return handler posts the fields flat.
type webhookPayload struct {
	OrderCode int64  `json:"orderCode"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	Data      *struct {
		OrderCode int64  `json:"orderCode"`
		Status    string `json:"status"`
	} `json:"data"`
}

func (h *Handler) webhook(w http.ResponseWriter, r *http.Request) {
	if h.WebhookSecret != "" {
		got := r.Header.Get("X-Webhook-Secret")
		if !hmac.Equal([]byte(got), []byte(h.WebhookSecret)) {
			writeError(w, http.StatusUnauthorized, "invalid webhook signature")
			return
		}
	}

	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	orderCode, status := payload.OrderCode, payload.Status
	if payload.Data != nil {
		if payload.Data.OrderCode != 0 {
			orderCode = payload.Data.OrderCode
		}
		if payload.Data.Status != "" {
			status = payload.Data.Status
		}
	}
	if orderCode == 0 {
		writeError(w, http.StatusBadRequest, "orderCode is required")
		return
	}
	if _, ok := domain.NormalizeStatus(status); !ok {
		writeError(w, http.StatusBadRequest, "unknown payment status")
		return
	}

	// Ack immediately; the consumer applies the transition and notifies
	// the room. Gateways retry on non-2xx, so publish failures bubble up.
	err := h.Publisher.PublishStatus(r.Context(), domain.StatusEvent{
		Type:      domain.EventPaymentStatus,
		OrderCode: orderCode,
		Status:    status,
		Message:   payload.Message,
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Printf("[payment-svc] publish webhook event: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	ws.ServeWS(h.Hub, w, r)
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrOrderNotPending),
		errors.Is(err, service.ErrAmountMismatch),
		errors.Is(err, service.ErrUnknownMethod):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrGatewayUnavailable):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		log.Printf("[payment-svc] %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"success": false, "error": message})
}
