package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"loveplanet/order-svc/internal/domain"
	"loveplanet/order-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Templates service.TemplateServiceInterface
	Vouchers  service.VoucherServiceInterface
	Orders    service.OrderServiceInterface
}

func NewHandler(tplSvc service.TemplateServiceInterface, voucherSvc service.VoucherServiceInterface, orderSvc service.OrderServiceInterface) *Handler {
	return &Handler{
		Templates: tplSvc,
		Vouchers:  voucherSvc,
		Orders:    orderSvc,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/templates", h.listTemplates).Methods("GET")
	r.HandleFunc("/api/templates/{id}", h.getTemplate).Methods("GET")

	r.HandleFunc("/api/vouchers/validate", h.validateVoucher).Methods("POST")

	r.HandleFunc("/api/orders/check-qr-name", h.checkQRName).Methods("POST")
	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")

	r.HandleFunc("/api/qrcodes/{qrName}", h.getQRCode).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Templates.List(r.Context())
	if err != nil {
		h.fail(w, "list templates", err)
		return
	}
	if templates == nil {
		templates = []domain.Template{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "templates": templates})
}

func (h *Handler) getTemplate(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	tpl, err := h.Templates.Get(r.Context(), id)
	if err != nil {
		h.fail(w, "get template", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "template": tpl})
}

func (h *Handler) validateVoucher(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Code == "" {
		writeError(w, http.StatusBadRequest, "Voucher code is required")
		return
	}
	voucher, err := h.Vouchers.Validate(r.Context(), body.Code)
	if err != nil {
		h.fail(w, "validate voucher", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"voucher": map[string]interface{}{
			"code":          voucher.Code,
			"discountType":  voucher.DiscountType,
			"discountValue": voucher.DiscountValue,
		},
	})
}

func (h *Handler) checkQRName(w http.ResponseWriter, r *http.Request) {
	var body struct {
		QRName string `json:"qrName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.QRName == "" {
		writeError(w, http.StatusBadRequest, "QR name is required")
		return
	}
	availability, err := h.Orders.CheckName(r.Context(), body.QRName)
	if err != nil {
		h.fail(w, "check qr name", err)
		return
	}
	if !availability.Available {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":   false,
			"available": false,
			"message":   "QR name already taken",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"available": true,
		"message":   "QR name is available",
		"fullUrl":   availability.FullURL,
	})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var input service.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	order, site, err := h.Orders.Create(r.Context(), input)
	if err != nil {
		h.fail(w, "create order", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   order,
		"qrCode": map[string]interface{}{
			"id":           site.ID,
			"qrName":       site.QRName,
			"fullUrl":      site.FullURL,
			"templateType": site.TemplateType,
		},
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	order, err := h.Orders.Get(r.Context(), id)
	if err != nil {
		h.fail(w, "get order", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "order": order})
}

func (h *Handler) getQRCode(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["qrName"]
	site, tpl, err := h.Orders.GetSite(r.Context(), name)
	if err != nil {
		h.fail(w, "get qr code", err)
		return
	}

	var contentLines []string
	for _, line := range strings.Split(site.Content, "\n") {
		if strings.TrimSpace(line) != "" {
			contentLines = append(contentLines, line)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"qrCode": map[string]interface{}{
			"id":           site.ID,
			"qrName":       site.QRName,
			"fullUrl":      site.FullURL,
			"content":      site.Content,
			"contentLines": contentLines,
			"templateType": site.TemplateType,
			"template": map[string]interface{}{
				"id":          tpl.ID,
				"name":        tpl.Name,
				"description": tpl.Description,
				"imageUrl":    tpl.ImageURL,
				"price":       tpl.Price,
			},
			"createdAt": site.CreatedAt,
		},
	})
}

// fail maps service errors onto the uniform {success:false, error} envelope.
// Unexpected errors are logged with context and answered generically.
func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrUnknownTemplateType):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrSiteNotFound),
		errors.Is(err, service.ErrVoucherNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNameConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("[order-svc] %s: %v", op, err)
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
