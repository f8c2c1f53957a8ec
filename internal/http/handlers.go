package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Pakayi/pos-kasir/internal/domain"
	"github.com/Pakayi/pos-kasir/internal/excel"
	"github.com/Pakayi/pos-kasir/internal/repository"
	"github.com/Pakayi/pos-kasir/internal/service"
)

type Handler struct {
	svc  *service.Service
	dash *service.Dashboard
	now  func() time.Time
}

// NewHandler wires the API surface. now is the same timezone-aware clock
// the dashboard host runs on; it stamps the exported report.
func NewHandler(svc *service.Service, dash *service.Dashboard, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{svc: svc, dash: dash, now: now}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (h *Handler) Dashboard(w http.ResponseWriter, _ *http.Request) {
	profile := h.dash.Profile()
	writeJSON(w, http.StatusOK, map[string]any{
		"snapshot":        h.dash.Snapshot(),
		"low_stock_alert": h.dash.AlertVisible(),
		"role":            profile.Role,
	})
}

func (h *Handler) DismissAlert(w http.ResponseWriter, _ *http.Request) {
	h.dash.DismissAlert()
	writeJSON(w, http.StatusOK, map[string]any{"low_stock_alert": h.dash.AlertVisible()})
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.ListTransactions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": txs, "count": len(txs)})
}

type createTransactionRequest struct {
	TotalAmount   int64                `json:"total_amount"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	// Millisecond epoch; omitted means "now". Importing writers set it.
	Timestamp *int64 `json:"timestamp,omitempty"`
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	var ts *time.Time
	if req.Timestamp != nil {
		value := time.UnixMilli(*req.Timestamp)
		ts = &value
	}

	tx, err := h.svc.RecordTransaction(r.Context(), req.TotalAmount, req.PaymentMethod, ts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListProducts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.svc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, product)
}

type createProductRequest struct {
	ProductName   string `json:"product_name"`
	SellPrice     int64  `json:"sell_price"`
	Stock         int    `json:"stock"`
	MinStockAlert int    `json:"min_stock_alert"`
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	product, err := h.svc.CreateProduct(r.Context(), repository.ProductCreateInput{
		ProductName:   req.ProductName,
		SellPrice:     req.SellPrice,
		Stock:         req.Stock,
		MinStockAlert: req.MinStockAlert,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

type patchProductRequest struct {
	ProductName   *string `json:"product_name"`
	SellPrice     *int64  `json:"sell_price"`
	Stock         *int    `json:"stock"`
	MinStockAlert *int    `json:"min_stock_alert"`
}

func (h *Handler) PatchProduct(w http.ResponseWriter, r *http.Request) {
	var req patchProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	product, err := h.svc.PatchProduct(r.Context(), chi.URLParam(r, "id"), repository.ProductPatchInput{
		ProductName:   req.ProductName,
		SellPrice:     req.SellPrice,
		Stock:         req.Stock,
		MinStockAlert: req.MinStockAlert,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.AppSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := h.svc.SaveSettings(r.Context(), settings); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": true})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.GetProfile(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var profile domain.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := h.svc.SaveProfile(r.Context(), profile); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": true})
}

func (h *Handler) ForceOwnerRole(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ForceOwnerRole(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"role": domain.RoleOwner})
}

func (h *Handler) ExportSalesReport(w http.ResponseWriter, _ *http.Request) {
	file, err := excel.BuildSalesReport(h.dash.Snapshot(), h.now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="laporan-penjualan.xlsx"`)
	if err := file.Write(w); err != nil {
		log.Printf("write sales report: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
