package handlers

import (
	"errors"
	"net/http"

	"github.com/Rakhulsr/vendoz/app/services"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	Base
	dashboard *services.DashboardService
}

func NewDashboardHandler(base Base, dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Base: base, dashboard: dashboard}
}

func (h *DashboardHandler) failed(w http.ResponseWriter, op, msg string, err error) {
	zap.S().Errorf("%s: %v", op, err)
	h.serverError(w, "error", msg, err)
}

func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.dashboard.Metrics(r.Context())
	if err != nil {
		h.failed(w, "DashboardMetrics", "Failed to fetch dashboard data", err)
		return
	}
	h.render.JSON(w, http.StatusOK, metrics)
}

func (h *DashboardHandler) RecentOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.dashboard.RecentOrders(r.Context())
	if err != nil {
		h.failed(w, "RecentOrders", "Failed to fetch recent orders", err)
		return
	}
	h.render.JSON(w, http.StatusOK, orders)
}

func (h *DashboardHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	threshold := queryInt(r, "threshold")
	if threshold <= 0 {
		threshold = services.DefaultLowStockThreshold
	}

	products, err := h.dashboard.LowStock(r.Context(), threshold)
	if err != nil {
		h.failed(w, "LowStock", "Failed to fetch low stock products", err)
		return
	}
	h.render.JSON(w, http.StatusOK, products)
}

func (h *DashboardHandler) Profit(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year")
	months := queryInt(r, "months")

	profit, err := h.dashboard.Profit(r.Context(), year, months)
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": verr.Message})
		return
	}
	if err != nil {
		h.failed(w, "Profit", "Failed to fetch profit data", err)
		return
	}
	h.render.JSON(w, http.StatusOK, profit)
}

func (h *DashboardHandler) QuickStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.QuickStats(r.Context())
	if err != nil {
		h.failed(w, "QuickStats", "Failed to fetch quick stats", err)
		return
	}
	h.render.JSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) SalesTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.dashboard.SalesTrends(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		h.failed(w, "SalesTrends", "Failed to fetch sales trends", err)
		return
	}
	h.render.JSON(w, http.StatusOK, trends)
}
