package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	reportapp "github.com/invoicehub/backend/internal/application/report"
)

// DashboardHandler handles dashboard and reporting endpoints
type DashboardHandler struct {
	BaseHandler
	dashboardService *reportapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *reportapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// RegisterRoutes registers dashboard routes on the given group
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/summary", h.Summary)
		dashboard.GET("/sales", h.MonthlySales)
		dashboard.GET("/top-customers", h.TopCustomers)
		dashboard.GET("/recent-invoices", h.RecentInvoices)
	}
}

// Summary returns headline counts and totals for the user's business
func (h *DashboardHandler) Summary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	summary, err := h.dashboardService.Summary(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// MonthlySales returns per-month billed and received totals.
// The months query parameter controls the range and is clamped server side.
func (h *DashboardHandler) MonthlySales(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	months, _ := strconv.Atoi(c.DefaultQuery("months", "0"))

	sales, err := h.dashboardService.MonthlySales(c.Request.Context(), userID, months)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sales)
}

// TopCustomers returns the customers with the highest billed totals
func (h *DashboardHandler) TopCustomers(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	customers, err := h.dashboardService.TopCustomers(c.Request.Context(), userID, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customers)
}

// RecentInvoices returns the latest issued invoices
func (h *DashboardHandler) RecentInvoices(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invoices, err := h.dashboardService.RecentInvoices(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoices)
}
