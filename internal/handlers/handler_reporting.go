package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/finance_flow/internal/core/domain"
	portssvc "github.com/SscSPs/finance_flow/internal/core/ports/services"
	"github.com/SscSPs/finance_flow/internal/dto"
	"github.com/SscSPs/finance_flow/internal/middleware"
	"github.com/SscSPs/finance_flow/internal/utils/accounting"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves the aggregate views
type reportingHandler struct {
	reportingService portssvc.ReportingService
	now              func() time.Time
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs, now: time.Now}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)
	rg.GET("/summary", h.getSummary)
}

// getSummary godoc
// @Summary Totals, per-category breakdown and date series of the caller's ledger
// @Tags reports
// @Produce json
// @Param period query string false "all, month, year or custom" default(all)
// @Param from query string false "Start date for custom (YYYY-MM-DD)"
// @Param to query string false "End date for custom (YYYY-MM-DD)"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	var (
		summary *domain.Summary
		err     error
	)
	if params.Period == accounting.PeriodAll {
		summary, err = h.reportingService.ComputeSummary(c.Request.Context(), identity)
	} else {
		var period domain.Period
		period, err = h.resolvePeriod(params)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		summary, err = h.reportingService.ComputeSummaryForPeriod(c.Request.Context(), identity, period)
	}
	if err != nil {
		respondError(c, logger, err, "Failed to compute summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

func (h *reportingHandler) resolvePeriod(params dto.SummaryParams) (domain.Period, error) {
	if params.Period != "custom" {
		return accounting.PeriodByName(params.Period, h.now())
	}

	// bounds were format-checked by the binding; an empty one leaves that side open
	var period domain.Period
	if params.From != "" {
		period.From, _ = domain.ParseDate(params.From)
	}
	if params.To != "" {
		period.To, _ = domain.ParseDate(params.To)
	}
	return period, nil
}
