package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/finance_flow/internal/core/domain"
	portssvc "github.com/SscSPs/finance_flow/internal/core/ports/services"
	"github.com/SscSPs/finance_flow/internal/dto"
	"github.com/SscSPs/finance_flow/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for income and expense records.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	rg.POST("/income", h.create(domain.Income))
	rg.GET("/income", h.list(domain.Income))
	rg.POST("/expenses", h.create(domain.Expense))
	rg.GET("/expenses", h.list(domain.Expense))
	rg.GET("/transactions", h.listByKind)
	rg.DELETE("/ledger", h.clear)
}

// create godoc
// @Summary Add an income or expense record
// @Tags ledger
// @Accept json
// @Produce json
// @Param record body dto.CreateTransactionRequest true "Record"
// @Success 201 {object} dto.CreatedResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /income [post]
// @Router /expenses [post]
func (h *ledgerHandler) create(kind domain.TransactionKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("kind", string(kind)))

		identity, ok := middleware.GetIdentityFromContext(c)
		if !ok {
			logger.Error("Identity not found in context")
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
			return
		}

		var req dto.CreateTransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for new record", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
			return
		}
		if req.Amount.IsNegative() {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "amount must not be negative"})
			return
		}

		var date time.Time
		if req.Date != "" {
			// format already checked by the binding
			date, _ = domain.ParseDate(req.Date)
		}

		record := h.ledgerService.RecordIncome
		if kind == domain.Expense {
			record = h.ledgerService.RecordExpense
		}

		id, err := record(c.Request.Context(), identity, *req.Amount, req.Category, date, req.Description)
		if err != nil {
			respondError(c, logger, err, "Failed to add record")
			return
		}

		c.JSON(http.StatusCreated, dto.CreatedResponse{ID: id})
	}
}

// list godoc
// @Summary List the caller's income or expense records
// @Tags ledger
// @Produce json
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /income [get]
// @Router /expenses [get]
func (h *ledgerHandler) list(kind domain.TransactionKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())

		identity, ok := middleware.GetIdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
			return
		}

		records, err := h.ledgerService.FetchTransactions(c.Request.Context(), identity, kind)
		if err != nil {
			respondError(c, logger, err, "Failed to list records")
			return
		}

		c.JSON(http.StatusOK, dto.ToListTransactionsResponse(records))
	}
}

// listByKind godoc
// @Summary List the caller's records of the kind named in the query
// @Tags ledger
// @Produce json
// @Param kind query string true "income or expense"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *ledgerHandler) listByKind(c *gin.Context) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	kind, err := domain.ParseTransactionKind(params.Kind)
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Invalid transaction kind")
		return
	}

	h.list(kind)(c)
}

// clear godoc
// @Summary Delete every income and expense record of the caller
// @Tags ledger
// @Produce json
// @Success 200 {object} dto.ClearLedgerResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /ledger [delete]
func (h *ledgerHandler) clear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	result, err := h.ledgerService.ClearAll(c.Request.Context(), identity)
	if err != nil {
		respondError(c, logger, err, "Failed to clear ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ClearLedgerResponse{
		IncomeRemoved:   result.IncomeRemoved,
		ExpensesRemoved: result.ExpensesRemoved,
	})
}
