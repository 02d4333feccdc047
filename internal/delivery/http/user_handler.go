package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"cryptobay/internal/delivery/http/dto"
	"cryptobay/internal/domain"
	"cryptobay/internal/usecase"
)

// UserHandler serves registration, balance, portfolio, and history
type UserHandler struct {
	exchange *usecase.ExchangeService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(exchange *usecase.ExchangeService) *UserHandler {
	return &UserHandler{exchange: exchange}
}

// Register creates a user with the starting balance. Re-registering the same
// name resets the balance.
// POST /register
func (h *UserHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "invalid request payload")
	}

	user, err := h.exchange.Register(c.Request().Context(), req.UserName)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dto.RegisterOutput{RegisteredUser: user.Name})
}

// Balance returns the user's current cash balance
// GET /:user/balance
func (h *UserHandler) Balance(c echo.Context) error {
	user, err := h.exchange.Balance(c.Request().Context(), c.Param("user"))
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dto.BalanceOutput{
		UserName: user.Name,
		Balance:  user.Balance.String(),
	})
}

// Portfolio returns the user's net holdings per asset, positives only
// GET /:user/portfolio
func (h *UserHandler) Portfolio(c echo.Context) error {
	holdings, err := h.exchange.Portfolio(c.Request().Context(), c.Param("user"))
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	output := make(map[string]string, len(holdings))
	for name, count := range holdings {
		output[name] = count.String()
	}

	return SuccessResponse(c, output)
}

// History returns a page of the user's ledger entries. Both limit and page
// are required query parameters.
// GET /:user/history?limit=&page=
func (h *UserHandler) History(c echo.Context) error {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil {
		return DomainErrorResponse(c, domain.ErrEmptyInput)
	}
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		return DomainErrorResponse(c, domain.ErrEmptyInput)
	}

	entries, err := h.exchange.History(c.Request().Context(), c.Param("user"), limit, page)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	output := make([]dto.LedgerEntryOutput, 0, len(entries))
	for _, entry := range entries {
		output = append(output, dto.LedgerEntryOutput{
			ID:         entry.ID,
			UserName:   entry.UserName,
			Operation:  entry.Operation,
			CryptoName: entry.AssetName,
			Count:      entry.Count.String(),
			CreatedAt:  entry.CreatedAt.Format(time.RFC3339),
		})
	}

	return SuccessResponse(c, output)
}
