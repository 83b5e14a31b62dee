package handlers

import (
	"time"

	"lirapay/internal/models"
	"lirapay/internal/repositories"
	"lirapay/internal/services/wallet"
	"lirapay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type WalletHandler struct {
	walletService wallet.Service
}

func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// extractUserClaims is a helper function to reduce duplication
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

// TopUp handles POST /wallet/topup.
func (h *WalletHandler) TopUp(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	var req struct {
		Amount           decimal.Decimal        `json:"amount"`
		Currency         models.Currency        `json:"currency"`
		PaymentMethod    string                 `json:"payment_method"`
		PaymentReference string                 `json:"payment_reference"`
		Metadata         map[string]interface{} `json:"metadata"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	res, err := h.walletService.TopUp(c.Context(), wallet.TopUpInput{
		UserID:           claims.UserID,
		Amount:           req.Amount,
		Currency:         req.Currency,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		Metadata:         req.Metadata,
	})
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "top-up completed", res)
}

// Pay handles POST /wallet/pay.
func (h *WalletHandler) Pay(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	var req struct {
		Amount        decimal.Decimal `json:"amount"`
		Currency      models.Currency `json:"currency"`
		ReferenceType string          `json:"reference_type"`
		ReferenceID   string          `json:"reference_id"`
		Description   string          `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	res, err := h.walletService.Pay(c.Context(), wallet.PayInput{
		UserID:        claims.UserID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		Description:   req.Description,
	})
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "payment completed", res)
}

// GetBalance handles GET /wallet/balance?currency=USD.
func (h *WalletHandler) GetBalance(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	currency := models.Currency(c.Query("currency"))
	summary, err := h.walletService.GetBalance(c.Context(), claims.UserID, currency)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "balance", summary)
}

// GetHistory handles GET /wallet/history with filter query parameters.
func (h *WalletHandler) GetHistory(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	filter := repositories.HistoryFilter{
		Type:     c.Query("type"),
		Status:   c.Query("status"),
		Currency: models.Currency(c.Query("currency")),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 10),
	}
	if from := c.Query("date_from"); from != "" {
		t, err := parseDate(from)
		if err != nil {
			return response.BadRequest(c, "invalid date_from")
		}
		filter.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := parseDate(to)
		if err != nil {
			return response.BadRequest(c, "invalid date_to")
		}
		filter.DateTo = &t
	}

	items, page, err := h.walletService.GetHistory(c.Context(), claims.UserID, filter)
	if err != nil {
		return response.Domain(c, err)
	}
	return c.JSON(fiber.Map{
		"transactions": items,
		"pagination":   page,
	})
}

// GetStatistics handles GET /wallet/statistics.
func (h *WalletHandler) GetStatistics(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	stats, err := h.walletService.GetStatistics(c.Context(), claims.UserID)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "statistics", stats)
}

// UpdateSettings handles PUT /wallet/settings.
func (h *WalletHandler) UpdateSettings(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	var settings models.WalletSettings
	if err := c.BodyParser(&settings); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	w, err := h.walletService.UpdateSettings(c.Context(), claims.UserID, settings)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "settings updated", w)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
