package handlers

import (
	"lirapay/internal/models"
	"lirapay/internal/services/wallet"
	"lirapay/internal/utils/pagination"
	"lirapay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// AdminHandler exposes the admin-only ledger operations: freezing wallets
// and issuing refunds and bonuses.
type AdminHandler struct {
	walletService wallet.Service
}

func NewAdminHandler(walletService wallet.Service) *AdminHandler {
	return &AdminHandler{walletService: walletService}
}

// ListWallets handles GET /admin/wallets.
func (h *AdminHandler) ListWallets(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	wallets, total, err := h.walletService.ListWallets(c.Context(), p.Limit, p.Offset())
	if err != nil {
		return response.ServerError(c, "failed to list wallets")
	}
	p.SetTotal(total)
	return c.JSON(pagination.Response(p, wallets))
}

// FreezeWallet handles POST /admin/wallets/:id/freeze.
func (h *AdminHandler) FreezeWallet(c *fiber.Ctx) error {
	walletID, err := c.ParamsInt("id")
	if err != nil || walletID <= 0 {
		return response.BadRequest(c, "invalid wallet id")
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := h.walletService.Freeze(c.Context(), uint(walletID), req.Reason); err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "wallet frozen", nil)
}

// UnfreezeWallet handles POST /admin/wallets/:id/unfreeze.
func (h *AdminHandler) UnfreezeWallet(c *fiber.Ctx) error {
	walletID, err := c.ParamsInt("id")
	if err != nil || walletID <= 0 {
		return response.BadRequest(c, "invalid wallet id")
	}

	if err := h.walletService.Unfreeze(c.Context(), uint(walletID)); err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "wallet unfrozen", nil)
}

// Refund handles POST /admin/wallet/refund.
func (h *AdminHandler) Refund(c *fiber.Ctx) error {
	var req struct {
		UserID        uint            `json:"user_id"`
		Amount        decimal.Decimal `json:"amount"`
		Currency      models.Currency `json:"currency"`
		ReferenceType string          `json:"reference_type"`
		ReferenceID   string          `json:"reference_id"`
		Reason        string          `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	res, err := h.walletService.Refund(c.Context(), wallet.RefundInput{
		UserID:        req.UserID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		Reason:        req.Reason,
	})
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "refund completed", res)
}

// Bonus handles POST /admin/wallet/bonus.
func (h *AdminHandler) Bonus(c *fiber.Ctx) error {
	var req struct {
		UserID      uint                   `json:"user_id"`
		Amount      decimal.Decimal        `json:"amount"`
		Currency    models.Currency        `json:"currency"`
		Kind        string                 `json:"type"`
		Description string                 `json:"description"`
		Metadata    map[string]interface{} `json:"metadata"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	res, err := h.walletService.Bonus(c.Context(), wallet.BonusInput{
		UserID:      req.UserID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Kind:        req.Kind,
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "bonus credited", res)
}
