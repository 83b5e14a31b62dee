package handlers

import (
	"lirapay/internal/models"
	"lirapay/internal/services/transfer"
	"lirapay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// TransferHandler exposes the wallet-to-wallet transfer endpoint.
type TransferHandler struct {
	service transfer.Service
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(s transfer.Service) *TransferHandler { return &TransferHandler{service: s} }

// Transfer handles POST /transfer requests.
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	var req struct {
		ToUserID uint            `json:"to_user_id"`
		Amount   decimal.Decimal `json:"amount"`
		Currency models.Currency `json:"currency"`
		Note     string          `json:"note"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	res, err := h.service.Transfer(c.Context(), claims.UserID, req.ToUserID, req.Amount, req.Currency, req.Note)
	if err != nil {
		return response.Domain(c, err)
	}
	return response.Success(c, "transfer completed", res)
}
