package handlers

import (
	"github.com/Goutham-IITJ/Project-Raseed/domain"
	"github.com/Goutham-IITJ/Project-Raseed/internal/api/presenters"
	"github.com/Goutham-IITJ/Project-Raseed/pkg/wallet"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	WalletHandler interface {
		CreatePassLink(c *fiber.Ctx) error
	}

	walletHandler struct {
		walletService wallet.WalletService
		validator     *validator.Validate
	}
)

func NewWalletHandler(walletService wallet.WalletService, validator *validator.Validate) WalletHandler {
	return &walletHandler{
		walletService: walletService,
		validator:     validator,
	}
}

func (h *walletHandler) CreatePassLink(c *fiber.Ctx) error {
	email := c.Locals("email").(string)
	req := new(domain.WalletLinkRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedWalletLink, err)
	}

	res, err := h.walletService.CreatePassLink(c.Context(), *req, email)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedWalletLink, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessWalletLink)
}
