package handlers

import (
	"github.com/Goutham-IITJ/Project-Raseed/domain"
	"github.com/Goutham-IITJ/Project-Raseed/internal/api/presenters"
	"github.com/Goutham-IITJ/Project-Raseed/pkg/receipt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReceiptHandler interface {
		UploadReceipt(c *fiber.Ctx) error
		ManualEntry(c *fiber.Ctx) error
		GetReceipt(c *fiber.Ctx) error
		ListReceipts(c *fiber.Ctx) error
		DeleteReceipt(c *fiber.Ctx) error
		CategoryReport(c *fiber.Ctx) error
	}

	receiptHandler struct {
		receiptService receipt.ReceiptService
		validator      *validator.Validate
	}
)

func NewReceiptHandler(receiptService receipt.ReceiptService, validator *validator.Validate) ReceiptHandler {
	return &receiptHandler{
		receiptService: receiptService,
		validator:      validator,
	}
}

func (h *receiptHandler) UploadReceipt(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	file, err := c.FormFile("receipt")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req := domain.UploadReceiptRequest{Receipt: file}
	res, err := h.receiptService.UploadReceipt(c.Context(), req, email)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUploadReceipt)
}

func (h *receiptHandler) ManualEntry(c *fiber.Ctx) error {
	email := c.Locals("email").(string)
	req := new(domain.ManualEntryRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedManualEntry, err)
	}

	invoiceID, err := h.receiptService.ManualEntry(c.Context(), *req, email)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedManualEntry, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"invoice_id": invoiceID}, fiber.StatusCreated, domain.MessageSuccessManualEntry)
}

func (h *receiptHandler) GetReceipt(c *fiber.Ctx) error {
	email := c.Locals("email").(string)
	fileName := c.Params("filename")

	res, err := h.receiptService.GetReceipt(c.Context(), fileName, email)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReceipt, err)
	}
	if res.Invoice == nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetReceipt, domain.ErrReceiptNotFound)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReceipt)
}

func (h *receiptHandler) ListReceipts(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	res, err := h.receiptService.ListAll(c.Context(), email)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedListReceipts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessListReceipts)
}

func (h *receiptHandler) DeleteReceipt(c *fiber.Ctx) error {
	email := c.Locals("email").(string)
	fileName := c.Params("filename")

	if err := h.receiptService.DeleteReceipt(c.Context(), fileName, email); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteReceipt, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteReceipt)
}

func (h *receiptHandler) CategoryReport(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	res, err := h.receiptService.CategoryReport(c.Context(), email)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedListReceipts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCategoryReport)
}
