package handlers

import (
	"github.com/Goutham-IITJ/Project-Raseed/domain"
	"github.com/Goutham-IITJ/Project-Raseed/internal/api/presenters"
	"github.com/Goutham-IITJ/Project-Raseed/pkg/agent"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ChatHandler interface {
		Ask(c *fiber.Ctx) error
	}

	chatHandler struct {
		agentService agent.AgentService
		validator    *validator.Validate
	}
)

func NewChatHandler(agentService agent.AgentService, validator *validator.Validate) ChatHandler {
	return &chatHandler{
		agentService: agentService,
		validator:    validator,
	}
}

func (h *chatHandler) Ask(c *fiber.Ctx) error {
	email := c.Locals("email").(string)
	req := new(domain.ChatRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedChat, err)
	}

	res, err := h.agentService.Ask(c.Context(), req.Question, email)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedChat, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessChat)
}
