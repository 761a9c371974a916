package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"handyman-chat-be/internal/constant"
	"handyman-chat-be/internal/dto"
	"handyman-chat-be/internal/service"
	"handyman-chat-be/pkg/chatbot"
	"handyman-chat-be/pkg/store"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
}

type chatController struct {
	service  service.IChatService
	validate *validator.Validate
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{
		service:  service,
		validate: validator.New(),
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Post("/session", c.CreateSession)
	h.Post("/message", c.SendMessage)
	h.Get("/history/:sessionId", c.GetHistory)
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.service.CreateSession(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: constant.ErrInvalidRequest})
	}

	if err := c.validate.Struct(&req); err != nil {
		if req.SessionID == "" {
			return ctx.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: constant.ErrMissingSessionID})
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: constant.ErrMissingMessage})
	}
	if strings.TrimSpace(req.Message) == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: constant.ErrMissingMessage})
	}

	res, err := c.service.SendMessage(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: constant.ErrSessionNotFound})
		}
		if errors.Is(err, chatbot.ErrRunTimeout) {
			return ctx.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: constant.TimeoutResponse})
		}
		return err
	}
	return ctx.JSON(res)
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")

	res, err := c.service.GetHistory(ctx.Context(), sessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: constant.ErrSessionNotFound})
		}
		return err
	}
	return ctx.JSON(res)
}
