package controller

import (
	"study-tutor-be/internal/dto"
	"study-tutor-be/internal/pkg/serverutils"
	"study-tutor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("ask", c.Ask)
}

func (c *chatController) Ask(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Ask(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "subject not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer question", res))
}
