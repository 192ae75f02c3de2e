package controller

import (
	"study-tutor-be/internal/dto"
	"study-tutor-be/internal/pkg/serverutils"
	"study-tutor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITermController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type termController struct {
	termService service.ITermService
}

func NewTermController(termService service.ITermService) ITermController {
	return &termController{
		termService: termService,
	}
}

func (c *termController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/term/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func currentUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func (c *termController) Create(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.CreateTermRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.termService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create term", res))
}

func (c *termController) Show(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.termService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "term not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show term", res))
}

func (c *termController) List(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.termService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list terms", res))
}

func (c *termController) Update(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateTermRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.termService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "term not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update term", res))
}

func (c *termController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.termService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete term", nil))
}
