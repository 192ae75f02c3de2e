package controller

import (
	"study-tutor-be/internal/dto"
	"study-tutor-be/internal/pkg/serverutils"
	"study-tutor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISubjectController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	ListByTerm(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type subjectController struct {
	subjectService service.ISubjectService
}

func NewSubjectController(subjectService service.ISubjectService) ISubjectController {
	return &subjectController{
		subjectService: subjectService,
	}
}

func (c *subjectController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/subject/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("by-term/:termId", c.ListByTerm)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *subjectController) Create(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.CreateSubjectRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.subjectService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "term not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create subject", res))
}

func (c *subjectController) Show(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.subjectService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "subject not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show subject", res))
}

func (c *subjectController) ListByTerm(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	termId, _ := uuid.Parse(ctx.Params("termId"))

	res, err := c.subjectService.ListByTerm(ctx.Context(), userId, termId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list subjects", res))
}

func (c *subjectController) Update(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateSubjectRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.subjectService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "subject not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update subject", res))
}

func (c *subjectController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.subjectService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete subject", nil))
}
