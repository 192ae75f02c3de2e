package controller

import (
	"study-tutor-be/internal/dto"
	"study-tutor-be/internal/pkg/serverutils"
	"study-tutor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Save(ctx *fiber.Ctx) error
	ShowBySubject(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Put("", c.Save)
	h.Get("by-subject/:subjectId", c.ShowBySubject)
	h.Delete("by-subject/:subjectId", c.Delete)
}

func (c *noteController) Save(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.SaveNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Save(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "subject not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save note", res))
}

func (c *noteController) ShowBySubject(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	subjectId, _ := uuid.Parse(ctx.Params("subjectId"))

	res, err := c.noteService.ShowBySubject(ctx.Context(), userId, subjectId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	subjectId, _ := uuid.Parse(ctx.Params("subjectId"))

	if err := c.noteService.Delete(ctx.Context(), userId, subjectId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete note", nil))
}
