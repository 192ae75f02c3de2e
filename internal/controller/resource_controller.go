package controller

import (
	"io"
	"strings"

	"study-tutor-be/internal/dto"
	"study-tutor-be/internal/pkg/serverutils"
	"study-tutor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// 25 MB upload cap for PDFs
const maxPDFSize = 25 << 20

type IResourceController interface {
	RegisterRoutes(r fiber.Router)
	UploadPDF(ctx *fiber.Ctx) error
	AddVideo(ctx *fiber.Ctx) error
	AddPlaylist(ctx *fiber.Ctx) error
	AddLink(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	ListBySubject(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type resourceController struct {
	resourceService service.IResourceService
}

func NewResourceController(resourceService service.IResourceService) IResourceController {
	return &resourceController{
		resourceService: resourceService,
	}
}

func (c *resourceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/resource/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("pdf", c.UploadPDF)
	h.Post("video", c.AddVideo)
	h.Post("playlist", c.AddPlaylist)
	h.Post("link", c.AddLink)
	h.Get("by-subject/:subjectId", c.ListBySubject)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

// UploadPDF accepts a multipart form with a "file" part and a "subject_id"
// field.
func (c *resourceController) UploadPDF(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	subjectId, err := uuid.Parse(ctx.FormValue("subject_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid subject_id")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing file")
	}
	if fileHeader.Size > maxPDFSize {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "file exceeds upload limit")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return fiber.NewError(fiber.StatusBadRequest, "only PDF files are supported")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	req := dto.UploadPDFRequest{
		SubjectId: subjectId,
		FileName:  fileHeader.Filename,
		Data:      data,
	}

	res, err := c.resourceService.UploadPDF(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "subject not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload pdf", res))
}

func (c *resourceController) AddVideo(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.AddVideoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.resourceService.AddVideo(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "subject not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add video", res))
}

func (c *resourceController) AddPlaylist(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.AddPlaylistRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.resourceService.AddPlaylist(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "subject not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add playlist", res))
}

func (c *resourceController) AddLink(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.AddLinkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.resourceService.AddLink(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "subject not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add link", res))
}

func (c *resourceController) Show(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.resourceService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "resource not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show resource", res))
}

func (c *resourceController) ListBySubject(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	subjectId, _ := uuid.Parse(ctx.Params("subjectId"))

	res, err := c.resourceService.ListBySubject(ctx.Context(), userId, subjectId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list resources", res))
}

func (c *resourceController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.resourceService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete resource", nil))
}
