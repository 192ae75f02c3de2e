package serverutils

import (
	"errors"

	"study-tutor-be/pkg/embedding"
	"study-tutor-be/pkg/llm"
	"study-tutor-be/pkg/rag/extract"
	"study-tutor-be/pkg/rag/response"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates domain errors into HTTP statuses so
// controllers can just return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		switch {
		case errors.Is(err, extract.ErrInvalidSource):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, extract.ErrEmptySource):
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, extract.ErrExtractionFailed):
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, llm.ErrRateLimited), errors.Is(err, response.ErrRetriesExhausted):
			return ctx.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, embedding.ErrEmbeddingService):
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(err.Error()))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("internal server error"))
	}
}
