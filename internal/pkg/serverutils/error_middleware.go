package serverutils

import (
	"github.com/gofiber/fiber/v2"

	"handyman-chat-be/internal/constant"
	"handyman-chat-be/internal/pkg/logger"
)

// ErrorHandlerMiddleware converts panics and unhandled handler errors into a
// safe 500 payload so no failure detail leaks to the client.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				log.Error("http", "panic recovered", map[string]interface{}{
					"path":  ctx.Path(),
					"panic": r,
				})
				_ = ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": constant.ErrInternal,
				})
			}
		}()

		if err := ctx.Next(); err != nil {
			log.Error("http", "unhandled handler error", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": constant.ErrInternal,
			})
		}
		return nil
	}
}
