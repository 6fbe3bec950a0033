package stub

import (
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tasker-hq/tasker-go/internal/observability"
	apperrors "github.com/tasker-hq/tasker-go/pkg/util"
)

// RegisterMiddlewares attaches error handling and request logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics) {
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(requestLogger(logger, metrics))
}

// errorHandlingMiddleware converts handler errors into the wire shape the
// client normalizer understands: an `error` string plus a machine code.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				metrics.RecordError(domainErr.Code)
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(fiber.Map{
					"error": domainErr.Message,
					"code":  domainErr.Code,
				})
				err = nil
			}
		}()
		return c.Next()
	}
}

func requestLogger(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := uuid.NewString()
		c.Locals("request_id", requestID)

		err := c.Next()

		status := c.Response().StatusCode()
		metrics.RecordRequest(c.Method(), c.Path(), status)
		logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		)
		return err
	}
}
