package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/esferaordo/ordo-api/pkg/logger"
)

// RequestLogger registra cada request con zerolog (método, ruta, status, latencia).
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		st := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				st = fe.Code
			} else {
				st = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		if st >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if st >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", st).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")
		return err
	}
}
