package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// NewApp construye la app Fiber con recover, log de peticiones, /health y Swagger UI (si existe el archivo).
func NewApp(cfg *config.Config, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           60 * time.Second,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: cfg.App.Env != "development",
	})
	app.Use(requestLogger(log))
	app.Use(recover.New())

	// contrib/swagger hace panic si el archivo no existe.
	if f := cfg.HTTP.SwaggerFile; f != "" {
		if _, err := os.Stat(f); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: f,
				Path:     "docs",
				Title:    "Backoffice API",
			}))
		} else {
			log.Warn().Str("file", f).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	return app
}

// requestLogger registra método, ruta, status y duración de cada petición.
func requestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// el ErrorHandler aún no escribió la respuesta
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("http")
		return nil
	}
}
