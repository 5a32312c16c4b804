package app

import (
	"fmt"
	"log"
	"strings"

	"learnpath/internal/config"
	"learnpath/internal/delivery/http/handler"
	"learnpath/internal/delivery/http/middleware"
	"learnpath/internal/delivery/http/routes"
	v1 "learnpath/internal/delivery/http/routes/v1"
	"learnpath/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   c.Config.App.AppName,
		BodyLimit: 12 << 20, // above the resume cap so the handler owns the error
	})

	registerGlobalMiddleware(f)

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Redis),
		v1.Deps{
			Auth:            c.Auth,
			Users:           c.Users,
			Assessments:     c.Assessments,
			Recommendations: c.Recommendations,
			Exports:         c.Exports,
			LinkedIn:        c.LinkedIn,
			AuthMW:          c.AuthMW,
			WS:              ws.NewHandler(c.Hub, log.Default()),
		},
	)
	registry.Register(f)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}
	app := New(container)
	return app, container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(nil).Middleware())
	app.Use(middleware.NewErrorMiddleware().Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
