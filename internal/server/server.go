package server

import (
	"log"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/bootstrap"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/config"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // headroom above the 20MB upload cap
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.AuthController.RegisterRoutes(api)
	c.SettingsController.RegisterRoutes(api)

	c.AgentController.RegisterRoutes(api)
	c.NoteController.RegisterRoutes(api)
	c.TaskController.RegisterRoutes(api)
	c.PlanController.RegisterRoutes(api)

	c.ResourceController.RegisterRoutes(api)
	c.QueryController.RegisterRoutes(api)

	c.TelegramController.RegisterRoutes(api)
}
