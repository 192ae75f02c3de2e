package server

import (
	"log"

	"study-tutor-be/internal/bootstrap"
	"study-tutor-be/internal/config"
	"study-tutor-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app  *fiber.App
	cfg  *config.Config
	deps *bootstrap.Container
}

func New(cfg *config.Config, deps *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		AppName:   "study-tutor-be",
		BodyLimit: 30 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
	}))

	app.Use(otelfiber.Middleware())
	app.Use(serverutils.ErrorHandlerMiddleware())

	app.Static("/uploads", cfg.Storage.UploadDir)

	srv := &Server{
		app:  app,
		cfg:  cfg,
		deps: deps,
	}
	srv.registerRoutes(app.Group("/api"))

	return srv
}

func (s *Server) registerRoutes(api fiber.Router) {
	s.deps.TermController.RegisterRoutes(api)
	s.deps.SubjectController.RegisterRoutes(api)
	s.deps.ResourceController.RegisterRoutes(api)
	s.deps.NoteController.RegisterRoutes(api)
	s.deps.ChatController.RegisterRoutes(api)
	s.deps.NotificationHandler.RegisterRoutes(api)
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	addr := ":" + s.cfg.App.Port
	log.Printf("[INFO] study-tutor-be listening on %s", addr)
	return s.app.Listen(addr)
}
