// Package server assembles the fiber application: middleware, the GraphQL
// endpoint, the Prometheus scrape endpoint and the static frontend.
package server

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/arikankainen/consequat-server/internal/auth"
	"github.com/arikankainen/consequat-server/internal/config"
	"github.com/arikankainen/consequat-server/internal/gql"
	"github.com/arikankainen/consequat-server/internal/metrics"
	"github.com/arikankainen/consequat-server/internal/service"
)

type Server struct {
	app *fiber.App
	log *zap.SugaredLogger
}

func New(cfg *config.Config, svc *service.Services, codec *auth.TokenCodec, log *zap.SugaredLogger) (*Server, error) {
	schema, err := gql.NewSchema()
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		DisableStartupMessage: true,
	})

	app.Use(requestLogger(log))
	app.Use(cors.New())

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", metrics.Handler())

	handler := gql.NewHandler(schema, svc, log)
	app.Post("/graphql", Authenticate(codec, svc), handler.Handle)

	// Serve the frontend build; unknown paths fall through to index.html so
	// client-side routing works on hard reloads.
	app.Static("/", cfg.StaticDir)
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(cfg.StaticDir, "index.html"))
	})

	return &Server{app: app, log: log}, nil
}

// App exposes the fiber app, mainly for request-level tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.log.Infof("listening on %s", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
