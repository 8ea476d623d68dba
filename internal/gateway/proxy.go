package gateway

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/food-delivery-platform/internal/api/http"
	"github.com/spec-kit/food-delivery-platform/internal/observability"
)

// Server is the single public entry point. It matches inbound paths against
// the route table and forwards the request to the owning service, isolating
// upstream failures behind a synthesized 503. It performs no authentication:
// the Authorization header travels untouched and each downstream verifies it
// independently.
type Server struct {
	app     *fiber.App
	table   *Table
	client  *fasthttp.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewServer builds the gateway around an immutable route table. timeout
// bounds the wait for each upstream response.
func NewServer(table *Table, timeout time.Duration, logger *zap.Logger, metrics *observability.Metrics) *Server {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, 0)

	s := &Server{
		app:   app,
		table: table,
		// StreamResponseBody relays large upstream bodies without holding
		// them fully in gateway memory.
		client: &fasthttp.Client{
			NoDefaultUserAgentHeader: true,
			DisablePathNormalizing:   true,
			StreamResponseBody:       true,
		},
		timeout: timeout,
		logger:  logger,
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "gateway"})
	})
	app.Use(s.handleProxy)

	return s
}

// App exposes the fiber application, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts serving on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// handleProxy forwards a matched request and streams the upstream response
// back. A transport failure or timeout never reaches the client raw: the
// gateway answers 503 naming the unavailable service. There is no implicit
// retry; routes opt in per declaration for idempotent operations only.
func (s *Server) handleProxy(c *fiber.Ctx) error {
	route, ok := s.table.Match(c.Path())
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "no route for path")
	}

	target := route.TargetURL(c.Path(), string(c.Request().URI().QueryString()))

	attempts := 1
	if route.RetryIdempotent {
		attempts = 2
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = proxy.DoTimeout(c, target, s.timeout, s.client); err == nil {
			return nil
		}
	}

	s.logger.Warn("upstream unavailable",
		zap.String("route", route.Name),
		zap.String("target", target),
		zap.Error(err),
	)
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": route.Name + " is unavailable",
	})
}
