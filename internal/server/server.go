package server

import (
	"errors"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/YevheniiGera/dialogflow-fulfillment/internal/config"
	"github.com/YevheniiGera/dialogflow-fulfillment/internal/voice"
	"github.com/YevheniiGera/dialogflow-fulfillment/pkg/fulfillment"
	"github.com/YevheniiGera/dialogflow-fulfillment/pkg/protowire"
)

const requestIDHeader = "X-Request-Id"

var errHandlerFailed = errors.New("fulfillment handler failed")

// Server exposes a fulfillment.Handler as a Dialogflow webhook.
type Server struct {
	app     *fiber.App
	cfg     config.Config
	handler fulfillment.Handler
	logger  *log.Logger
	metrics *metrics
}

func New(cfg config.Config, handler fulfillment.Handler, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	registry := prometheus.NewRegistry()
	s := &Server{
		app:     fiber.New(fiber.Config{DisableStartupMessage: true}),
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		metrics: newMetrics(registry),
	}

	s.app.Use(s.requestID)
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	s.app.Post(cfg.WebhookPath, s.fulfillment)
	s.app.Post(cfg.WebhookPath+"/twiml", s.twiml)
	return s
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen() error {
	s.logger.Info("listening", "addr", s.cfg.Addr, "webhook", s.cfg.WebhookPath)
	return s.app.Listen(s.cfg.Addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) requestID(c *fiber.Ctx) error {
	id := c.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Locals("requestID", id)
	c.Set(requestIDHeader, id)
	return c.Next()
}

// handle runs the shared webhook pipeline. On failure it has already written
// the error response and returns a nil client.
func (s *Server) handle(c *fiber.Ctx, route string) (*fulfillment.WebhookClient, error) {
	start := time.Now()
	logger := s.logger.With("request_id", c.Locals("requestID"), "route", route)
	defer func() {
		s.metrics.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}()

	agent, err := fulfillment.ParseRequest(c.Body())
	if err != nil {
		logger.Warn("invalid webhook request", "err", err)
		s.observe(route, fiber.StatusBadRequest)
		return nil, s.fail(c, fiber.StatusBadRequest, err)
	}
	logger = logger.With("intent", agent.Intent, "session", agent.Session)
	logger.Debug("webhook request", "query", agent.Query, "action", agent.Action, "contexts", agent.Context.Names())

	if err := agent.HandleRequest(s.handler); err != nil {
		logger.Error("handler failed", "err", err)
		s.observe(route, fiber.StatusInternalServerError)
		return nil, s.fail(c, fiber.StatusInternalServerError, errHandlerFailed)
	}
	if s.cfg.ValidateResponses {
		if err := protowire.ValidateResponse(agent.Response()); err != nil {
			logger.Error("invalid webhook response", "err", err)
			s.observe(route, fiber.StatusInternalServerError)
			return nil, s.fail(c, fiber.StatusInternalServerError, err)
		}
	}

	s.observe(route, fiber.StatusOK)
	logger.Info("webhook handled", "messages", len(agent.Messages()), "elapsed", time.Since(start))
	return agent, nil
}

func (s *Server) fulfillment(c *fiber.Ctx) error {
	agent, err := s.handle(c, "fulfillment")
	if agent == nil {
		return err
	}
	return c.JSON(agent.Response())
}

func (s *Server) twiml(c *fiber.Ctx) error {
	agent, err := s.handle(c, "twiml")
	if agent == nil {
		return err
	}
	xml, err := voice.Render(agent.Messages(), voice.Options{
		Language: s.cfg.Voice.Language,
		Voice:    s.cfg.Voice.Name,
		Fallback: s.cfg.Voice.Fallback,
	})
	if err != nil {
		return s.fail(c, fiber.StatusInternalServerError, err)
	}
	c.Set("Content-type", "application/xml; charset=utf-8")
	return c.SendString(xml)
}

func (s *Server) fail(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// observe counts a request. Intent names are caller controlled and stay out
// of the label set.
func (s *Server) observe(route string, status int) {
	s.metrics.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
