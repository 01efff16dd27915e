package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dataform/viewpatterns/internal/host"
	"github.com/dataform/viewpatterns/internal/viewpattern"
)

// AppOptions controls how the Fiber application renders views on a specific port.
type AppOptions struct {
	Logger     *logrus.Logger
	Host       *host.Host
	Env        viewpattern.Env
	ListenPort int
	// ReadTimeout/WriteTimeout 为零时使用 Fiber 默认值。
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

const contextKeyRequestID = "_viewpatterns_request_id"

// NewApp builds a Fiber application with request-id middleware, the view
// render handler and structured JSON errors.
func NewApp(opts AppOptions) (*fiber.App, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.Host == nil {
		return nil, errors.New("host is required")
	}
	if opts.Env.Strings == nil || opts.Env.Output == nil {
		return nil, errors.New("render env is incomplete")
	}
	if opts.Env.SessionKey == nil {
		return nil, errors.New("session key source is required")
	}
	if opts.ListenPort <= 0 {
		return nil, fmt.Errorf("invalid listen port: %d", opts.ListenPort)
	}

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		ReadTimeout:   opts.ReadTimeout,
		WriteTimeout:  opts.WriteTimeout,
	})

	app.Use(recover.New())
	app.Use(requestContextMiddleware())

	handler := newViewHandler(opts)
	app.Get("/view", handler.Handle)
	app.Post("/view", handler.Handle)

	return app, nil
}

// requestContextMiddleware 负责生成请求 ID 并写入响应头。
func requestContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		reqID := uuid.NewString()
		c.Locals(contextKeyRequestID, reqID)
		c.Set("X-Request-ID", reqID)
		return c.Next()
	}
}

// RequestID returns the request identifier stored by the router middleware.
func RequestID(c fiber.Ctx) string {
	if value := c.Locals(contextKeyRequestID); value != nil {
		if reqID, ok := value.(string); ok {
			return reqID
		}
	}
	return ""
}
