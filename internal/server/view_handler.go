package server

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/dataform/viewpatterns/internal/host"
	"github.com/dataform/viewpatterns/internal/logging"
	"github.com/dataform/viewpatterns/internal/viewpattern"
)

// optionKeys 是允许调用方通过请求参数设置的解析开关，计数类选项由宿主计算。
var optionKeys = []string{"edit", "hidenewentry"}

type viewHandler struct {
	logger *logrus.Logger
	host   *host.Host
	env    viewpattern.Env
}

func newViewHandler(opts AppOptions) *viewHandler {
	return &viewHandler{
		logger: opts.Logger,
		host:   opts.Host,
		env:    opts.Env,
	}
}

// Handle 渲染 /view 请求：解析参数、校验 sesskey、解析视图模式并输出 HTML。
func (h *viewHandler) Handle(c fiber.Ctx) error {
	reqID := RequestID(c)
	params := requestParams(c)

	req, err := host.ParseRequest(params)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"action":     "render",
			"request_id": reqID,
			"error":      err.Error(),
		}).Warn("invalid view request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request"})
	}

	if c.Method() == fiber.MethodPost && req.SessionKey != h.env.SessionKey() {
		h.logger.WithFields(logrus.Fields{
			"action":     "render",
			"request_id": reqID,
			"view_id":    req.View,
		}).Warn("session key mismatch")
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "invalid_sesskey"})
	}

	view, err := h.host.View(req)
	if err != nil {
		if errors.Is(err, host.ErrViewNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "view_not_found"})
		}
		return err
	}

	opts, err := viewpattern.DecodeOptions(pick(params, optionKeys...))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_options"})
	}

	env := h.env
	env.Logger = h.logger.WithField("request_id", reqID)
	rendered := view.Render(env, opts)

	fields := logging.RenderFields(reqID, view.DataSource().ID(), view.ID(), view.Filter().ID, h.host.Actor().Role, len(rendered.Replacements))
	h.logger.WithFields(fields).Info("view rendered")

	c.Type("html", "utf-8")
	return c.SendString(rendered.HTML)
}

// requestParams 合并查询参数与表单参数，表单值优先。
func requestParams(c fiber.Ctx) map[string]string {
	params := make(map[string]string)
	for k, v := range c.Queries() {
		params[k] = v
	}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		params[string(key)] = string(value)
	})
	return params
}

func pick(params map[string]string, keys ...string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := params[k]; ok {
			out[k] = v
		}
	}
	return out
}
