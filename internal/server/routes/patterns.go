package routes

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/dataform/viewpatterns/internal/host"
	"github.com/dataform/viewpatterns/internal/viewpattern"
)

// RegisterPatternRoutes 暴露 /-/patterns 与 /-/views 诊断接口，供模板作者查询
// 可用标签、检查模板命中的标签以及预览单个标签的替换结果。
// env 缺少 Strings 或 Output 时不注册任何路由。
func RegisterPatternRoutes(app *fiber.App, h *host.Host, env viewpattern.Env) {
	if app == nil || h == nil || env.Strings == nil || env.Output == nil {
		return
	}

	app.Get("/-/views", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"datasources": encodeDataSources(h.DataSources())})
	})

	app.Get("/-/patterns", func(c fiber.Ctx) error {
		resolver, err := resolverFor(c, h, env)
		if err != nil {
			return renderLookupError(c, err)
		}
		showAll, _ := strconv.ParseBool(c.Query("all"))
		return c.JSON(fiber.Map{"menu": resolver.Menu(showAll)})
	})

	app.Post("/-/patterns/search", func(c fiber.Ctx) error {
		resolver, err := resolverFor(c, h, env)
		if err != nil {
			return renderLookupError(c, err)
		}
		tags := resolver.Search(string(c.Body()))
		if tags == nil {
			tags = []string{}
		}
		return c.JSON(fiber.Map{"tags": tags})
	})

	app.Get("/-/patterns/resolve", func(c fiber.Ctx) error {
		view, err := viewFor(c, h)
		if err != nil {
			return renderLookupError(c, err)
		}
		tags := splitTags(c.Query("tags"))
		if len(tags) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tags_required"})
		}
		opts := view.RenderOptions(nil)
		reps := viewpattern.New(view, env).Replacements(tags, nil, opts)
		return c.JSON(fiber.Map{"replacements": encodeReplacements(reps)})
	})
}

var errViewRequired = errors.New("view is required")

func viewFor(c fiber.Ctx, h *host.Host) (*host.View, error) {
	req, err := host.ParseRequest(c.Queries())
	if err != nil {
		return nil, err
	}
	if req.View == 0 {
		return nil, errViewRequired
	}
	return h.View(req)
}

func resolverFor(c fiber.Ctx, h *host.Host, env viewpattern.Env) (*viewpattern.Resolver, error) {
	view, err := viewFor(c, h)
	if err != nil {
		return nil, err
	}
	return viewpattern.New(view, env), nil
}

func renderLookupError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errViewRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "view_required"})
	case errors.Is(err, host.ErrViewNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "view_not_found"})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request"})
	}
}

// splitTags 接受逗号分隔的标签，缺少 ## 包裹的名称会自动补全。
func splitTags(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.HasPrefix(part, "##") {
			part = "##" + strings.Trim(part, "#") + "##"
		}
		tags = append(tags, part)
	}
	return tags
}

type viewPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type dataSourcePayload struct {
	ID    int64         `json:"id"`
	Name  string        `json:"name"`
	Views []viewPayload `json:"views"`
}

type replacementPayload struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

func encodeDataSources(sources []*host.DataSource) []dataSourcePayload {
	result := make([]dataSourcePayload, 0, len(sources))
	for _, ds := range sources {
		item := dataSourcePayload{ID: ds.ID(), Name: ds.Name()}
		for _, v := range ds.Views() {
			item.Views = append(item.Views, viewPayload{ID: v.Value, Name: v.Label})
		}
		result = append(result, item)
	}
	return result
}

func encodeReplacements(reps viewpattern.Replacements) []replacementPayload {
	result := make([]replacementPayload, 0, len(reps))
	for _, r := range reps {
		result = append(result, replacementPayload{Tag: r.Tag, Value: r.Value})
	}
	return result
}
