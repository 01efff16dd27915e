package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var supportedRoles = map[string]struct{}{
	"guest":   {},
	"student": {},
	"teacher": {},
	"manager": {},
}

const supportedRoleList = "guest|student|teacher|manager"

// Validate 针对语义级别做进一步校验，防止非法配置启动服务。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置为空")
	}

	g := c.Global
	if g.ListenPort <= 0 || g.ListenPort > 65535 {
		return newFieldError("Global.ListenPort", "必须在 1-65535")
	}
	if err := validateHTTPURL(g.PublicURL); err != nil {
		return fmt.Errorf("Global.PublicURL: %w", err)
	}
	if g.PixURL != "" {
		if err := validateHTTPURL(g.PixURL); err != nil {
			return fmt.Errorf("Global.PixURL: %w", err)
		}
	}
	if _, ok := supportedRoles[strings.ToLower(strings.TrimSpace(g.Role))]; !ok {
		return newFieldError("Global.Role", "仅支持 "+supportedRoleList)
	}
	if g.ReadTimeout.DurationValue() <= 0 {
		return newFieldError("Global.ReadTimeout", "必须大于 0")
	}
	if g.WriteTimeout.DurationValue() <= 0 {
		return newFieldError("Global.WriteTimeout", "必须大于 0")
	}

	if len(c.DataSources) == 0 {
		return errors.New("至少需要配置一个 DataSource")
	}

	seenSources := map[int64]struct{}{}
	seenViews := map[int64]string{}
	for i := range c.DataSources {
		ds := &c.DataSources[i]
		if ds.ID <= 0 {
			return newFieldError(dataSourceField(ds.Name, "ID"), "必须大于 0")
		}
		if _, exists := seenSources[ds.ID]; exists {
			return newFieldError(dataSourceField(ds.Name, "ID"), "重复")
		}
		seenSources[ds.ID] = struct{}{}

		if len(ds.Views) == 0 {
			return newFieldError(dataSourceField(ds.Name, "View"), "至少需要一个视图")
		}

		localViews := map[int64]struct{}{}
		for _, view := range ds.Views {
			if view.ID <= 0 {
				return newFieldError(dataSourceField(ds.Name, "View.ID"), "必须大于 0")
			}
			if owner, exists := seenViews[view.ID]; exists {
				return newFieldError(dataSourceField(ds.Name, "View.ID"), fmt.Sprintf("%d 已被数据源 %s 使用", view.ID, owner))
			}
			seenViews[view.ID] = ds.Name
			localViews[view.ID] = struct{}{}
			if strings.TrimSpace(view.Template) == "" {
				return newFieldError(dataSourceField(ds.Name, fmt.Sprintf("View[%d].Template", view.ID)), "不能为空")
			}
		}

		filters := map[int64]struct{}{}
		for _, filter := range ds.Filters {
			if filter.ID <= 0 {
				return newFieldError(dataSourceField(ds.Name, "Filter.ID"), "必须大于 0，负数与 0 为保留的哨兵值")
			}
			if _, exists := filters[filter.ID]; exists {
				return newFieldError(dataSourceField(ds.Name, "Filter.ID"), "重复")
			}
			if filter.PerPage < 0 {
				return newFieldError(dataSourceField(ds.Name, fmt.Sprintf("Filter[%d].PerPage", filter.ID)), "不能为负数")
			}
			filters[filter.ID] = struct{}{}
		}

		if ds.SingleEditView != 0 {
			if _, ok := localViews[ds.SingleEditView]; !ok {
				return newFieldError(dataSourceField(ds.Name, "SingleEditView"), "必须引用本数据源的视图")
			}
		}
		for _, view := range ds.Views {
			if view.ForceFilter == 0 {
				continue
			}
			if _, ok := filters[view.ForceFilter]; !ok {
				return newFieldError(dataSourceField(ds.Name, fmt.Sprintf("View[%d].ForceFilter", view.ID)), "必须引用本数据源的过滤器")
			}
		}
	}

	return nil
}

func validateHTTPURL(raw string) error {
	if raw == "" {
		return errors.New("缺少地址")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("仅支持 http/https: %s", raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("缺少 Host: %s", raw)
	}
	return nil
}
