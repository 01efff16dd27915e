package logging

import "github.com/sirupsen/logrus"

// BaseFields 构建 action + 配置路径等基础字段，便于不同入口复用。
func BaseFields(action, configPath string) logrus.Fields {
	return logrus.Fields{
		"action":     action,
		"configPath": configPath,
	}
}

// RenderFields 提供数据源/视图/过滤器等字段，供视图渲染日志复用。
func RenderFields(requestID string, dataSourceID, viewID, filterID int64, role string, tags int) logrus.Fields {
	return logrus.Fields{
		"request_id":    requestID,
		"datasource_id": dataSourceID,
		"view_id":       viewID,
		"filter_id":     filterID,
		"role":          role,
		"tags":          tags,
	}
}
