package server

import (
	"github.com/dataform/viewpatterns/internal/i18n"
	"github.com/dataform/viewpatterns/internal/markup"
	"github.com/dataform/viewpatterns/internal/viewpattern"
)

// NewEnv 组装视图渲染依赖：本地化文案、widget 渲染器与会话密钥。
// Logger 由处理器按请求注入。
func NewEnv(strs *i18n.Catalog, pixURL string, portfolios bool, sessionKey string) viewpattern.Env {
	return viewpattern.Env{
		Strings:           strs,
		Output:            markup.NewRenderer(pixURL, strs),
		SessionKey:        StaticSessionKey(sessionKey),
		PortfoliosEnabled: portfolios,
	}
}
