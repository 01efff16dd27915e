package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/dataform/viewpatterns/internal/config"
	"github.com/dataform/viewpatterns/internal/host"
	"github.com/dataform/viewpatterns/internal/i18n"
	"github.com/dataform/viewpatterns/internal/logging"
	"github.com/dataform/viewpatterns/internal/server"
	"github.com/dataform/viewpatterns/internal/server/routes"
	"github.com/dataform/viewpatterns/internal/version"
)

// cliOptions 汇总 CLI 标志解析后的结果，便于在测试中注入。
type cliOptions struct {
	configPath  string
	checkOnly   bool
	showVersion bool
}

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

func main() {
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(2)
	}
	os.Exit(run(opts))
}

// run 根据解析到的 CLI 选项执行业务流程，并返回退出码，方便测试。
func run(opts cliOptions) int {
	if opts.showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stdErr, "加载配置失败: %v\n", err)
		return 1
	}

	logger, err := logging.InitLogger(cfg.Global)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化日志失败: %v\n", err)
		return 1
	}

	strs, err := i18n.New(cfg.Global.Locale, cfg.Global.Strings)
	if err != nil {
		fmt.Fprintf(stdErr, "加载本地化文案失败: %v\n", err)
		return 1
	}

	if opts.checkOnly {
		fields := logging.BaseFields("check_config", opts.configPath)
		fields["datasources"] = len(cfg.DataSources)
		fields["views"] = cfg.ViewCount()
		fields["locale"] = strs.Locale()
		fields["result"] = "ok"
		logger.WithFields(fields).Info("配置校验通过")
		return 0
	}

	app, err := buildApp(cfg, strs, server.NewSessionKey(), logger)
	if err != nil {
		fmt.Fprintf(stdErr, "构建 HTTP 应用失败: %v\n", err)
		return 1
	}

	fields := logging.BaseFields("startup", opts.configPath)
	fields["datasources"] = len(cfg.DataSources)
	fields["views"] = cfg.ViewCount()
	fields["listen_port"] = cfg.Global.ListenPort
	fields["role"] = cfg.Global.Role
	fields["version"] = version.Full()
	logger.WithFields(fields).Info("配置加载完成")

	if err := startHTTPServer(app, cfg.Global.ListenPort, logger); err != nil {
		fmt.Fprintf(stdErr, "HTTP 服务启动失败: %v\n", err)
		return 1
	}
	return 0
}

// parseCLIFlags 解析 CLI 参数，并结合环境变量计算最终的配置路径。
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("viewpatterns", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configFlag string
		checkOnly  bool
		showVer    bool
	)

	fs.StringVar(&configFlag, "config", "", "配置文件路径（默认 ./config.toml，可被 VIEWPATTERNS_CONFIG 覆盖）")
	fs.BoolVar(&checkOnly, "check-config", false, "仅校验配置后退出")
	fs.BoolVar(&showVer, "version", false, "显示版本信息")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("解析参数失败: %w", err)
	}

	path := os.Getenv("VIEWPATTERNS_CONFIG")
	if configFlag != "" {
		path = configFlag
	}
	if path == "" {
		path = "config.toml"
	}

	return cliOptions{
		configPath:  path,
		checkOnly:   checkOnly,
		showVersion: showVer,
	}, nil
}

// buildApp 按“宿主 → 渲染依赖 → Fiber app → 诊断路由”顺序组装服务，
// 所有请求共享同一个会话密钥。
func buildApp(cfg *config.Config, strs *i18n.Catalog, sessionKey string, logger *logrus.Logger) (*fiber.App, error) {
	h, err := host.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("构建视图宿主失败: %w", err)
	}
	env := server.NewEnv(strs, cfg.Global.EffectivePixURL(), cfg.Global.EnablePortfolios, sessionKey)

	app, err := server.NewApp(server.AppOptions{
		Logger:       logger,
		Host:         h,
		Env:          env,
		ListenPort:   cfg.Global.ListenPort,
		ReadTimeout:  cfg.Global.ReadTimeout.DurationValue(),
		WriteTimeout: cfg.Global.WriteTimeout.DurationValue(),
	})
	if err != nil {
		return nil, err
	}
	routes.RegisterPatternRoutes(app, h, env)
	return app, nil
}

func startHTTPServer(app *fiber.App, port int, logger *logrus.Logger) error {
	logger.WithFields(logrus.Fields{
		"action": "listen",
		"port":   port,
	}).Info("Fiber 服务启动")

	return app.Listen(fmt.Sprintf(":%d", port))
}
