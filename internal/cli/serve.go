package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/userflow-bootstrap/pkg/config"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/httpserver"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/logger"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/origin"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/requestid"
)

type serveConfig struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	Service   string `env:"APP_NAME" envDefault:"userflow-bootstrap"`
	LogFormat string `env:"LOG_FORMAT"`

	HTTP   httpserver.Config
	Origin origin.Config
}

var (
	serveEnvFiles []string
	serveAddr     string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringSliceVar(&serveEnvFiles, "env-file", nil, "Load variables from these .env files first")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides HTTP_ADDR)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bundle origin service",
	Long: "Serves /target, /bootstrap.js, /{tier}/{file}, /health and /metrics.\n" +
		"Configuration comes from HTTP_*, ORIGIN_* and USERFLOWJS_* variables.",
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if len(serveEnvFiles) > 0 {
		if err := config.LoadEnv(serveEnvFiles...); err != nil {
			return err
		}
	}
	var cfg serveConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.HTTP.Addr = serveAddr
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.Service),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cfg.LogFormat != "" {
		logOpts = append(logOpts, logger.WithFormat(logger.Format(cfg.LogFormat)))
	}
	log := logger.New(logOpts...)

	ctx := cmd.Context()
	store, err := cfg.Origin.OpenStore(ctx)
	if err != nil {
		return fmt.Errorf("open bundle store: %w", err)
	}
	if store == nil {
		log.Warn("no bundle store configured; only target selection is served")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv, err := origin.NewFromConfig(cfg.Origin, store, origin.WithLogger(log), origin.WithRegistry(reg))
	if err != nil {
		return err
	}

	// Signals already cancel ctx.
	return httpserver.New(cfg.HTTP, httpserver.WithLogger(log), httpserver.WithSignals()).Run(ctx, srv.Routes())
}
