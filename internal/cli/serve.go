package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/roach88/consulta/internal/auth"
	"github.com/roach88/consulta/internal/config"
	"github.com/roach88/consulta/internal/httpapi"
	"github.com/roach88/consulta/internal/logging"
	"github.com/roach88/consulta/internal/service"
	"github.com/roach88/consulta/internal/store"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr string
	DB   string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until interrupted.

Configuration is read from --config, then CONSULTA_* environment
variables; --addr and --db override both. A JWT secret is required
(auth.jwt_secret or CONSULTA_AUTH_JWT_SECRET).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (overrides http.addr)")
	cmd.Flags().StringVar(&opts.DB, "db", "", "path to SQLite database (overrides database.path)")

	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := opts.load(cmd)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}

	logCfg := logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}
	if opts.Verbose {
		logCfg.Level = "DEBUG"
	}
	logger := logging.Init(logCfg)

	s, err := store.Open(cfg.Database.Path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "cannot open store", err.Error())
	}
	defer s.Close()

	tokens, err := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}

	gin.SetMode(gin.ReleaseMode)
	router := httpapi.NewRouter(httpapi.Deps{
		Usuarios: service.NewUsuarios(s, auth.DefaultPasswords),
		Perfis:   service.NewPerfis(s),
		Tokens:   tokens,
		Health:   s,
		Logger:   logger,
	}, httpapi.Options{
		CORSOrigin:         cfg.HTTP.CORSOrigin,
		MaxLimit:           cfg.HTTP.MaxLimit,
		LoginRatePerMinute: cfg.Auth.LoginRatePerMinute,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting consulta", "addr", cfg.HTTP.Addr, "db", cfg.Database.Path)
	if err := httpapi.NewServer(cfg.HTTP.Addr, router).Run(ctx); err != nil {
		return WrapExitError(ExitFailure, "server failed", err)
	}
	return nil
}

// load reads configuration and applies flag overrides.
func (o *ServeOptions) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.Config)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("addr") {
		cfg.HTTP.Addr = o.Addr
	}
	if cmd.Flags().Changed("db") {
		cfg.Database.Path = o.DB
	}
	if err := cfg.RequireSecret(); err != nil {
		return nil, err
	}
	return cfg, nil
}
