package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/roach88/consulta/internal/auth"
	"github.com/roach88/consulta/internal/metrics"
	"github.com/roach88/consulta/internal/service"
)

// loginBurst is the number of login attempts allowed back to back.
const loginBurst = 5

// Pinger reports store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the API is built from.
type Deps struct {
	Usuarios *service.Usuarios
	Perfis   *service.Perfis
	Tokens   *auth.Tokens
	Health   Pinger
	Logger   *slog.Logger

	// RequestIDs generates request ids. Defaults to uuid.NewString.
	RequestIDs func() string
}

// Options tune the router.
type Options struct {
	CORSOrigin         string
	MaxLimit           int
	LoginRatePerMinute int
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(d Deps, o Options) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.RequestIDs == nil {
		d.RequestIDs = uuid.NewString
	}
	if o.CORSOrigin == "" {
		o.CORSOrigin = "*"
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID(d.RequestIDs))
	router.Use(AccessLog(d.Logger))
	router.Use(Metrics())
	router.Use(CORS(o.CORSOrigin))

	router.GET("/health", func(c *gin.Context) {
		if d.Health != nil {
			if err := d.Health.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	usuarioHandler := NewUsuarioHandler(d.Usuarios, d.Tokens, o.MaxLimit)
	perfilHandler := NewPerfilHandler(d.Perfis, o.MaxLimit)

	usuarios := router.Group("/usuarios")
	{
		usuarios.POST("/login", RateLimit(o.LoginRatePerMinute, loginBurst), usuarioHandler.Login)
		usuarios.GET("/me", RequireAuth(d.Tokens), usuarioHandler.Me)
		usuarios.POST("/consulta_filtrada", usuarioHandler.ConsultaFiltrada)
		usuarios.POST("/", usuarioHandler.Criar)
		usuarios.GET("/", usuarioHandler.Listar)
		usuarios.GET("/:id", usuarioHandler.Buscar)
		usuarios.PUT("/:id", usuarioHandler.Atualizar)
		usuarios.DELETE("/:id", usuarioHandler.Remover)
	}

	perfis := router.Group("/perfis")
	{
		perfis.POST("/consulta_filtrada", perfilHandler.ConsultaFiltrada)
		perfis.POST("/", perfilHandler.Criar)
		perfis.GET("/", perfilHandler.Listar)
	}

	return router
}

// Server is the HTTP server.
type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
}

// NewServer creates a server listening on addr.
func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: 10 * time.Second,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
