package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/Oggm2/registroServicio/core"
	"github.com/Oggm2/registroServicio/core/user"
)

type (
	// Deps groups the services required by the API handlers.
	Deps struct {
		Conf       *core.Config
		Logger     core.Logger
		UserSvc    *user.Service
		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(ctx context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		addr string
		deps *Deps
		app  *echo.Echo

		errCh  chan error
		shutCh chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(addr string, deps *Deps) Server {
	s := &server{
		addr:   addr,
		deps:   deps,
		app:    echo.New(),
		errCh:  make(chan error, 1),
		shutCh: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Debug = conf.Debug
	s.app.HideBanner = true
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)

	// middleware
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	// routes
	s.app.GET("/", home)

	jwt := middleware.JWTWithConfig(newJWTConfig(conf))
	api := s.app.Group("/api")
	registerAuthAPI(api, jwt, conf, s.deps.UserSvc, s.deps.Validate)
}

// signalShutdown sends a SIGTERM on the shutdown channel to gracefully
// shutdown the server when an unrecoverable error is caught.
func (s *server) signalShutdown() {
	s.shutCh <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.app.ServeHTTP(w, r) }

func (s *server) Start() {
	signal.Notify(s.shutCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.app.Start(s.addr); err != nil && err != http.ErrServerClosed {
			s.errCh <- err
		}
	}()
}

func (s *server) Shutdown(ctx context.Context) error { return s.app.Shutdown(ctx) }
func (s *server) Close() error                       { return s.app.Close() }
func (s *server) Errors() <-chan error               { return s.errCh }
func (s *server) ShutdownSignal() <-chan os.Signal   { return s.shutCh }

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Bienvenido al API de Registro de Servicio")
}
