package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"handoff/entity"
)

type Coordinator interface {
	CreateTicket(ctx context.Context, request entity.AssistanceRequest) (string, error)
	Wait(ctx context.Context, id string, timeout time.Duration) (entity.WaitResult, error)
	Resolve(id, answer string) bool
}

type SignatureVerifier interface {
	Verify(timestamp string, body []byte, signature string) error
}

type Server struct {
	addr        string
	e           *echo.Echo
	coordinator Coordinator
	verifier    SignatureVerifier
}

func NewServer(
	addr string,
	coordinator Coordinator,
	verifier SignatureVerifier,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(otelecho.Middleware("handoff"))

	server := &Server{
		addr:        addr,
		e:           e,
		coordinator: coordinator,
		verifier:    verifier,
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/assist/request", server.PostAssistRequest)
	e.GET("/assist/wait", server.GetAssistWait)

	// Operator-facing webhooks: nothing behind this group runs unless the
	// Slack signature checks out.
	slack := e.Group("/slack", server.VerifySlackSignature)
	slack.POST("/command", server.PostSlackCommand)
	slack.POST("/interact", server.PostSlackInteract)

	return server
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		err := s.e.Shutdown(ctx)
		if err != nil {
			log.FromContext(ctx).WithError(err).Error("failed to shutdown HTTP server")
		}
	}()
	log.FromContext(ctx).WithField("addr", s.addr).Info("[HTTP] server listening")
	if err := s.e.Start(s.addr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
