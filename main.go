package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/sirupsen/logrus"

	"handoff/config"
	"handoff/gateway"
	"handoff/service"
	"handoff/tracing"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Init(logrus.InfoLevel)

	cfg, err := config.Parse()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	if cfg.JaegerEndpoint != "" {
		tp := tracing.ConfigureTraceProvider(cfg.JaegerEndpoint)
		defer func() {
			_ = tp.Shutdown(context.Background())
		}()
	}

	slackClient := gateway.NewSlackClient(cfg.SlackBotToken, cfg.SlackChannelID)

	svc := service.New(cfg.Addr, cfg.SlackSigningSecret, slackClient)

	if err := svc.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("service stopped")
	}
}
