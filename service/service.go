package service

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"handoff/correlation"
	"handoff/http"
	"handoff/pubsub"
	"handoff/pubsub/bus"
	"handoff/pubsub/event"
	"handoff/signature"
)

func init() {
	log.Init(logrus.InfoLevel)
}

type Service struct {
	coordinator     *correlation.Coordinator
	watermillRouter *message.Router
	httpServer      *http.Server
}

func New(
	addr string,
	signingSecret string,
	slackNotifier event.SlackNotifier,
) Service {
	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	pubSub := pubsub.NewPubSub(watermillLogger)

	var publisher message.Publisher
	publisher = pubsub.NewPublisher(pubSub)
	publisher = log.CorrelationPublisherDecorator{Publisher: publisher}

	eventBus, err := bus.NewEventBus(publisher)
	if err != nil {
		panic(fmt.Errorf("failed to create event bus: %w", err))
	}

	coordinator := correlation.NewCoordinator(eventBus)

	eventsHandler := event.NewHandler(slackNotifier)
	eventProcessorConfig := event.NewProcessorConfig(pubSub, watermillLogger)

	watermillRouter, err := pubsub.NewWatermillRouter(
		eventProcessorConfig,
		eventsHandler,
		watermillLogger,
	)
	if err != nil {
		panic(fmt.Errorf("failed to create watermill router: %w", err))
	}

	httpServer := http.NewServer(
		addr,
		coordinator,
		signature.NewVerifier(signingSecret),
	)

	return Service{
		coordinator,
		watermillRouter,
		httpServer,
	}
}

func (s Service) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	g.Go(func() error {
		return s.coordinator.RunReaper(ctx)
	})

	g.Go(func() error {
		// don't start the HTTP server before the Watermill router, so the
		// service won't accept tickets before notifications can go out
		<-s.watermillRouter.Running()

		return s.httpServer.Run(ctx)
	})

	return g.Wait()
}
