package event

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"handoff/entity"
	"handoff/metrics"
)

func (h Handler) NotifyOperatorHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"NotifyOperatorHandler",
		func(ctx context.Context, event *entity.AssistanceRequested) error {
			log.FromContext(ctx).WithField("ticket_id", event.TicketID).Info("Notifying operator")

			if err := h.slackNotifier.NotifyAssistanceRequested(ctx, *event); err != nil {
				metrics.NotificationFailures.Inc()
				return fmt.Errorf("failed to notify operator: %w", err)
			}

			return nil
		},
	)
}
