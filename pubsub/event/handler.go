package event

import (
	"context"

	"handoff/entity"
)

type SlackNotifier interface {
	NotifyAssistanceRequested(ctx context.Context, event entity.AssistanceRequested) error
}

type Handler struct {
	slackNotifier SlackNotifier
}

func NewHandler(slackNotifier SlackNotifier) Handler {
	if slackNotifier == nil {
		panic("missing slackNotifier")
	}

	return Handler{
		slackNotifier: slackNotifier,
	}
}
