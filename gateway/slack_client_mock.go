package gateway

import (
	"context"
	"sync"

	"handoff/entity"
)

type SlackMock struct {
	mock sync.Mutex

	Notifications []entity.AssistanceRequested
	Err           error
}

func (c *SlackMock) NotifyAssistanceRequested(ctx context.Context, event entity.AssistanceRequested) error {
	c.mock.Lock()
	defer c.mock.Unlock()

	if c.Err != nil {
		return c.Err
	}

	c.Notifications = append(c.Notifications, event)

	return nil
}

func (c *SlackMock) Notified() []entity.AssistanceRequested {
	c.mock.Lock()
	defer c.mock.Unlock()

	return append([]entity.AssistanceRequested(nil), c.Notifications...)
}
