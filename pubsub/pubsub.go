package pubsub

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"handoff/tracing"
)

// NewPubSub returns the in-memory Go-channel Pub/Sub. The same instance must
// be used for publishing and subscribing. The ticket registry is in-memory
// and single-process, so the notification hop does not need a broker either.
func NewPubSub(watermillLogger watermill.LoggerAdapter) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermillLogger)
}

func NewPublisher(pubSub *gochannel.GoChannel) message.Publisher {
	var publisher message.Publisher = pubSub
	publisher = tracing.PublisherDecorator{Publisher: publisher}
	return publisher
}
