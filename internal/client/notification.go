package client

import (
	"context"
	"encoding/json"

	"github.com/statusx-lab/backend/internal/event"
	"github.com/statusx-lab/backend/pkg/pubsub"
	"github.com/statusx-lab/backend/pkg/xcontext"
)

type NotificationCaller interface {
	Emit(ctx context.Context, ev *event.EventRequest) error
}

type notificationCaller struct {
	publisher pubsub.Publisher
}

func NewNotificationCaller(publisher pubsub.Publisher) *notificationCaller {
	return &notificationCaller{publisher: publisher}
}

func (c *notificationCaller) Emit(ctx context.Context, ev *event.EventRequest) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	topic := xcontext.Configs(ctx).Kafka.NotificationTopic
	return c.publisher.Publish(ctx, topic, &pubsub.Pack{
		Key: []byte(ev.Metadata.To),
		Msg: b,
	})
}
