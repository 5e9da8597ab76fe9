package client

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/statusx-lab/backend/internal/event"
	"github.com/statusx-lab/backend/pkg/pubsub"
	"github.com/statusx-lab/backend/pkg/testutil"
	"github.com/statusx-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_notificationCaller_Emit(t *testing.T) {
	ctx := testutil.MockContext()
	cfg := xcontext.Configs(ctx)
	cfg.Kafka.NotificationTopic = "notification"
	ctx = xcontext.WithConfigs(ctx, cfg)

	var gotTopic string
	var gotPack *pubsub.Pack
	publisher := &testutil.MockPublisher{
		PublishFunc: func(ctx context.Context, topic string, pack *pubsub.Pack) error {
			gotTopic = topic
			gotPack = pack
			return nil
		},
	}

	caller := NewNotificationCaller(publisher)
	ev := event.New(
		event.UserRegisteredEvent{
			UserID:          "user1",
			Email:           "user1@example.com",
			ActivationToken: "token",
		},
		event.Metadata{To: "user1"},
	)
	require.NoError(t, caller.Emit(ctx, ev))

	require.Equal(t, "notification", gotTopic)
	require.NotNil(t, gotPack)
	require.Equal(t, []byte("user1"), gotPack.Key)

	var decoded event.EventRequest
	require.NoError(t, json.Unmarshal(gotPack.Msg, &decoded))
	require.Equal(t, event.UserRegisteredEvent{}.Op(), decoded.Op)
	require.Equal(t, "user1", decoded.Metadata.To)
}
