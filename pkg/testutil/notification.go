package testutil

import (
	"context"

	"github.com/statusx-lab/backend/internal/event"
)

// MockNotificationCaller records every emitted event.
type MockNotificationCaller struct {
	EmitFunc func(ctx context.Context, ev *event.EventRequest) error
	Emitted  []*event.EventRequest
}

func (m *MockNotificationCaller) Emit(ctx context.Context, ev *event.EventRequest) error {
	m.Emitted = append(m.Emitted, ev)
	if m.EmitFunc != nil {
		return m.EmitFunc(ctx, ev)
	}

	return nil
}
