package xcontext

import "context"

type (
	userIDKey   struct{}
	responseKey struct{}
)

type requestState struct {
	response any
	err      error
}

// WithRequestState prepares a mutable holder for the response and error of
// the current request, so SetResponse/SetError work no matter how deep the
// context was extended afterwards.
func WithRequestState(ctx context.Context) context.Context {
	return context.WithValue(ctx, responseKey{}, &requestState{})
}

func SetError(ctx context.Context, err error) {
	if state, ok := ctx.Value(responseKey{}).(*requestState); ok {
		state.err = err
	}
}

func Error(ctx context.Context) error {
	if state, ok := ctx.Value(responseKey{}).(*requestState); ok {
		return state.err
	}

	return nil
}

func SetResponse(ctx context.Context, resp any) {
	if state, ok := ctx.Value(responseKey{}).(*requestState); ok {
		state.response = resp
	}
}

func Response(ctx context.Context) any {
	if state, ok := ctx.Value(responseKey{}).(*requestState); ok {
		return state.response
	}

	return nil
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// RequestUserID returns the id of the authenticated user of this request, or
// an empty string for anonymous requests.
func RequestUserID(ctx context.Context) string {
	id, ok := ctx.Value(userIDKey{}).(string)
	if !ok {
		return ""
	}

	return id
}
