package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/statusx-lab/backend/internal/model"
	"github.com/statusx-lab/backend/pkg/testutil"
	"github.com/statusx-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_middleware_sessionRoundTrip(t *testing.T) {
	ctx := testutil.MockContext()

	token, err := xcontext.TokenEngine(ctx).Generate("user1", model.AccessToken{ID: "user1"})
	require.NoError(t, err)

	// Logging in persists the access token into the session cookie.
	w := httptest.NewRecorder()
	loginCtx := xcontext.WithHTTPRequest(ctx, httptest.NewRequest(http.MethodPost, "/login", nil))
	loginCtx = xcontext.WithHTTPWriter(loginCtx, w)
	loginCtx = xcontext.WithRequestState(loginCtx)
	xcontext.SetResponse(loginCtx, &model.LoginResponse{AccessToken: token})

	_, err = HandleSaveSession()(loginCtx)
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, xcontext.Configs(ctx).Session.Name, cookies[0].Name)

	// A later request carrying only that cookie is authenticated.
	req := httptest.NewRequest(http.MethodGet, "/getMe", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	authCtx, err := NewAuthVerifier().WithAccessToken().Middleware()(xcontext.WithHTTPRequest(ctx, req))
	require.NoError(t, err)
	require.Equal(t, "user1", xcontext.RequestUserID(authCtx))
}

func Test_middleware_sessionSkipsPlainResponses(t *testing.T) {
	ctx := testutil.MockContext()

	w := httptest.NewRecorder()
	ctx = xcontext.WithHTTPRequest(ctx, httptest.NewRequest(http.MethodPost, "/register", nil))
	ctx = xcontext.WithHTTPWriter(ctx, w)
	ctx = xcontext.WithRequestState(ctx)
	xcontext.SetResponse(ctx, &model.RegisterResponse{})

	_, err := HandleSaveSession()(ctx)
	require.NoError(t, err)
	require.Empty(t, w.Result().Cookies())
}
