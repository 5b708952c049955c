package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/RKmodz24/studio/internal/model"
	"github.com/RKmodz24/studio/pkg/errorx"
	"github.com/RKmodz24/studio/pkg/testutil"
	"github.com/RKmodz24/studio/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func requestContext(req *http.Request) (context.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	ctx := testutil.MockContext()
	ctx = xcontext.WithHTTPRequest(ctx, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	return ctx, w
}

func TestIdentifyAccessToken(t *testing.T) {
	base := testutil.MockContext()
	token, err := xcontext.TokenEngine(base).Generate(time.Minute, model.AccessToken{ID: "user1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/getState", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	ctx, _ := requestContext(req)

	ctx, err = Identify()(ctx)
	require.NoError(t, err)
	require.Equal(t, "user1", xcontext.RequestUserID(ctx))
	require.False(t, xcontext.IsGuest(ctx))

	// The cookie works as well.
	req = httptest.NewRequest(http.MethodGet, "/getState", nil)
	req.AddCookie(&http.Cookie{Name: xcontext.Configs(base).Auth.AccessToken.Name, Value: token})
	ctx, _ = requestContext(req)

	ctx, err = Identify()(ctx)
	require.NoError(t, err)
	require.Equal(t, "user1", xcontext.RequestUserID(ctx))
}

func TestIdentifyGuest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/getState", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	ctx, w := requestContext(req)

	ctx, err := Identify()(ctx)
	require.NoError(t, err)
	require.True(t, xcontext.IsGuest(ctx))

	guestID := xcontext.RequestUserID(ctx)
	require.True(t, strings.HasPrefix(guestID, "guest-"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	// The next request with the cookie keeps the same guest.
	req = httptest.NewRequest(http.MethodGet, "/getState", nil)
	req.AddCookie(cookies[0])
	ctx, w = requestContext(req)

	ctx, err = Identify()(ctx)
	require.NoError(t, err)
	require.Equal(t, guestID, xcontext.RequestUserID(ctx))
	require.Empty(t, w.Result().Cookies())

	_, err = OnlyUser()(ctx)
	require.ErrorIs(t, err, errorx.New(errorx.Unauthenticated, ""))
}
