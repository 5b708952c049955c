package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/RKmodz24/studio/internal/model"
	"github.com/RKmodz24/studio/pkg/errorx"
	"github.com/RKmodz24/studio/pkg/router"
	"github.com/RKmodz24/studio/pkg/xcontext"
	"github.com/google/uuid"
)

const guestIDKey = "guest_id"

// Identify sets the request user. A valid access token, from the
// Authorization header or the cookie, identifies a signed in user. Otherwise
// the request runs as a guest whose id is kept in the session cookie.
func Identify() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if token := accessTokenOf(ctx); token != "" {
			var info model.AccessToken
			if err := xcontext.TokenEngine(ctx).Verify(token, &info); err == nil && info.ID != "" {
				ctx = xcontext.WithRequestUserID(ctx, info.ID)
				return xcontext.WithGuest(ctx, false), nil
			}
		}

		guestID, err := guestIDOf(ctx)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get guest session: %v", err)
			return nil, errorx.Unknown
		}

		ctx = xcontext.WithRequestUserID(ctx, guestID)
		return xcontext.WithGuest(ctx, true), nil
	}
}

// OnlyUser refuses guests.
func OnlyUser() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" || xcontext.IsGuest(ctx) {
			return nil, errorx.New(errorx.Unauthenticated, "You need to sign in before")
		}

		return nil, nil
	}
}

func accessTokenOf(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if auth := req.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return token
		}
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}

// guestIDOf returns the guest id of the session cookie, a new one is created
// and saved if needed.
func guestIDOf(ctx context.Context) (string, error) {
	req := xcontext.HTTPRequest(ctx)
	session, err := xcontext.SessionStore(ctx).Get(req, xcontext.Configs(ctx).Session.Name)
	if err != nil {
		// A cookie signed with an old secret, start a new session.
		xcontext.Logger(ctx).Debugf("Ignore invalid session: %v", err)
	}

	if id, ok := session.Values[guestIDKey].(string); ok && id != "" {
		return id, nil
	}

	id := fmt.Sprintf("guest-%s", uuid.NewString())
	session.Values[guestIDKey] = id
	session.Options.HttpOnly = true
	session.Options.SameSite = http.SameSiteLaxMode
	if err := session.Save(req, xcontext.HTTPWriter(ctx)); err != nil {
		return "", err
	}

	return id, nil
}
