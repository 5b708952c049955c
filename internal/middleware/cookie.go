package middleware

import (
	"context"
	"net/http"

	"github.com/RKmodz24/studio/pkg/router"
	"github.com/RKmodz24/studio/pkg/xcontext"
)

type CookieResponse interface {
	CookieInfo(context.Context) []http.Cookie
}

func HandleSetCookie() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if resp, ok := xcontext.Response(ctx).(CookieResponse); ok {
			for _, cookie := range resp.CookieInfo(ctx) {
				cookie := cookie
				http.SetCookie(xcontext.HTTPWriter(ctx), &cookie)
			}
		}

		return nil, nil
	}
}
