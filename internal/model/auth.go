package model

import (
	"context"
	"net/http"
	"time"

	"github.com/RKmodz24/studio/pkg/xcontext"
)

// AccessToken is the object carried by an access token.
type AccessToken struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type User struct {
	ID      string `json:"id"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	IsGuest bool   `json:"is_guest"`
}

type OAuth2VerifyRequest struct {
	Type        string `json:"type"`
	IDToken     string `json:"id_token"`
	Code        string `json:"code"`
	RedirectURI string `json:"redirect_uri"`
}

type OAuth2VerifyResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

func (r OAuth2VerifyResponse) CookieInfo(ctx context.Context) []http.Cookie {
	cfg := xcontext.Configs(ctx).Auth.AccessToken
	return []http.Cookie{
		{
			Name:     cfg.Name,
			Value:    r.AccessToken,
			Path:     "/",
			Expires:  time.Now().Add(cfg.Expiration),
			Secure:   true,
			HttpOnly: false,
		},
	}
}

type GetMeRequest struct{}

type GetMeResponse User
