package authenticator

import (
	"context"
	"time"
)

type TokenEngine interface {
	Generate(expiration time.Duration, obj any) (string, error)
	Verify(token string, obj any) error
}

type OAuth2User struct {
	ID    string
	Email string
	Name  string
}

type OAuth2Service interface {
	Service() string
	VerifyIDToken(ctx context.Context, rawIDToken string) (OAuth2User, error)
	VerifyAuthorizationCode(ctx context.Context, code, redirectURI string) (OAuth2User, error)
}
