package testutil

import (
	"context"

	"github.com/RKmodz24/studio/pkg/authenticator"
	"github.com/RKmodz24/studio/pkg/errorx"
)

type mockOAuth2 struct {
	Name                        string
	VerifyIDTokenFunc           func(ctx context.Context, rawIDToken string) (authenticator.OAuth2User, error)
	VerifyAuthorizationCodeFunc func(ctx context.Context, code, redirectURI string) (authenticator.OAuth2User, error)
}

func NewMockOAuth2(name string) *mockOAuth2 {
	return &mockOAuth2{Name: name}
}

func (m *mockOAuth2) Service() string {
	return m.Name
}

func (m *mockOAuth2) VerifyIDToken(ctx context.Context, rawIDToken string) (authenticator.OAuth2User, error) {
	if m.VerifyIDTokenFunc != nil {
		return m.VerifyIDTokenFunc(ctx, rawIDToken)
	}

	return authenticator.OAuth2User{}, errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *mockOAuth2) VerifyAuthorizationCode(
	ctx context.Context, code, redirectURI string,
) (authenticator.OAuth2User, error) {
	if m.VerifyAuthorizationCodeFunc != nil {
		return m.VerifyAuthorizationCodeFunc(ctx, code, redirectURI)
	}

	return authenticator.OAuth2User{}, errorx.New(errorx.NotImplemented, "Not implemented")
}
