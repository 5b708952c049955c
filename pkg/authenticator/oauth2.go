package authenticator

import (
	"context"
	"errors"
	"fmt"

	"github.com/RKmodz24/studio/config"
	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

type oauth2Service struct {
	*oidc.Provider
	oauth2.Config

	name    string
	idField string
}

func NewOAuth2Service(ctx context.Context, cfg config.OAuth2Configs) (*oauth2Service, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, err
	}

	idField := cfg.IDField
	if idField == "" {
		idField = "sub"
	}

	return &oauth2Service{
		Provider: provider,
		Config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
		name:    cfg.Name,
		idField: idField,
	}, nil
}

func (a *oauth2Service) Service() string {
	return a.name
}

// VerifyIDToken verifies a raw OIDC id token issued for this client.
func (a *oauth2Service) VerifyIDToken(ctx context.Context, rawIDToken string) (OAuth2User, error) {
	idToken, err := a.Verifier(&oidc.Config{ClientID: a.ClientID}).Verify(ctx, rawIDToken)
	if err != nil {
		return OAuth2User{}, err
	}

	var profile map[string]any
	if err := idToken.Claims(&profile); err != nil {
		return OAuth2User{}, errors.New("invalid id token")
	}

	id, ok := profile[a.idField].(string)
	if !ok || id == "" {
		return OAuth2User{}, fmt.Errorf("invalid id field %s", a.idField)
	}

	user := OAuth2User{ID: id}
	user.Email, _ = profile["email"].(string)
	user.Name, _ = profile["name"].(string)
	return user, nil
}

func (a *oauth2Service) VerifyAuthorizationCode(
	ctx context.Context, code, redirectURI string,
) (OAuth2User, error) {
	cfg := a.Config
	cfg.RedirectURL = redirectURI
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return OAuth2User{}, err
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return OAuth2User{}, errors.New("no id_token field in oauth2 token")
	}

	return a.VerifyIDToken(ctx, rawIDToken)
}
