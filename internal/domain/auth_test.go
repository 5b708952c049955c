package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/RKmodz24/studio/internal/model"
	"github.com/RKmodz24/studio/internal/repository"
	"github.com/RKmodz24/studio/pkg/authenticator"
	"github.com/RKmodz24/studio/pkg/errorx"
	"github.com/RKmodz24/studio/pkg/testutil"
	"github.com/RKmodz24/studio/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_authDomain_OAuth2Verify(t *testing.T) {
	ctx := testutil.MockContext()

	google := testutil.NewMockOAuth2("google")
	google.VerifyIDTokenFunc = func(ctx context.Context, rawIDToken string) (authenticator.OAuth2User, error) {
		if rawIDToken != "valid" {
			return authenticator.OAuth2User{}, errors.New("invalid token")
		}

		return authenticator.OAuth2User{ID: "sub-1", Email: "ravi@example.com", Name: "Ravi"}, nil
	}

	authDomain := NewAuthDomain(repository.NewKeyValueRepository(), []authenticator.OAuth2Service{google})

	// A guest signing in keeps its id.
	guestCtx := xcontext.WithGuest(xcontext.WithRequestUserID(ctx, "guest-1"), true)
	resp, err := authDomain.OAuth2Verify(guestCtx, &model.OAuth2VerifyRequest{Type: "google", IDToken: "valid"})
	require.NoError(t, err)
	require.Equal(t, "guest-1", resp.User.ID)
	require.Equal(t, "ravi@example.com", resp.User.Email)

	var token model.AccessToken
	require.NoError(t, xcontext.TokenEngine(ctx).Verify(resp.AccessToken, &token))
	require.Equal(t, "guest-1", token.ID)

	// Later sign ins from another device map to the same user.
	resp, err = authDomain.OAuth2Verify(ctx, &model.OAuth2VerifyRequest{Type: "google", IDToken: "valid"})
	require.NoError(t, err)
	require.Equal(t, "guest-1", resp.User.ID)

	_, err = authDomain.OAuth2Verify(ctx, &model.OAuth2VerifyRequest{Type: "google", IDToken: "invalid"})
	require.ErrorIs(t, err, errorx.New(errorx.Unauthenticated, ""))

	_, err = authDomain.OAuth2Verify(ctx, &model.OAuth2VerifyRequest{Type: "facebook", IDToken: "valid"})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, ""))

	_, err = authDomain.OAuth2Verify(ctx, &model.OAuth2VerifyRequest{Type: "google"})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, ""))
}

func Test_authDomain_GetMe(t *testing.T) {
	ctx := xcontext.WithGuest(testutil.MockContextWithUserID("guest-1"), true)
	authDomain := NewAuthDomain(repository.NewMemoryKeyValueRepository(), nil)

	resp, err := authDomain.GetMe(ctx, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, "guest-1", resp.ID)
	require.True(t, resp.IsGuest)
}
