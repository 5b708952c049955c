package domain

import (
	"context"
	"fmt"

	"github.com/RKmodz24/studio/internal/model"
	"github.com/RKmodz24/studio/internal/repository"
	"github.com/RKmodz24/studio/pkg/authenticator"
	"github.com/RKmodz24/studio/pkg/errorx"
	"github.com/RKmodz24/studio/pkg/xcontext"
	"github.com/google/uuid"
)

type AuthDomain interface {
	OAuth2Verify(context.Context, *model.OAuth2VerifyRequest) (*model.OAuth2VerifyResponse, error)
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
}

type authDomain struct {
	identityRepo   repository.KeyValueRepository
	oauth2Services []authenticator.OAuth2Service
}

func NewAuthDomain(
	identityRepo repository.KeyValueRepository,
	oauth2Services []authenticator.OAuth2Service,
) AuthDomain {
	return &authDomain{
		identityRepo:   identityRepo,
		oauth2Services: oauth2Services,
	}
}

// OAuth2Verify exchanges an identity of the provider for an access token. The
// first sign in from a guest session keeps the guest progress.
func (d *authDomain) OAuth2Verify(
	ctx context.Context, req *model.OAuth2VerifyRequest,
) (*model.OAuth2VerifyResponse, error) {
	service, ok := d.getOAuth2Service(req.Type)
	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Unsupported type %s", req.Type)
	}

	var serviceUser authenticator.OAuth2User
	var err error
	var oauth2Method string
	if req.Code != "" {
		oauth2Method = "authorization code"
		serviceUser, err = service.VerifyAuthorizationCode(ctx, req.Code, req.RedirectURI)
	} else if req.IDToken != "" {
		oauth2Method = "id token"
		serviceUser, err = service.VerifyIDToken(ctx, req.IDToken)
	}

	if oauth2Method == "" {
		return nil, errorx.New(errorx.BadRequest, "Please provide at least one method to authorize")
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot verify %s: %v", oauth2Method, err)
		return nil, errorx.New(errorx.Unauthenticated, "Cannot verify the identity")
	}

	userID, err := d.linkIdentity(ctx, service.Service(), serviceUser.ID)
	if err != nil {
		return nil, err
	}

	user := model.User{ID: userID, Email: serviceUser.Email, Name: serviceUser.Name}
	accessToken, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{ID: user.ID, Email: user.Email, Name: user.Name},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.OAuth2VerifyResponse{User: user, AccessToken: accessToken}, nil
}

func (d *authDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	return &model.GetMeResponse{
		ID:      xcontext.RequestUserID(ctx),
		IsGuest: xcontext.IsGuest(ctx),
	}, nil
}

// linkIdentity returns the user id bound to a provider identity. An unknown
// identity adopts the id of the current guest, or a new one.
func (d *authDomain) linkIdentity(ctx context.Context, service, serviceUserID string) (string, error) {
	key := fmt.Sprintf("identity:%s:%s", service, serviceUserID)
	userID, found, err := d.identityRepo.Get(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get identity %s: %v", key, err)
		return "", errorx.Unknown
	}

	if found {
		return userID, nil
	}

	userID = uuid.NewString()
	if xcontext.IsGuest(ctx) && xcontext.RequestUserID(ctx) != "" {
		userID = xcontext.RequestUserID(ctx)
	}

	if err := d.identityRepo.Set(ctx, key, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save identity %s: %v", key, err)
		return "", errorx.Unknown
	}

	return userID, nil
}

func (d *authDomain) getOAuth2Service(typ string) (authenticator.OAuth2Service, bool) {
	for i := range d.oauth2Services {
		if d.oauth2Services[i].Service() == typ {
			return d.oauth2Services[i], true
		}
	}

	return nil, false
}
