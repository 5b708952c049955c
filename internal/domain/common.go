package domain

import (
	"context"

	"github.com/RKmodz24/studio/internal/domain/session"
	"github.com/RKmodz24/studio/pkg/errorx"
	"github.com/RKmodz24/studio/pkg/xcontext"
)

// getSession returns the session of the request user, signed in or guest.
func getSession(ctx context.Context, manager *session.Manager) (*session.Session, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Unknown user")
	}

	s, err := manager.Get(ctx, userID)
	if err != nil {
		return nil, errorx.Unknown
	}

	return s, nil
}
