package testutil

import (
	"context"

	"github.com/RKmodz24/studio/internal/domain/addecision"
)

type MockAdDecisionCaller struct {
	DecideFunc func(ctx context.Context, req addecision.Request) (addecision.Decision, error)
}

func (m *MockAdDecisionCaller) Decide(
	ctx context.Context, req addecision.Request,
) (addecision.Decision, error) {
	if m.DecideFunc != nil {
		return m.DecideFunc(ctx, req)
	}

	return addecision.Decision{ShowAd: false, Reason: "This is a mock response."}, nil
}

func (m *MockAdDecisionCaller) Close() {}
