package testutil

import (
	"context"

	"github.com/RKmodz24/studio/internal/domain/customercare"
)

type MockCustomerCareCaller struct {
	AnswerFunc func(ctx context.Context, req customercare.Request) (customercare.Response, error)
}

func (m *MockCustomerCareCaller) Answer(
	ctx context.Context, req customercare.Request,
) (customercare.Response, error) {
	if m.AnswerFunc != nil {
		return m.AnswerFunc(ctx, req)
	}

	return customercare.Response{Response: "This is a mock response."}, nil
}

func (m *MockCustomerCareCaller) Close() {}
