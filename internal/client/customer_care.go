package client

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/RKmodz24/studio/internal/domain/customercare"
	"github.com/RKmodz24/studio/pkg/xcontext"
)

type CustomerCareCaller interface {
	Answer(ctx context.Context, req customercare.Request) (customercare.Response, error)
	Close()
}

type customerCareCaller struct {
	client *rpc.Client
}

func NewCustomerCareCaller(client *rpc.Client) *customerCareCaller {
	return &customerCareCaller{client: client}
}

func (c *customerCareCaller) Answer(
	ctx context.Context, req customercare.Request,
) (customercare.Response, error) {
	cfg := xcontext.Configs(ctx).CustomerCare
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	var result customercare.Response
	if err := c.client.CallContext(ctx, &result, fmt.Sprintf("%s_answer", cfg.RPCName), req); err != nil {
		return customercare.Response{}, err
	}

	return result, nil
}

func (c *customerCareCaller) Close() {
	c.client.Close()
}

type localCustomerCareCaller struct {
	agent *customercare.Agent
}

// NewLocalCustomerCareCaller answers with the agent in process.
func NewLocalCustomerCareCaller(agent *customercare.Agent) *localCustomerCareCaller {
	return &localCustomerCareCaller{agent: agent}
}

func (c *localCustomerCareCaller) Answer(
	ctx context.Context, req customercare.Request,
) (customercare.Response, error) {
	return c.agent.Answer(ctx, req)
}

func (c *localCustomerCareCaller) Close() {}
