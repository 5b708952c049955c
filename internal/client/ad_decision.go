package client

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/RKmodz24/studio/internal/domain/addecision"
	"github.com/RKmodz24/studio/pkg/xcontext"
)

type AdDecisionCaller interface {
	Decide(ctx context.Context, req addecision.Request) (addecision.Decision, error)
	Close()
}

type adDecisionCaller struct {
	client *rpc.Client
}

func NewAdDecisionCaller(client *rpc.Client) *adDecisionCaller {
	return &adDecisionCaller{client: client}
}

func (c *adDecisionCaller) Decide(
	ctx context.Context, req addecision.Request,
) (addecision.Decision, error) {
	if timeout := xcontext.Configs(ctx).AdDecision.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var result addecision.Decision
	if err := c.client.CallContext(ctx, &result, c.fname(ctx, "decide"), req); err != nil {
		return addecision.Decision{}, err
	}

	return result, nil
}

func (c *adDecisionCaller) Close() {
	c.client.Close()
}

func (c *adDecisionCaller) fname(ctx context.Context, funcName string) string {
	return fmt.Sprintf("%s_%s", xcontext.Configs(ctx).AdDecision.RPCName, funcName)
}

type localAdDecisionCaller struct {
	decider *addecision.Decider
}

// NewLocalAdDecisionCaller calls the rule-based decider in process.
func NewLocalAdDecisionCaller(decider *addecision.Decider) *localAdDecisionCaller {
	return &localAdDecisionCaller{decider: decider}
}

func (c *localAdDecisionCaller) Decide(
	ctx context.Context, req addecision.Request,
) (addecision.Decision, error) {
	return c.decider.Decide(ctx, req)
}

func (c *localAdDecisionCaller) Close() {}
