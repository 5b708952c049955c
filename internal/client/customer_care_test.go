package client_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"

	"github.com/RKmodz24/studio/config"
	"github.com/RKmodz24/studio/internal/client"
	"github.com/RKmodz24/studio/internal/domain/customercare"
	"github.com/RKmodz24/studio/pkg/testutil"
	"github.com/RKmodz24/studio/pkg/xcontext"
)

func TestCustomerCareCallerRPC(t *testing.T) {
	ctx := testutil.MockContext()

	server := rpc.NewServer()
	agent := customercare.NewAgent(xcontext.Configs(ctx).Reward)
	require.NoError(t, server.RegisterName(xcontext.Configs(ctx).CustomerCare.RPCName, agent))
	defer server.Stop()

	httpSrv := httptest.NewServer(server)
	defer httpSrv.Close()

	rpcClient, err := rpc.DialContext(ctx, httpSrv.URL)
	require.NoError(t, err)

	caller := client.NewCustomerCareCaller(rpcClient)
	defer caller.Close()

	resp, err := caller.Answer(ctx, customercare.Request{
		Query:   "How long does it take?",
		History: []customercare.Message{{Role: customercare.RoleUser, Content: "How do I withdraw?"}},
	})
	require.NoError(t, err)
	require.Contains(t, resp.Response, "processed in a few seconds")

	_, err = caller.Answer(ctx, customercare.Request{Query: ""})
	require.Error(t, err)
}

func TestLocalCustomerCareCaller(t *testing.T) {
	caller := client.NewLocalCustomerCareCaller(customercare.NewAgent(config.Default().Reward))
	resp, err := caller.Answer(context.Background(), customercare.Request{Query: "Is UPI supported?"})
	require.NoError(t, err)
	require.Contains(t, resp.Response, "UPI")
}
