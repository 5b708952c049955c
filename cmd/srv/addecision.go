package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/RKmodz24/studio/internal/domain/addecision"
	"github.com/RKmodz24/studio/internal/domain/customercare"
	"github.com/RKmodz24/studio/pkg/xcontext"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/urfave/cli/v2"
)

func (s *srv) startAdDecisionRPC(*cli.Context) error {
	cfg := xcontext.Configs(s.ctx).AdDecision
	careCfg := xcontext.Configs(s.ctx).CustomerCare
	go func() {
		termSignal := make(chan os.Signal, 1)
		signal.Notify(termSignal, syscall.SIGINT, syscall.SIGTERM)
		for sig := range termSignal {
			xcontext.Logger(s.ctx).Errorf("Got a signal of %s", sig.String())
			os.Exit(1)
		}
	}()

	rpcHandler := rpc.NewServer()
	err := rpcHandler.RegisterName(cfg.RPCName, addecision.NewDecider(0))
	if err != nil {
		xcontext.Logger(s.ctx).Errorf("Cannot register ad decider: %v", err)
		return err
	}
	defer rpcHandler.Stop()

	err = rpcHandler.RegisterName(careCfg.RPCName, customercare.NewAgent(xcontext.Configs(s.ctx).Reward))
	if err != nil {
		xcontext.Logger(s.ctx).Errorf("Cannot register customer care agent: %v", err)
		return err
	}

	httpSrv := &http.Server{
		Handler: rpcHandler,
		Addr:    cfg.Address(),
	}

	xcontext.Logger(s.ctx).Infof("Started rpc server of ad decision and customer care on %s", cfg.Address())
	if err := httpSrv.ListenAndServe(); err != nil {
		xcontext.Logger(s.ctx).Errorf("A error occurs when running rpc server: %v", err)
		return err
	}
	xcontext.Logger(s.ctx).Infof("Stopped rpc server of ad decision and customer care")

	return nil
}
