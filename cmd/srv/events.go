package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RKmodz24/studio/internal/common"
	"github.com/RKmodz24/studio/pkg/kafka"
	"github.com/RKmodz24/studio/pkg/pubsub"
	"github.com/RKmodz24/studio/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startEvents(*cli.Context) error {
	cfg := xcontext.Configs(s.ctx).Kafka
	if len(cfg.Brokers()) == 0 {
		return fmt.Errorf("kafka.addr is required to consume events")
	}

	subscriber, err := kafka.NewSubscriber(
		cfg.ClientID+"-events",
		cfg.Brokers(),
		common.EventTopics,
		s.logEvent,
	)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	go func() {
		termSignal := make(chan os.Signal, 1)
		signal.Notify(termSignal, syscall.SIGINT, syscall.SIGTERM)
		sig := <-termSignal
		xcontext.Logger(s.ctx).Infof("Got a signal of %s", sig.String())
		cancel()
		if err := subscriber.Stop(s.ctx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot stop subscriber: %v", err)
		}
	}()

	xcontext.Logger(s.ctx).Infof("Started consuming topics %v", common.EventTopics)
	subscriber.Subscribe(ctx)
	return nil
}

func (s *srv) logEvent(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	xcontext.Logger(s.ctx).Infof("Event at %s: user=%s payload=%s",
		t.Format(time.RFC3339), pack.Key, pack.Msg)
}
