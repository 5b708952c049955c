package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RKmodz24/studio/internal/middleware"
	"github.com/RKmodz24/studio/pkg/prometheus"
	"github.com/RKmodz24/studio/pkg/router"
	"github.com/RKmodz24/studio/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 10 * time.Second

func (s *srv) startApi(*cli.Context) error {
	s.loadDatabase()
	s.loadRepos()
	s.loadPublisher()
	s.loadAdDecision()
	s.loadCustomerCare()
	s.loadRegistry()
	s.loadOAuth2Services()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx).ApiServer
	s.server = &http.Server{
		Addr:    cfg.Address(),
		Handler: s.router.Handler(),
	}

	go func() {
		termSignal := make(chan os.Signal, 1)
		signal.Notify(termSignal, syscall.SIGINT, syscall.SIGTERM)
		sig := <-termSignal
		xcontext.Logger(s.ctx).Infof("Got a signal of %s, shutting down", sig.String())

		ctx, cancel := context.WithTimeout(s.ctx, shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot shutdown server gracefully: %v", err)
		}
	}()

	xcontext.Logger(s.ctx).Infof("Starting server on port: %s", cfg.Port)
	var err error
	if cfg.Cert != "" && cfg.Key != "" {
		err = s.server.ListenAndServeTLS(cfg.Cert, cfg.Key)
	} else {
		err = s.server.ListenAndServe()
	}

	s.shutdown(s.ctx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, xcontext.Configs(s.ctx), xcontext.Logger(s.ctx))
	s.router.AddCloser(middleware.Logger())

	// Scrapers must not create guest sessions.
	s.router.Handle("/metrics", prometheus.NewHandler())

	defaultRouter := s.router.Branch()
	defaultRouter.Before(middleware.WithStartTime())
	defaultRouter.Before(middleware.Identify())
	defaultRouter.AddCloser(middleware.Prometheus())
	{
		// Reward API
		router.GET(defaultRouter, "/getState", s.rewardDomain.GetState)
		router.POST(defaultRouter, "/completeTask", s.rewardDomain.CompleteTask)
		router.POST(defaultRouter, "/claimGameReward", s.rewardDomain.ClaimGameReward)
		router.POST(defaultRouter, "/surpriseBonus", s.rewardDomain.SurpriseBonus)
		router.GET(defaultRouter, "/getReferral", s.rewardDomain.GetReferral)
		router.GET(defaultRouter, "/searchTasks", s.rewardDomain.SearchTasks)

		// Cashout API
		router.POST(defaultRouter, "/requestCashout", s.rewardDomain.RequestCashout)
		router.POST(defaultRouter, "/submitCashout", s.rewardDomain.SubmitCashout)
		router.POST(defaultRouter, "/cancelCashout", s.rewardDomain.CancelCashout)

		// Offer API
		router.GET(defaultRouter, "/getOffer", s.offerDomain.GetOffer)
		router.POST(defaultRouter, "/claimOffer", s.offerDomain.ClaimOffer)
		router.GET(defaultRouter, "/searchOffers", s.offerDomain.SearchOffers)

		// Support API
		router.POST(defaultRouter, "/askSupport", s.supportDomain.AskSupport)
		router.POST(defaultRouter, "/contactSupport", s.supportDomain.ContactSupport)

		defaultRouter.Handle("/ws", http.HandlerFunc(s.wsDomain.Serve))
	}

	// Auth API
	authRouter := defaultRouter.Branch()
	authRouter.After(middleware.HandleSetCookie())
	{
		router.GET(authRouter, "/oauth2/verify", s.authDomain.OAuth2Verify)
	}

	userRouter := defaultRouter.Branch()
	userRouter.Before(middleware.OnlyUser())
	{
		router.GET(userRouter, "/getMe", s.authDomain.GetMe)
	}
}
