package main

import (
	"context"
	"fmt"

	"github.com/RKmodz24/studio/config"
	"github.com/RKmodz24/studio/internal/client"
	"github.com/RKmodz24/studio/internal/domain"
	"github.com/RKmodz24/studio/internal/domain/addecision"
	"github.com/RKmodz24/studio/internal/domain/customercare"
	"github.com/RKmodz24/studio/internal/domain/search"
	"github.com/RKmodz24/studio/internal/domain/session"
	"github.com/RKmodz24/studio/internal/domain/taskregistry"
	"github.com/RKmodz24/studio/internal/repository"
	"github.com/RKmodz24/studio/pkg/authenticator"
	"github.com/RKmodz24/studio/pkg/kafka"
	"github.com/RKmodz24/studio/pkg/logger"
	"github.com/RKmodz24/studio/pkg/pubsub"
	"github.com/RKmodz24/studio/pkg/scheduler"
	"github.com/RKmodz24/studio/pkg/ws"
	"github.com/RKmodz24/studio/pkg/xcontext"
	"github.com/RKmodz24/studio/pkg/xredis"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setup runs before every command.
func (s *srv) setup(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
	return nil
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	default:
		panic(fmt.Sprintf("unsupported database driver %s", cfg.Driver))
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) loadDatabase() {
	s.db = s.newDatabase()
	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx, xcontext.Configs(s.ctx).Redis.Addr)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	// Identities always live in the database, they must survive a redis flush.
	s.identityRepo = repository.NewKeyValueRepository()

	switch backend := xcontext.Configs(s.ctx).Storage.Backend; backend {
	case "sql":
		s.stateRepo = s.identityRepo
	case "redis":
		s.loadRedisClient()
		s.stateRepo = repository.NewRedisKeyValueRepository(s.redisClient)
	case "memory":
		s.stateRepo = repository.NewMemoryKeyValueRepository()
	default:
		panic(fmt.Sprintf("unsupported storage backend %s", backend))
	}
}

func (s *srv) loadPublisher() {
	cfg := xcontext.Configs(s.ctx).Kafka
	if len(cfg.Brokers()) == 0 {
		xcontext.Logger(s.ctx).Warnf("No kafka broker is configured, events are only logged")
		s.publisher = pubsub.NewLogPublisher()
		return
	}

	publisher, err := kafka.NewPublisher(cfg.ClientID, cfg.Brokers())
	if err != nil {
		panic(err)
	}

	s.publisher = publisher
}

func (s *srv) loadAdDecision() {
	cfg := xcontext.Configs(s.ctx).AdDecision
	if cfg.Endpoint == "" {
		s.adDecision = client.NewLocalAdDecisionCaller(addecision.NewDecider(0))
		return
	}

	rpcClient, err := rpc.DialContext(s.ctx, cfg.Endpoint)
	if err != nil {
		panic(err)
	}

	s.adDecision = client.NewAdDecisionCaller(rpcClient)
}

func (s *srv) loadCustomerCare() {
	cfg := xcontext.Configs(s.ctx)
	if cfg.CustomerCare.Endpoint == "" {
		s.customerCare = client.NewLocalCustomerCareCaller(customercare.NewAgent(cfg.Reward))
		return
	}

	rpcClient, err := rpc.DialContext(s.ctx, cfg.CustomerCare.Endpoint)
	if err != nil {
		panic(err)
	}

	s.customerCare = client.NewCustomerCareCaller(rpcClient)
}

func (s *srv) loadRegistry() {
	s.index = search.NewBleveIndex(s.ctx)

	var err error
	s.registry, err = taskregistry.NewRegistry(s.ctx, xcontext.Configs(s.ctx).Reward.NodeID, s.index)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadOAuth2Services() {
	cfg := xcontext.Configs(s.ctx).Auth
	if cfg.Google.ClientID == "" {
		xcontext.Logger(s.ctx).Warnf("Google client id is empty, oauth2 sign-in is disabled")
		return
	}

	service, err := authenticator.NewOAuth2Service(s.ctx, cfg.Google)
	if err != nil {
		panic(err)
	}

	s.oauth2Services = append(s.oauth2Services, service)
}

func (s *srv) loadDomains() {
	s.hub = ws.NewHub()
	wsDomain := domain.NewWsDomain(s.hub)

	s.sessionManager = session.NewManager(s.ctx, session.Dependencies{
		Registry:   s.registry,
		Repo:       s.stateRepo,
		Scheduler:  scheduler.New(),
		Publisher:  s.publisher,
		AdDecision: s.adDecision,
	}, wsDomain.Broadcast)
	wsDomain.SetSessionManager(s.sessionManager)
	s.wsDomain = wsDomain

	var err error
	s.offerDomain, err = domain.NewOfferDomain(s.ctx, s.sessionManager, s.index)
	if err != nil {
		panic(err)
	}

	s.rewardDomain = domain.NewRewardDomain(s.sessionManager, s.registry)
	s.authDomain = domain.NewAuthDomain(s.identityRepo, s.oauth2Services)
	s.supportDomain = domain.NewSupportDomain(s.customerCare, s.publisher)
}

func (s *srv) shutdown(ctx context.Context) {
	if s.sessionManager != nil {
		s.sessionManager.Close()
	}

	if s.adDecision != nil {
		s.adDecision.Close()
	}

	if s.customerCare != nil {
		s.customerCare.Close()
	}

	if s.index != nil {
		s.index.Close()
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot close redis client: %v", err)
		}
	}
}
