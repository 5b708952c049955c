package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/RKmodz24/studio/internal/client"
	"github.com/RKmodz24/studio/internal/domain"
	"github.com/RKmodz24/studio/internal/domain/search"
	"github.com/RKmodz24/studio/internal/domain/session"
	"github.com/RKmodz24/studio/internal/domain/taskregistry"
	"github.com/RKmodz24/studio/internal/repository"
	"github.com/RKmodz24/studio/pkg/authenticator"
	"github.com/RKmodz24/studio/pkg/pubsub"
	"github.com/RKmodz24/studio/pkg/router"
	"github.com/RKmodz24/studio/pkg/ws"
	"github.com/RKmodz24/studio/pkg/xredis"

	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	db          *gorm.DB
	redisClient xredis.Client

	stateRepo    repository.KeyValueRepository
	identityRepo repository.KeyValueRepository

	publisher      pubsub.Publisher
	adDecision     client.AdDecisionCaller
	customerCare   client.CustomerCareCaller
	index          search.Index
	registry       *taskregistry.Registry
	hub            *ws.Hub
	sessionManager *session.Manager
	oauth2Services []authenticator.OAuth2Service

	rewardDomain  domain.RewardDomain
	offerDomain   domain.OfferDomain
	authDomain    domain.AuthDomain
	wsDomain      domain.WsDomain
	supportDomain domain.SupportDomain

	router *router.Router
	server *http.Server
}

var server srv

func main() {
	server.ctx = context.Background()
	server.loadApp()

	if err := server.app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
