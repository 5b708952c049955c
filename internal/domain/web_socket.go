package domain

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/RKmodz24/studio/internal/common"
	"github.com/RKmodz24/studio/internal/domain/currency"
	"github.com/RKmodz24/studio/internal/domain/session"
	"github.com/RKmodz24/studio/internal/model"
	"github.com/RKmodz24/studio/pkg/ws"
	"github.com/RKmodz24/studio/pkg/xcontext"
	"github.com/gorilla/websocket"
)

const compressedSuffix = ":zlib"

type wsMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type WsDomain interface {
	// Serve upgrades the request and pushes the state of the request user on
	// every change.
	Serve(w http.ResponseWriter, r *http.Request)

	// Broadcast is the session listener feeding the connected clients.
	Broadcast(ctx context.Context, snapshot session.Snapshot)
}

type wsDomain struct {
	sessionManager *session.Manager
	hub            *ws.Hub
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func NewWsDomain(hub *ws.Hub) *wsDomain {
	return &wsDomain{hub: hub}
}

// SetSessionManager breaks the cycle between the manager, which needs the
// listener, and this domain.
func (d *wsDomain) SetSessionManager(sessionManager *session.Manager) {
	d.sessionManager = sessionManager
}

func (d *wsDomain) Serve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if xcontext.RequestUserID(ctx) == "" {
		http.Error(w, "User is not valid", http.StatusUnauthorized)
		return
	}

	s, err := getSession(ctx, d.sessionManager)
	if err != nil {
		http.Error(w, "Unable to load session", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot upgrade websocket: %v", err)
		return
	}

	client := ws.NewClient(conn)
	compress := r.URL.Query().Get("compress") == "true"
	channel := common.WebsocketChannel(s.UserID())
	if compress {
		channel += compressedSuffix
	}

	d.hub.Register(channel, client)
	xcontext.Logger(ctx).Debugf("User %s connected to %s", s.UserID(), channel)

	if msg, err := d.stateMessage(ctx, s.Snapshot()); err == nil {
		if err := client.Write(msg, compress); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot send the first state: %v", err)
		}
	}

	go func() {
		// Incoming messages are not used, drain them until the peer leaves.
		for range client.R {
		}

		d.hub.Unregister(channel, client)
	}()
}

func (d *wsDomain) Broadcast(ctx context.Context, snapshot session.Snapshot) {
	channel := common.WebsocketChannel(snapshot.UserID)
	if d.hub.Count(channel) == 0 && d.hub.Count(channel+compressedSuffix) == 0 {
		return
	}

	msg, err := d.stateMessage(ctx, snapshot)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal state of %s: %v", snapshot.UserID, err)
		return
	}

	d.hub.Broadcast(channel, msg, false)
	d.hub.Broadcast(channel+compressedSuffix, msg, true)
}

func (d *wsDomain) stateMessage(ctx context.Context, snapshot session.Snapshot) ([]byte, error) {
	cfg := xcontext.Configs(ctx)
	state := convertState(snapshot, currency.NewModelFromConfig(cfg.Reward), cfg.Reward.ReferralBaseURL, false)
	return json.Marshal(wsMessage{Type: "state", Data: model.GetStateResponse(state)})
}
