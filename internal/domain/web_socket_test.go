package domain

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/RKmodz24/studio/internal/model"
	"github.com/RKmodz24/studio/pkg/ws"
	"github.com/RKmodz24/studio/pkg/xcontext"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

type testWsMessage struct {
	Type string                 `json:"type"`
	Data model.GetStateResponse `json:"data"`
}

func Test_wsDomain(t *testing.T) {
	wsDomain := NewWsDomain(ws.NewHub())
	d := newTestDomains(t, wsDomain.Broadcast)
	wsDomain.SetSessionManager(d.manager)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := xcontext.WithRequestUserID(d.ctx, "user1")
		wsDomain.Serve(w, r.WithContext(ctx))
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	readState := func() model.GetStateResponse {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)

		var m testWsMessage
		require.NoError(t, json.Unmarshal(msg, &m))
		require.Equal(t, "state", m.Type)
		return m.Data
	}

	require.Equal(t, uint64(0), readState().DiamondBalance)

	ctx := xcontext.WithRequestUserID(d.ctx, "user1")
	_, err = d.reward.ClaimGameReward(ctx, &model.ClaimGameRewardRequest{Amount: 300})
	require.NoError(t, err)

	state := readState()
	require.Equal(t, uint64(300), state.DiamondBalance)
	require.Equal(t, uint64(1), state.Revision)
}
