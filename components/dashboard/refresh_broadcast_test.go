package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastHookFiltersByPage(t *testing.T) {
	hook := NewBroadcastHook()
	all, cancelAll := hook.Subscribe("")
	defer cancelAll()
	mine, cancelMine := hook.Subscribe("p1")
	defer cancelMine()

	require.NoError(t, hook.PageUpdated(context.Background(), PageEvent{PageID: "p2", Section: SectionTrend}))
	require.NoError(t, hook.PageUpdated(context.Background(), PageEvent{PageID: "p1", Section: SectionShell}))

	assert.Equal(t, "p2", (<-all).PageID)
	assert.Equal(t, "p1", (<-all).PageID)
	got := <-mine
	assert.Equal(t, SectionShell, got.Section)
	select {
	case e := <-mine:
		t.Fatalf("unexpected event %+v", e)
	default:
	}
}

func TestBroadcastHookDropsWhenFull(t *testing.T) {
	hook := NewBroadcastHook()
	_, cancel := hook.Subscribe("")
	defer cancel()
	for i := 0; i < subscriberBuffer*2; i++ {
		require.NoError(t, hook.PageUpdated(context.Background(), PageEvent{PageID: "p"}))
	}
}

func TestBroadcastHookCancelIsIdempotent(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe("")
	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)
	assert.Zero(t, hook.Subscribers())
}

func TestBroadcastHookServeWebSocket(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeWebSocket))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?page=p1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hook.Subscribers() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, hook.PageUpdated(context.Background(), PageEvent{PageID: "p1", Section: SectionTrend, Reason: EventChartMetricSelect}))

	var event PageEvent
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, SectionTrend, event.Section)
	assert.Equal(t, EventChartMetricSelect, event.Reason)
}
