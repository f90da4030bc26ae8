package dashboard

import (
	"bufio"
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

func TestBroadcastHookSubscribe(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	defer cancel()
	event := WidgetEvent{AreaCode: AreaMain}
	require.NoError(t, hook.WidgetUpdated(context.Background(), event))
	select {
	case e := <-ch:
		assert.Equal(t, event.AreaCode, e.AreaCode)
	default:
		t.Fatalf("expected event to be delivered")
	}
}

func TestBroadcastHookAreaFilter(t *testing.T) {
	hook := NewBroadcastHook()
	sidebar, cancel := hook.SubscribeArea(AreaSidebar)
	defer cancel()

	require.NoError(t, hook.WidgetUpdated(context.Background(), WidgetEvent{AreaCode: AreaMain}))
	require.NoError(t, hook.WidgetUpdated(context.Background(), WidgetEvent{AreaCode: AreaSidebar, Reason: "add"}))
	require.NoError(t, hook.WidgetUpdated(context.Background(), WidgetEvent{Reason: "settings"}))

	require.Len(t, sidebar, 2)
	assert.Equal(t, "add", (<-sidebar).Reason)
	assert.Equal(t, "settings", (<-sidebar).Reason)
}

func TestBroadcastHookCancelRemovesSubscriber(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	assert.Equal(t, 1, hook.Subscribers())
	cancel()
	cancel()
	assert.Equal(t, 0, hook.Subscribers())
	_, open := <-ch
	assert.False(t, open)
}

func TestBroadcastHookWebSocket(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeWebSocket))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?area=" + AreaMain
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hook.Subscribers() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, hook.WidgetUpdated(context.Background(), WidgetEvent{AreaCode: AreaMain, Reason: "reorder"}))

	var event WidgetEvent
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "reorder", event.Reason)
}

func TestBroadcastHookSSE(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeSSE))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return hook.Subscribers() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, hook.WidgetUpdated(context.Background(), WidgetEvent{AreaCode: AreaFooter, Reason: "update"}))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: widget\n", line)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, `"reason":"update"`)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "id: 1\n", line)
}

func TestBroadcastHookWebSocketClientCloseUnsubscribes(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeWebSocket))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hook.Subscribers() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hook.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)
}
