package live

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/messaging"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Condition not met before timeout")
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub
}

func TestServeWS_BroadcastsEvents(t *testing.T) {
	hub := startHub(t)
	server := httptest.NewServer(ServeWS(hub, nil))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Expected dial to succeed, got %v", err)
	}
	defer conn.Close()

	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	if err := hub.Publish(context.Background(), messaging.EventPaymentCreated, map[string]string{"payment_id": "p1"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Expected a message, got %v", err)
	}

	var msg struct {
		RoutingKey string            `json:"routing_key"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("Expected JSON, got %v", err)
	}
	if msg.RoutingKey != messaging.EventPaymentCreated || msg.Data["payment_id"] != "p1" {
		t.Errorf("Unexpected message: %+v", msg)
	}
}

func TestServeWS_RejectsUnknownOrigin(t *testing.T) {
	hub := startHub(t)
	server := httptest.NewServer(ServeWS(hub, []string{"http://localhost:3000"}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		t.Fatal("Expected handshake to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403, got %v", resp)
	}
}

func TestHub_DropsSlowClients(t *testing.T) {
	hub := startHub(t)

	slow := &Client{send: make(chan []byte)}
	if !hub.join(slow) {
		t.Fatal("Expected hub to accept the client")
	}
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Publish(context.Background(), messaging.EventPatientCreated, nil)

	waitFor(t, func() bool { return hub.ClientCount() == 0 })
	if _, open := <-slow.send; open {
		t.Error("Expected the slow client's channel to be closed")
	}
}

func TestHub_CloseStopsPublishing(t *testing.T) {
	hub := startHub(t)
	hub.Close()

	if err := hub.Publish(context.Background(), messaging.EventPatientCreated, nil); err != nil {
		t.Errorf("Expected publish after close to be a no-op, got %v", err)
	}
	if hub.join(&Client{send: make(chan []byte, 1)}) {
		t.Error("Expected closed hub to refuse clients")
	}
	// closing twice is safe
	hub.Close()
}
