package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ovenline/pizza-chat/backend/internal/service/agent"
	chatservice "github.com/ovenline/pizza-chat/backend/internal/service/chat"
)

func dialTestServer(t *testing.T, clientID string) (*websocket.Conn, *chatservice.Service, func()) {
	t.Helper()

	chatSvc := chatservice.NewService(agent.NameScripted)
	handler := New(chatSvc, agent.NewScripted())

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	server := httptest.NewServer(r)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/" + clientID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		server.Close()
		t.Fatalf("dial err: %v", err)
	}

	cleanup := func() {
		conn.Close()
		server.Close()
	}
	return conn, chatSvc, cleanup
}

func readFrame(t *testing.T, conn *websocket.Conn) outboundFrame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame outboundFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read err: %v", err)
	}
	return frame
}

func TestWebSocketRoundTrip(t *testing.T) {
	conn, _, cleanup := dialTestServer(t, "client-ws")
	defer cleanup()

	if err := conn.WriteJSON(inboundFrame{Text: "I want a pizza"}); err != nil {
		t.Fatalf("write err: %v", err)
	}

	frame := readFrame(t, conn)
	if frame.Type != frameMessage {
		t.Fatalf("expected message frame, got %s", frame.Type)
	}
	if !strings.Contains(strings.ToLower(frame.Text), "welcome") {
		t.Fatalf("expected greeting, got %q", frame.Text)
	}
}

func TestWebSocketCreatesSessionOnFirstMessage(t *testing.T) {
	conn, chatSvc, cleanup := dialTestServer(t, "client-ws")
	defer cleanup()

	// Session must not exist before the first message.
	if _, err := chatSvc.GetSession(context.Background(), "client-ws"); err == nil {
		t.Fatal("session should not exist before the first message")
	}

	if err := conn.WriteJSON(inboundFrame{Text: "hello"}); err != nil {
		t.Fatalf("write err: %v", err)
	}
	readFrame(t, conn)

	transcript, err := chatSvc.LoadTranscript(context.Background(), "client-ws")
	if err != nil {
		t.Fatalf("LoadTranscript err: %v", err)
	}
	if len(transcript) != 2 {
		t.Fatalf("expected user and assistant turns, got %d", len(transcript))
	}
}

func TestWebSocketEmptyTextYieldsErrorFrame(t *testing.T) {
	conn, _, cleanup := dialTestServer(t, "client-ws")
	defer cleanup()

	if err := conn.WriteJSON(map[string]string{"text": ""}); err != nil {
		t.Fatalf("write err: %v", err)
	}

	frame := readFrame(t, conn)
	if frame.Type != frameError {
		t.Fatalf("expected error frame, got %s", frame.Type)
	}
}

func TestWebSocketSurvivesErrorFrame(t *testing.T) {
	conn, _, cleanup := dialTestServer(t, "client-ws")
	defer cleanup()

	if err := conn.WriteJSON(map[string]string{"text": ""}); err != nil {
		t.Fatalf("write err: %v", err)
	}
	readFrame(t, conn)

	if err := conn.WriteJSON(inboundFrame{Text: "still here"}); err != nil {
		t.Fatalf("write err: %v", err)
	}
	frame := readFrame(t, conn)
	if frame.Type != frameMessage {
		t.Fatalf("expected connection to survive, got %s frame", frame.Type)
	}
}
