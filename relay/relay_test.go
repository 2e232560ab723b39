package relay

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"archon/game"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func startRelay(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(NewServer().Handler())
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dialClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := Dial(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func recvUpdate(t *testing.T, c *Client) json.RawMessage {
	t.Helper()
	select {
	case u, ok := <-c.Updates():
		require.True(t, ok, "connection closed before the update arrived")
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a state update")
		return nil
	}
}

func TestRelayRoomFlow(t *testing.T) {
	url := startRelay(t)

	alice := dialClient(t, url)
	last, err := alice.Join("secret")
	require.NoError(t, err)
	require.Nil(t, last, "a fresh room has no snapshot")

	bob := dialClient(t, url)
	_, err = bob.Join("secret")
	require.NoError(t, err)

	snapshot, err := game.NewGameState().Encode()
	require.NoError(t, err)
	require.NoError(t, alice.SendState(snapshot))

	require.JSONEq(t, string(snapshot), string(recvUpdate(t, alice)),
		"sender receives its own snapshot back")
	require.JSONEq(t, string(snapshot), string(recvUpdate(t, bob)))

	decoded, err := game.Decode(recvLast(t, url, "secret"))
	require.NoError(t, err)
	require.Equal(t, "first", decoded.Player(), "late joiner reconstructs the position")
}

// recvLast joins the room with a fresh client and returns the snapshot
// handed back on join.
func recvLast(t *testing.T, url, room string) json.RawMessage {
	t.Helper()
	c := dialClient(t, url)
	last, err := c.Join(room)
	require.NoError(t, err)
	require.NotNil(t, last)
	return last
}

func TestRelayRoomIsolation(t *testing.T) {
	url := startRelay(t)

	alice := dialClient(t, url)
	_, err := alice.Join("room-a")
	require.NoError(t, err)

	eve := dialClient(t, url)
	_, err = eve.Join("room-b")
	require.NoError(t, err)

	require.NoError(t, alice.SendState(json.RawMessage(`{"turn":"first"}`)))
	recvUpdate(t, alice)

	select {
	case u := <-eve.Updates():
		t.Fatalf("room-b member received room-a state: %s", u)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRelayErrors(t *testing.T) {
	url := startRelay(t)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	t.Run("state before join", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(Message{Type: TypeState, State: json.RawMessage(`{}`)}))
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		require.Equal(t, TypeError, msg.Type)
		require.Contains(t, msg.Error, "join a room")
	})

	t.Run("unknown message type", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(Message{Type: "shout"}))
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		require.Equal(t, TypeError, msg.Type)
		require.Contains(t, msg.Error, "shout")
	})
}

func TestRelayWireFormat(t *testing.T) {
	url := startRelay(t)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"joinRoom","password":"wire"}`)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var reply map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &reply))
	require.JSONEq(t, `"roomJoined"`, string(reply["type"]))
	require.JSONEq(t, `"wire"`, string(reply["password"]), "rooms are keyed by password on the wire")
	state, ok := reply["state"]
	require.True(t, ok, "a fresh room reports its state explicitly")
	require.JSONEq(t, `null`, string(state))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"shout"}`)))
	_, raw, err = conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &reply))
	require.JSONEq(t, `"error"`, string(reply["type"]))
	require.Contains(t, string(reply["message"]), "shout", "error text travels under the message key")
}

// A member disconnecting while a broadcast is in flight must never crash
// the relay: the server owns the send-channel close, so a concurrent
// enqueue sees the closed flag instead of a closed channel.
func TestRelayDisconnectDuringBroadcast(t *testing.T) {
	s := NewServer()
	sender := &member{send: make(chan Message, sendBuffer)}
	s.join(sender, "stress")

	for i := 0; i < 50; i++ {
		peer := &member{send: make(chan Message, 1)}
		s.join(peer, "stress")

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.leave(peer)
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.storeAndBroadcast(sender, json.RawMessage(`{}`))
			}
		}()
		wg.Wait()
	}
}

func TestRelayDefaultRoom(t *testing.T) {
	url := startRelay(t)

	a := dialClient(t, url)
	_, err := a.Join("")
	require.NoError(t, err)

	b := dialClient(t, url)
	_, err = b.Join("")
	require.NoError(t, err)

	require.NoError(t, b.SendState(json.RawMessage(`{"turn":"second"}`)))
	require.JSONEq(t, `{"turn":"second"}`, string(recvUpdate(t, a)),
		"empty key is the shared default room")
}
