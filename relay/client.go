package relay

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
)

// Client is a relay participant: it joins one room, pushes snapshots and
// receives every snapshot stored in the room, its own included.
type Client struct {
	conn    *websocket.Conn
	updates chan json.RawMessage
}

// Dial connects to a relay websocket endpoint (ws://host/ws).
func Dial(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial relay: %w", err)
	}
	return &Client{
		conn:    conn,
		updates: make(chan json.RawMessage, sendBuffer),
	}, nil
}

// Join enters a room and returns the room's last snapshot, nil when the
// room is fresh. It must be called once, before SendState or Updates.
func (c *Client) Join(room string) (json.RawMessage, error) {
	if err := c.conn.WriteJSON(Message{Type: TypeJoinRoom, Password: room}); err != nil {
		return nil, fmt.Errorf("join room: %w", err)
	}

	var msg Message
	if err := c.conn.ReadJSON(&msg); err != nil {
		return nil, fmt.Errorf("join room: %w", err)
	}
	switch msg.Type {
	case TypeRoomJoined:
		go c.readLoop()
		if string(msg.State) == "null" {
			return nil, nil
		}
		return msg.State, nil
	case TypeError:
		return nil, fmt.Errorf("join room: %s", msg.Error)
	default:
		return nil, fmt.Errorf("join room: unexpected reply %q", msg.Type)
	}
}

// SendState stores a snapshot in the room and broadcasts it.
func (c *Client) SendState(state json.RawMessage) error {
	if err := c.conn.WriteJSON(Message{Type: TypeState, State: state}); err != nil {
		return fmt.Errorf("send state: %w", err)
	}
	return nil
}

// Updates delivers room snapshots in arrival order. The channel closes when
// the connection drops.
func (c *Client) Updates() <-chan json.RawMessage {
	return c.updates
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) readLoop() {
	defer close(c.updates)
	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type == TypeState {
			c.updates <- msg.State
		}
	}
}
