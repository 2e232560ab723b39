package relay

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Wire message types.
const (
	TypeJoinRoom   = "joinRoom"
	TypeRoomJoined = "roomJoined"
	TypeState      = "state"
	TypeError      = "error"
)

// Message is the wire frame shared by both directions. State is opaque to
// the relay: it stores and forwards snapshots without inspecting them. A
// roomJoined reply always carries a state key, explicit null for a fresh
// room.
type Message struct {
	Type     string          `json:"type"`
	Password string          `json:"password,omitempty"`
	State    json.RawMessage `json:"state,omitempty"`
	Error    string          `json:"message,omitempty"`
}

const (
	writeWait  = 10 * time.Second
	sendBuffer = 32
)

// Server relays state snapshots between the members of a room. Rooms are
// keyed by an arbitrary password string; the empty password is the default
// room. The relay performs no game validation: the last snapshot written
// wins and is what late joiners receive.
type Server struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	rooms map[string]*room
}

type room struct {
	key     string
	last    json.RawMessage
	members map[*member]bool
}

type member struct {
	conn   *websocket.Conn
	send   chan Message
	room   *room
	closed bool
}

func NewServer() *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		rooms: make(map[string]*room),
	}
}

// Handler mounts the websocket endpoint at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", s)
	return mux
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	m := &member{conn: conn, send: make(chan Message, sendBuffer)}
	go m.writePump()
	s.readLoop(m)
}

func (s *Server) readLoop(m *member) {
	defer s.leave(m)

	for {
		var msg Message
		if err := m.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case TypeJoinRoom:
			s.join(m, msg.Password)
		case TypeState:
			s.storeAndBroadcast(m, msg.State)
		default:
			s.send(m, Message{Type: TypeError, Error: "unknown message type: " + msg.Type})
		}
	}
}

func (s *Server) join(m *member, key string) {
	s.mu.Lock()
	if m.room != nil {
		delete(m.room.members, m)
	}
	rm, ok := s.rooms[key]
	if !ok {
		rm = &room{key: key, members: make(map[*member]bool)}
		s.rooms[key] = rm
	}
	rm.members[m] = true
	m.room = rm
	last := rm.last
	if last == nil {
		last = json.RawMessage("null")
	}
	m.enqueue(Message{Type: TypeRoomJoined, Password: key, State: last})
	s.mu.Unlock()

	log.Info().Str("room", key).Msg("member joined")
}

func (s *Server) storeAndBroadcast(m *member, state json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm := m.room
	if rm == nil {
		m.enqueue(Message{Type: TypeError, Error: "join a room before sending state"})
		return
	}
	rm.last = state

	// Every member gets the snapshot, the sender included: the echo is the
	// sender's confirmation that the relay stored it.
	out := Message{Type: TypeState, State: state}
	for peer := range rm.members {
		peer.enqueue(out)
	}
}

// leave removes the member and closes its send channel. The server owns the
// close: leave and every enqueue run under the mutex, so a broadcast racing
// a disconnect sees either an open channel or the closed flag, never a send
// on a closed channel.
func (s *Server) leave(m *member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.room != nil {
		delete(m.room.members, m)
		m.room = nil
	}
	if !m.closed {
		m.closed = true
		close(m.send)
	}
}

// send is enqueue for callers not already holding the mutex.
func (s *Server) send(m *member, msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.enqueue(msg)
}

// enqueue hands a message to the write pump, dropping it if the member has
// left or is too far behind: the next snapshot supersedes anything missed.
// Callers hold the server mutex.
func (m *member) enqueue(msg Message) {
	if m.closed {
		return
	}
	select {
	case m.send <- msg:
	default:
	}
}

func (m *member) writePump() {
	defer m.conn.Close()
	for msg := range m.send {
		m.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := m.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
