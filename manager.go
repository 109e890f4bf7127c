// manager.go

// Central event loop. One goroutine owns the client table and the
// Session; registrations, disconnects, inbound frames and timer expiries
// are all funneled through channels and handled to completion, broadcast
// included, before the next one. That serialization is what keeps the
// Session lock-free.
package main

import (
	"encoding/json"
	"log/slog"
)

type inboundEvent struct {
	handle string
	env    Envelope
}

// Manager tracks connected clients and drives the session.
type Manager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	inbound    chan inboundEvent
	timerFired chan string

	session *Session
	sendBuf int
	log     *slog.Logger
}

func newManager(cfg Config, log *slog.Logger) *Manager {
	m := &Manager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundEvent),
		timerFired: make(chan string, 8),
		sendBuf:    cfg.SendBufferSize,
		log:        log,
	}
	m.session = newSession(m, log, cfg.TimerSeconds, func(roomID string) {
		m.timerFired <- roomID
	})
	return m
}

func (m *Manager) run() {
	for {
		select {
		case c := <-m.register:
			m.clients[c.id] = c
			m.session.Connect(c.id)

		case c := <-m.unregister:
			if _, ok := m.clients[c.id]; ok {
				delete(m.clients, c.id)
				close(c.send)
				m.session.Disconnect(c.id)
			}

		case evt := <-m.inbound:
			m.handleEvent(evt.handle, evt.env)

		case roomID := <-m.timerFired:
			m.session.TimerEnded(roomID)
		}
	}
}

// ToClient sends one frame to one client. A full send buffer drops the
// frame rather than stalling the loop behind a slow reader.
func (m *Manager) ToClient(handle string, evt Outbound) {
	c := m.clients[handle]
	if c == nil {
		return
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		m.log.Error("marshal outbound", "event", evt.Event, "error", err)
		return
	}
	select {
	case c.send <- payload:
	default:
		m.log.Warn("dropping frame for slow client", "handle", handle, "event", evt.Event)
	}
}

// ToMany is the room-scoped multicast.
func (m *Manager) ToMany(handles []string, evt Outbound) {
	for _, h := range handles {
		m.ToClient(h, evt)
	}
}

// ToAll reaches every connected client.
func (m *Manager) ToAll(evt Outbound) {
	for handle := range m.clients {
		m.ToClient(handle, evt)
	}
}
