// client.go
// The read goroutine decodes frames from the browser and pushes them into
// the manager's inbound channel. The write goroutine drains the client's
// send channel back to the browser. Separating read/write avoids
// head-of-line blocking when a browser is slow.

package main

import (
	"encoding/json"

	"github.com/gorilla/websocket"
)

// Client represents a single WebSocket connection.
type Client struct {
	id      string
	socket  *websocket.Conn
	send    chan []byte
	manager *Manager
}

func (c *Client) read() {
	defer func() {
		c.manager.unregister <- c
		c.socket.Close()
	}()

	for {
		_, payload, err := c.socket.ReadMessage()
		if err != nil {
			break
		}
		var env Envelope
		if err := json.Unmarshal(payload, &env); err != nil || env.Event == "" {
			c.manager.log.Debug("dropping malformed frame", "handle", c.id)
			continue
		}
		c.manager.inbound <- inboundEvent{handle: c.id, env: env}
	}
}

func (c *Client) write() {
	defer c.socket.Close()

	for message := range c.send {
		c.socket.WriteMessage(websocket.TextMessage, message)
	}
	c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}
