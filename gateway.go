// gateway.go
// Routes decoded inbound envelopes to the session operation that owns
// them. Malformed payloads and unknown events are dropped, a client is
// never torn down for sending garbage.

package main

import "encoding/json"

func (m *Manager) handleEvent(handle string, env Envelope) {
	switch env.Event {
	case EventSetName:
		var name string
		if decodePayload(env.Data, &name) {
			m.session.SetName(handle, name)
		}

	case EventMessage:
		var text string
		if decodePayload(env.Data, &text) {
			m.session.Message(handle, text)
		}

	case EventCreateRoom:
		var req CreateRoomRequest
		decodePayload(env.Data, &req) // absent mode falls back to multiple
		m.session.CreateRoom(handle, req.BuzzMode)

	case EventJoinRoom:
		var code string
		if decodePayload(env.Data, &code) {
			m.session.JoinRoom(handle, code)
		}

	case EventLeaveRoom:
		m.session.LeaveRoom(handle)

	case EventCloseRoom:
		m.session.CloseRoom(handle)

	case EventBuzzer:
		m.session.Buzz(handle)

	case EventSetGameRounds:
		var req SetGameRoundsRequest
		if decodePayload(env.Data, &req) {
			m.session.SetGameRounds(handle, req.RoomID, req.Total)
		}

	case EventStartRound:
		var ref RoomRef
		if decodePayload(env.Data, &ref) {
			m.session.StartRound(handle, ref.RoomID)
		}

	case EventEndRound:
		var ref RoomRef
		if decodePayload(env.Data, &ref) {
			m.session.EndRound(handle, ref.RoomID)
		}

	case EventStartTimer:
		var ref RoomRef
		if decodePayload(env.Data, &ref) {
			m.session.StartTimer(handle, ref.RoomID)
		}

	case EventTimerEnded:
		// The server owns the round timer, a client cannot end it.
		m.log.Debug("ignoring client timer event", "handle", handle)

	default:
		m.log.Debug("unknown event", "event", env.Event, "handle", handle)
	}
}

func decodePayload(raw json.RawMessage, v any) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}
