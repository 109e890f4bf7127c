// protocol.go
// Wire contract for the event channel: every frame is a JSON envelope
// {"event": name, "data": payload}. Inbound payloads are decoded lazily
// per event; outbound payloads are plain structs.

package main

import "encoding/json"

// Client -> server events.
const (
	EventCreateRoom    = "createRoom"
	EventJoinRoom      = "joinRoom"
	EventLeaveRoom     = "leaveRoom"
	EventCloseRoom     = "closeRoom"
	EventMessage       = "message"
	EventBuzzer        = "buzzer"
	EventSetName       = "setName"
	EventSetGameRounds = "setGameRounds"
	EventStartRound    = "startRound"
	EventEndRound      = "endRound"
	EventStartTimer    = "startTimer"
)

// Server -> client events.
const (
	EventRoomCreated          = "roomCreated"
	EventJoinResult           = "joinResult"
	EventCurrentState         = "currentState"
	EventUsers                = "users"
	EventNotification         = "notification"
	EventHostLeaveRoomAttempt = "hostLeaveRoomAttempt"
	EventRoomClosed           = "roomClosed"
	EventGameRoundsSet        = "gameRoundsSet"
	EventRoundStarted         = "roundStarted"
	EventRoundEnded           = "roundEnded"
	EventUpdateRound          = "updateRound"
	EventGameEnded            = "gameEnded"
	EventTimerEnded           = "timerEnded"
)

// Envelope is an inbound frame; Data stays raw until the gateway knows
// which event it is routing.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Outbound is a server frame ready for marshalling.
type Outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type CreateRoomRequest struct {
	BuzzMode string `json:"buzzMode"`
}

type SetGameRoundsRequest struct {
	RoomID string `json:"roomId"`
	Total  int    `json:"total"`
}

// RoomRef carries the room id for the round/timer commands.
type RoomRef struct {
	RoomID string `json:"roomId"`
}

// UserInfo is one entry of the "users" presence list.
type UserInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
}

// CurrentState is the full snapshot a joiner receives.
type CurrentState struct {
	Users        []UserInfo  `json:"users"`
	BuzzerEvents []BuzzEvent `json:"buzzerEvents"`
}
