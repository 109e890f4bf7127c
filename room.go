// room.go
// Session state records: users, rooms and the per-round buzz bookkeeping.
// All mutation happens on the manager loop, so none of this is locked.

package main

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// BuzzMode is the per-room buzz policy, fixed at creation.
type BuzzMode string

const (
	BuzzSingle   BuzzMode = "single"   // one accepted buzz per user per round
	BuzzMultiple BuzzMode = "multiple" // every buzz is accepted
)

// User is one connected client.
type User struct {
	Handle string
	Name   string
	IsHost bool
}

// BuzzEvent is one accepted buzzer press, immutable once logged.
type BuzzEvent struct {
	Name      string `json:"name"`
	Timestamp string `json:"timestamp"`
}

// Room groups members, buzz configuration and round state. Members keeps
// join order and never holds duplicates. Fired tracks who already buzzed
// this round; it only gates anything in single mode.
type Room struct {
	Code         string
	Members      []string
	Host         string
	Mode         BuzzMode
	TotalRounds  int
	CurrentRound int
	BuzzLog      []BuzzEvent
	Fired        map[string]bool

	timer *time.Timer
}

func newRoom(code, host string, mode BuzzMode) *Room {
	return &Room{
		Code:    code,
		Members: []string{host},
		Host:    host,
		Mode:    mode,
		Fired:   make(map[string]bool),
	}
}

func (r *Room) hasMember(handle string) bool {
	for _, m := range r.Members {
		if m == handle {
			return true
		}
	}
	return false
}

// stopTimer cancels a pending round timer, if any.
func (r *Room) stopTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

const roomCodeBytes = 6

// newRoomCode returns a fresh random room code. 48 bits of entropy keeps
// the collision probability negligible for any realistic room count.
func newRoomCode() string {
	buf := make([]byte, roomCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	return hex.EncodeToString(buf)
}

// buzzClock formats timestamps the way the buzz log displays them.
func buzzClock(t time.Time) string {
	return t.Format("15:04:05")
}
