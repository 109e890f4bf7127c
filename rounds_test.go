package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSetGameRoundsHostOnly(t *testing.T) {
	s, rec := newTestSession()
	code := createTestRoom(t, s, "a", "single")
	joinTestRoom(t, s, "b", code)
	rec.reset()

	s.SetGameRounds("b", code, 5)

	require.Zero(t, s.rooms[code].TotalRounds)
	require.Empty(t, rec.sent)

	s.SetGameRounds("a", code, 5)

	require.Equal(t, 5, s.rooms[code].TotalRounds)
	require.Zero(t, s.rooms[code].CurrentRound)
	set := rec.byEvent(EventGameRoundsSet)
	require.Len(t, set, 1)
	require.Equal(t, 5, set[0].evt.Data)
}

func TestSetGameRoundsRestartsCount(t *testing.T) {
	s, _ := newTestSession()
	code := createTestRoom(t, s, "a", "single")
	s.SetGameRounds("a", code, 3)
	s.StartRound("a", code)
	require.Equal(t, 1, s.rooms[code].CurrentRound)

	s.SetGameRounds("a", code, 2)

	require.Equal(t, 2, s.rooms[code].TotalRounds)
	require.Zero(t, s.rooms[code].CurrentRound)
}

func TestSetGameRoundsRejectsNegative(t *testing.T) {
	s, rec := newTestSession()
	code := createTestRoom(t, s, "a", "single")
	rec.reset()

	s.SetGameRounds("a", code, -1)

	require.Zero(t, s.rooms[code].TotalRounds)
	require.Empty(t, rec.sent)
}

func TestStartRoundStopsAtTotal(t *testing.T) {
	s, rec := newTestSession()
	code := createTestRoom(t, s, "a", "single")
	joinTestRoom(t, s, "b", code)
	s.SetGameRounds("a", code, 2)
	rec.reset()

	s.StartRound("a", code)
	s.StartRound("a", code)

	started := rec.byEvent(EventRoundStarted)
	require.Len(t, started, 2)
	require.Equal(t, 1, started[0].evt.Data)
	require.Equal(t, 2, started[1].evt.Data)
	rec.reset()

	s.StartRound("a", code)

	require.Equal(t, 2, s.rooms[code].CurrentRound)
	require.Empty(t, rec.byEvent(EventRoundStarted))
	notices := rec.byEvent(EventNotification)
	require.Len(t, notices, 1)
	require.Equal(t, "one", notices[0].kind)
	require.Equal(t, "a", notices[0].to)
	require.Equal(t, "all rounds completed", notices[0].evt.Data)
}

func TestStartRoundNonHostIgnored(t *testing.T) {
	s, rec := newTestSession()
	code := createTestRoom(t, s, "a", "single")
	joinTestRoom(t, s, "b", code)
	s.SetGameRounds("a", code, 2)
	rec.reset()

	s.StartRound("b", code)

	require.Zero(t, s.rooms[code].CurrentRound)
	require.Empty(t, rec.sent)
}

func TestEndRoundEmitsGameEndedAtLastRound(t *testing.T) {
	s, rec := newTestSession()
	code := createTestRoom(t, s, "a", "single")
	s.SetGameRounds("a", code, 2)
	s.StartRound("a", code)
	rec.reset()

	s.EndRound("a", code)

	ended := rec.byEvent(EventRoundEnded)
	require.Len(t, ended, 1)
	require.Equal(t, 1, ended[0].evt.Data)
	require.Empty(t, rec.byEvent(EventGameEnded))

	s.StartRound("a", code)
	rec.reset()

	s.EndRound("a", code)

	require.Len(t, rec.byEvent(EventRoundEnded), 1)
	require.Len(t, rec.byEvent(EventGameEnded), 1)
}

func TestStartTimerBroadcastsCountdown(t *testing.T) {
	rec := &recorder{}
	s := newSession(rec, discardLogger(), 30, func(string) {})
	code := createTestRoom(t, s, "a", "single")
	rec.reset()

	s.StartTimer("a", code)

	starts := rec.byEvent(EventStartTimer)
	require.Len(t, starts, 1)
	require.Equal(t, "many", starts[0].kind)
	require.Equal(t, 30, starts[0].evt.Data)
	require.NotNil(t, s.rooms[code].timer)

	s.CloseRoom("a") // stops the pending timer
}

func TestStartTimerNonHostIgnored(t *testing.T) {
	s, rec := newTestSession()
	code := createTestRoom(t, s, "a", "single")
	joinTestRoom(t, s, "b", code)
	rec.reset()

	s.StartTimer("b", code)

	require.Nil(t, s.rooms[code].timer)
	require.Empty(t, rec.sent)
}

func TestTimerExpiryInvokesCallbackWithRoom(t *testing.T) {
	fired := make(chan string, 1)
	rec := &recorder{}
	s := newSession(rec, discardLogger(), 0, func(roomID string) {
		fired <- roomID
	})
	code := createTestRoom(t, s, "a", "single")

	s.StartTimer("a", code)

	select {
	case got := <-fired:
		require.Equal(t, code, got)
	case <-time.After(time.Second):
		t.Fatal("timer callback never fired")
	}
}

func TestTimerEndedAdvancesRoundAndResets(t *testing.T) {
	s, rec := newTestSession()
	code := createTestRoom(t, s, "a", "single")
	joinTestRoom(t, s, "b", code)
	s.SetGameRounds("a", code, 2)
	s.StartRound("a", code)
	s.Buzz("b")
	rec.reset()

	s.TimerEnded(code)

	room := s.rooms[code]
	require.Equal(t, 2, room.CurrentRound)
	require.Empty(t, room.Fired)
	require.Empty(t, room.BuzzLog)

	require.Len(t, rec.byEvent(EventTimerEnded), 1)
	updates := rec.byEvent(EventUpdateRound)
	require.Len(t, updates, 1)
	require.Equal(t, 2, updates[0].evt.Data)
}

func TestTimerEndedClampsAtTotal(t *testing.T) {
	s, rec := newTestSession()
	code := createTestRoom(t, s, "a", "single")
	s.SetGameRounds("a", code, 1)
	s.StartRound("a", code)
	rec.reset()

	s.TimerEnded(code)

	require.Equal(t, 1, s.rooms[code].CurrentRound)
	updates := rec.byEvent(EventUpdateRound)
	require.Len(t, updates, 1)
	require.Equal(t, 1, updates[0].evt.Data)
}

func TestTimerEndedUnknownRoomIsNoOp(t *testing.T) {
	s, rec := newTestSession()

	s.TimerEnded("gone")

	require.Empty(t, rec.sent)
}

func TestRoundCommandsAgainstForeignRoomIgnored(t *testing.T) {
	s, rec := newTestSession()
	createTestRoom(t, s, "a", "single")
	code2 := createTestRoom(t, s, "c", "single")
	rec.reset()

	// a is a host, but not of code2.
	s.SetGameRounds("a", code2, 3)
	s.StartRound("a", code2)
	s.EndRound("a", code2)
	s.StartTimer("a", code2)

	require.Zero(t, s.rooms[code2].TotalRounds)
	require.Empty(t, rec.sent)
}
