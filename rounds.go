// rounds.go
// Round progression and the per-room countdown timer. Every command here
// is host-gated through the one isHost predicate; non-host attempts are
// dropped without a broadcast.
//
// The timer is server-owned: startTimer arms a time.AfterFunc for the
// room and its expiry re-enters the manager loop through the timerFired
// callback. Clients only ever receive the countdown, they cannot end it.

package main

import "time"

// isHost reports whether handle is the host of roomID and still a member.
func (s *Session) isHost(roomID, handle string) bool {
	room := s.rooms[roomID]
	return room != nil && room.Host == handle && room.hasMember(handle)
}

// SetGameRounds fixes the total number of rounds and restarts the count.
func (s *Session) SetGameRounds(handle, roomID string, total int) {
	if !s.isHost(roomID, handle) || total < 0 {
		return
	}
	room := s.rooms[roomID]
	room.TotalRounds = total
	room.CurrentRound = 0
	s.out.ToMany(room.Members, Outbound{Event: EventGameRoundsSet, Data: total})
}

// StartRound advances to the next round, or tells the host privately that
// the game is over. currentRound never passes totalRounds.
func (s *Session) StartRound(handle, roomID string) {
	if !s.isHost(roomID, handle) {
		return
	}
	room := s.rooms[roomID]
	if room.CurrentRound >= room.TotalRounds {
		s.notify(handle, "all rounds completed")
		return
	}
	room.CurrentRound++
	s.out.ToMany(room.Members, Outbound{Event: EventRoundStarted, Data: room.CurrentRound})
}

// EndRound announces the end of the current round, and of the game when
// this was the last one.
func (s *Session) EndRound(handle, roomID string) {
	if !s.isHost(roomID, handle) {
		return
	}
	room := s.rooms[roomID]
	s.out.ToMany(room.Members, Outbound{Event: EventRoundEnded, Data: room.CurrentRound})
	if room.CurrentRound == room.TotalRounds {
		s.out.ToMany(room.Members, Outbound{Event: EventGameEnded})
	}
}

// StartTimer broadcasts the countdown and arms the room's timer. A
// re-arm cancels the pending one, so at most one expiry is in flight per
// room.
func (s *Session) StartTimer(handle, roomID string) {
	if !s.isHost(roomID, handle) {
		return
	}
	room := s.rooms[roomID]
	room.stopTimer()
	s.out.ToMany(room.Members, Outbound{Event: EventStartTimer, Data: s.timerSeconds})
	room.timer = time.AfterFunc(time.Duration(s.timerSeconds)*time.Second, func() {
		s.timerFired(roomID)
	})
}

// TimerEnded finishes the round for one room: announce it, advance the
// round counter, re-arm every member and start a fresh buzz log. Only the
// expiring room is touched. A late expiry for a destroyed room is a no-op.
func (s *Session) TimerEnded(roomID string) {
	room := s.rooms[roomID]
	if room == nil {
		return
	}
	room.timer = nil
	s.out.ToMany(room.Members, Outbound{Event: EventTimerEnded})
	if room.CurrentRound < room.TotalRounds {
		room.CurrentRound++
	}
	s.out.ToMany(room.Members, Outbound{Event: EventUpdateRound, Data: room.CurrentRound})
	room.Fired = make(map[string]bool)
	room.BuzzLog = nil
}
