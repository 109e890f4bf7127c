// buzzer.go
// Buzz admission. Every user starts a round armed. In multiple mode a
// buzz is always accepted. In single mode an accepted buzz disarms the
// user until the round timer ends; further attempts get a private notice
// and leave no trace in the log or on the wire.

package main

import "time"

// Buzz handles one buzzer press from the given user.
func (s *Session) Buzz(handle string) {
	u := s.users[handle]
	if u == nil {
		return
	}
	room := s.roomOfUser(handle)
	if room == nil {
		s.notify(handle, "join a room to use the buzzer")
		return
	}
	if room.Mode == BuzzSingle && room.Fired[handle] {
		s.notify(handle, "you can only buzz once this round")
		return
	}
	if room.Mode == BuzzSingle {
		room.Fired[handle] = true
	}
	evt := BuzzEvent{Name: u.Name, Timestamp: buzzClock(time.Now())}
	room.BuzzLog = append(room.BuzzLog, evt)
	s.out.ToMany(room.Members, Outbound{Event: EventBuzzer, Data: evt})
}
