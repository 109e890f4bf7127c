// session.go
// SessionManager owns all session state: the identity registry (connected
// users) and the room registry (rooms, membership, round state). Every
// method runs on the manager loop, mutates state, and pushes the resulting
// view through the Sender before returning, so clients always observe
// mutations in the order they happened.
//
// Registry lookups are deliberately permissive: a stale or unknown handle
// is a no-op, never an error. Session state is ephemeral, the worst case
// of ignoring a late command is a client that is simply not updated.

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"
)

// Sender delivers an outbound event to one of the three audiences the
// transport supports. Implemented by Manager; tests substitute a recorder.
type Sender interface {
	ToClient(handle string, evt Outbound)
	ToMany(handles []string, evt Outbound)
	ToAll(evt Outbound)
}

// Session is the server-side session coordinator.
type Session struct {
	users  map[string]*User
	rooms  map[string]*Room
	roomOf map[string]string // user handle -> room code, at most one room per user

	out          Sender
	log          *slog.Logger
	timerSeconds int
	timerFired   func(roomID string) // invoked when a room's round timer expires
}

func newSession(out Sender, log *slog.Logger, timerSeconds int, timerFired func(string)) *Session {
	return &Session{
		users:        make(map[string]*User),
		rooms:        make(map[string]*Room),
		roomOf:       make(map[string]string),
		out:          out,
		log:          log,
		timerSeconds: timerSeconds,
		timerFired:   timerFired,
	}
}

// Connect registers a fresh user under the given connection handle with a
// default display name derived from the handle.
func (s *Session) Connect(handle string) {
	s.users[handle] = &User{Handle: handle, Name: defaultName(handle)}
	s.log.Info("user connected", "handle", handle)
	s.out.ToAll(Outbound{Event: EventUsers, Data: s.lobbyUsers()})
}

// SetName renames a user. Blank-after-trim names are ignored.
func (s *Session) SetName(handle, name string) {
	u := s.users[handle]
	if u == nil {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	u.Name = name
	s.broadcastPresence(handle)
}

// Message fans a chat line out to the sender's room, or to the whole
// lobby when the sender is not in a room.
func (s *Session) Message(handle, text string) {
	u := s.users[handle]
	if u == nil {
		return
	}
	evt := Outbound{Event: EventMessage, Data: fmt.Sprintf("%s: %s", u.Name, text)}
	if room := s.roomOfUser(handle); room != nil {
		s.out.ToMany(room.Members, evt)
		return
	}
	s.out.ToAll(evt)
}

// CreateRoom opens a new room with the caller as host. The buzz mode is
// fixed for the room's lifetime; anything unrecognized means unlimited.
func (s *Session) CreateRoom(handle, mode string) {
	u := s.users[handle]
	if u == nil {
		return
	}
	if s.roomOf[handle] != "" {
		s.notify(handle, "leave your current room before creating another")
		return
	}
	m := BuzzMode(mode)
	if m != BuzzSingle && m != BuzzMultiple {
		m = BuzzMultiple
	}
	code := newRoomCode()
	for s.rooms[code] != nil {
		code = newRoomCode()
	}
	room := newRoom(code, handle, m)
	s.rooms[code] = room
	s.roomOf[handle] = code
	u.IsHost = true

	s.log.Info("room created", "room", code, "host", handle, "mode", m)
	s.out.ToClient(handle, Outbound{Event: EventRoomCreated, Data: code})
	s.out.ToMany(room.Members, Outbound{Event: EventUsers, Data: s.memberList(room)})
}

// JoinRoom adds the caller to an existing room. The outcome is acked to
// the caller as a joinResult event and returned to the gateway. Joining a
// room the caller is already in succeeds without duplicating membership.
func (s *Session) JoinRoom(handle, code string) bool {
	u := s.users[handle]
	if u == nil {
		return false
	}
	room := s.rooms[code]
	if room == nil {
		s.out.ToClient(handle, Outbound{Event: EventJoinResult, Data: false})
		return false
	}
	if cur := s.roomOf[handle]; cur != "" && cur != code {
		s.notify(handle, "leave your current room before joining another")
		s.out.ToClient(handle, Outbound{Event: EventJoinResult, Data: false})
		return false
	}
	if !room.hasMember(handle) {
		room.Members = append(room.Members, handle)
		s.roomOf[handle] = code
	}
	s.out.ToClient(handle, Outbound{Event: EventJoinResult, Data: true})
	s.out.ToClient(handle, Outbound{Event: EventCurrentState, Data: CurrentState{
		Users:        s.memberList(room),
		BuzzerEvents: append([]BuzzEvent{}, room.BuzzLog...),
	}})
	s.out.ToMany(room.Members, Outbound{Event: EventUsers, Data: s.memberList(room)})
	s.out.ToMany(room.Members, Outbound{Event: EventNotification, Data: u.Name + " has joined the room"})
	return true
}

// LeaveRoom removes the caller from their room. Hosts are refused, they
// have to close the room instead.
func (s *Session) LeaveRoom(handle string) {
	room := s.roomOfUser(handle)
	if room == nil {
		return
	}
	if room.Host == handle {
		s.out.ToClient(handle, Outbound{Event: EventHostLeaveRoomAttempt,
			Data: "the host cannot leave the room, close it instead"})
		return
	}
	s.removeFromRoom(room, handle)
}

// CloseRoom tears the caller's room down. Non-host callers are ignored
// without any broadcast.
func (s *Session) CloseRoom(handle string) {
	room := s.roomOfUser(handle)
	if room == nil || room.Host != handle {
		return
	}
	s.out.ToMany(room.Members, Outbound{Event: EventRoomClosed, Data: "the host closed the room"})
	s.detachMembers(room)
	s.destroyRoom(room)
}

// Disconnect is an implicit leave followed by identity removal. A
// disconnecting host vacates without the refusal path: the remaining
// members see the departure, then the room closes under them.
func (s *Session) Disconnect(handle string) {
	if room := s.roomOfUser(handle); room != nil {
		if room.Host == handle {
			room.Members = lo.Without(room.Members, handle)
			delete(room.Fired, handle)
			delete(s.roomOf, handle)
			if len(room.Members) > 0 {
				u := s.users[handle]
				s.out.ToMany(room.Members, Outbound{Event: EventUsers, Data: s.memberList(room)})
				s.out.ToMany(room.Members, Outbound{Event: EventNotification, Data: u.Name + " has left the room"})
				s.out.ToMany(room.Members, Outbound{Event: EventRoomClosed, Data: "the host disconnected, the room is closed"})
				s.detachMembers(room)
			}
			s.destroyRoom(room)
		} else {
			s.removeFromRoom(room, handle)
		}
		delete(s.users, handle)
		s.log.Info("user disconnected", "handle", handle)
		return
	}
	delete(s.users, handle)
	s.log.Info("user disconnected", "handle", handle)
	s.out.ToAll(Outbound{Event: EventUsers, Data: s.lobbyUsers()})
}

// removeFromRoom drops a non-host member, broadcasts the updated
// membership and destroys the room if it is now empty.
func (s *Session) removeFromRoom(room *Room, handle string) {
	u := s.users[handle]
	room.Members = lo.Without(room.Members, handle)
	delete(room.Fired, handle)
	delete(s.roomOf, handle)
	if len(room.Members) == 0 {
		s.destroyRoom(room)
		return
	}
	s.out.ToMany(room.Members, Outbound{Event: EventUsers, Data: s.memberList(room)})
	s.out.ToMany(room.Members, Outbound{Event: EventNotification, Data: u.Name + " has left the room"})
}

// detachMembers clears every member's room association and host flag.
func (s *Session) detachMembers(room *Room) {
	for _, m := range room.Members {
		delete(s.roomOf, m)
		if u := s.users[m]; u != nil {
			u.IsHost = false
		}
	}
}

// destroyRoom drops the room and all auxiliary state in one step. The
// pending round timer, if any, is cancelled so it cannot fire for a dead
// room.
func (s *Session) destroyRoom(room *Room) {
	room.stopTimer()
	delete(s.rooms, room.Code)
	s.log.Info("room destroyed", "room", room.Code)
}

func (s *Session) roomOfUser(handle string) *Room {
	code := s.roomOf[handle]
	if code == "" {
		return nil
	}
	return s.rooms[code]
}

func (s *Session) notify(handle, text string) {
	s.out.ToClient(handle, Outbound{Event: EventNotification, Data: text})
}

// broadcastPresence pushes the relevant users list: room-scoped for room
// members, lobby-wide otherwise.
func (s *Session) broadcastPresence(handle string) {
	if room := s.roomOfUser(handle); room != nil {
		s.out.ToMany(room.Members, Outbound{Event: EventUsers, Data: s.memberList(room)})
		return
	}
	s.out.ToAll(Outbound{Event: EventUsers, Data: s.lobbyUsers()})
}

// memberList projects a room's members, in join order, into the wire form.
func (s *Session) memberList(room *Room) []UserInfo {
	return lo.FilterMap(room.Members, func(handle string, _ int) (UserInfo, bool) {
		u := s.users[handle]
		if u == nil {
			return UserInfo{}, false
		}
		return UserInfo{ID: u.Handle, Name: u.Name, IsHost: u.IsHost}, true
	})
}

// lobbyUsers lists connected users that are not in any room. Room
// membership never leaks outside the room.
func (s *Session) lobbyUsers() []UserInfo {
	list := make([]UserInfo, 0, len(s.users))
	for handle, u := range s.users {
		if s.roomOf[handle] != "" {
			continue
		}
		list = append(list, UserInfo{ID: u.Handle, Name: u.Name, IsHost: u.IsHost})
	}
	return list
}

func defaultName(handle string) string {
	tag := handle
	if len(tag) > 2 {
		tag = tag[:2]
	}
	return "User" + tag
}
