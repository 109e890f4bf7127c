package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// sent is one captured dispatch with its audience.
type sent struct {
	kind    string // "one", "many" or "all"
	to      string
	targets []string
	evt     Outbound
}

// recorder is a Sender that captures every dispatch in order.
type recorder struct {
	sent []sent
}

func (r *recorder) ToClient(handle string, evt Outbound) {
	r.sent = append(r.sent, sent{kind: "one", to: handle, evt: evt})
}

func (r *recorder) ToMany(handles []string, evt Outbound) {
	targets := append([]string{}, handles...)
	r.sent = append(r.sent, sent{kind: "many", targets: targets, evt: evt})
}

func (r *recorder) ToAll(evt Outbound) {
	r.sent = append(r.sent, sent{kind: "all", evt: evt})
}

func (r *recorder) reset() {
	r.sent = nil
}

// byEvent returns every captured dispatch of the given event, in order.
func (r *recorder) byEvent(name string) []sent {
	var out []sent
	for _, s := range r.sent {
		if s.evt.Event == name {
			out = append(out, s)
		}
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSession() (*Session, *recorder) {
	rec := &recorder{}
	return newSession(rec, discardLogger(), 30, func(string) {}), rec
}

// createTestRoom connects the handle and creates a room, returning its code.
func createTestRoom(t *testing.T, s *Session, handle, mode string) string {
	t.Helper()
	s.Connect(handle)
	s.CreateRoom(handle, mode)
	code := s.roomOf[handle]
	require.NotEmpty(t, code)
	return code
}

func joinTestRoom(t *testing.T, s *Session, handle, code string) {
	t.Helper()
	s.Connect(handle)
	require.True(t, s.JoinRoom(handle, code))
}
