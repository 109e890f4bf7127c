package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRoomCode(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		code := newRoomCode()
		require.Len(t, code, roomCodeBytes*2)
		require.False(t, seen[code])
		seen[code] = true
	}
}

func TestHasMember(t *testing.T) {
	room := newRoom("c0ffee", "a", BuzzSingle)

	require.True(t, room.hasMember("a"))
	require.False(t, room.hasMember("b"))
}

func TestDefaultName(t *testing.T) {
	require.Equal(t, "User1f", defaultName("1f2e3d"))
	require.Equal(t, "Userx", defaultName("x"))
}
