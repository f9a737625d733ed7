package sse

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestConnection_Send_WritesExactFrame(t *testing.T) {
	req := require.New(t)
	sink := &memorySink{}
	conn := newConnection(uuid.New(), sink, context.Background())

	// When sending a friend request notification
	conn.Send("friendRequest", map[string]string{"action": "received"})

	// Then the sink holds one correctly framed event, already flushed
	req.Equal("event: friendRequest\ndata: {\"action\":\"received\"}\n\n", sink.String())
	req.Equal(1, sink.Flushes())
}

func TestConnection_Send_AfterClose_IsNoop(t *testing.T) {
	req := require.New(t)
	sink := &memorySink{}
	conn := newConnection(uuid.New(), sink, context.Background())

	// Given a closed connection
	conn.Close()

	// When sending
	conn.Send("friends", map[string]string{"action": "added"})

	// Then nothing reaches the sink
	req.Empty(sink.String())
	req.Zero(sink.Flushes())
}

func TestConnection_Send_WriteFailureClosesConnection(t *testing.T) {
	req := require.New(t)
	sink := &memorySink{}
	conn := newConnection(uuid.New(), sink, context.Background())

	// Given a sink whose peer went away
	sink.Fail()

	// When sending
	conn.Send("heartbeat", map[string]string{})

	// Then the connection transitions to closed and stays closed
	req.True(conn.Closed())
	conn.Send("heartbeat", map[string]string{})
	req.Empty(sink.String())
}

func TestConnection_RunHeartbeat_EmitsUntilCancelled(t *testing.T) {
	req := require.New(t)
	sink := &memorySink{}
	ctx, cancel := context.WithCancel(context.Background())
	conn := newConnection(uuid.New(), sink, ctx)

	done := make(chan struct{})
	go func() {
		conn.RunHeartbeat(10 * time.Millisecond)
		close(done)
	}()

	// Then heartbeat frames show up on the sink
	req.Eventually(func() bool {
		return strings.Contains(sink.String(), "event: heartbeat\ndata: {\"timestamp\":")
	}, time.Second, 5*time.Millisecond)

	// When the stream context is cancelled
	cancel()

	// Then the loop terminates
	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("heartbeat loop did not stop after cancellation")
	}
}

func TestConnection_RunHeartbeat_StopsWhenClosed(t *testing.T) {
	req := require.New(t)
	sink := &memorySink{}
	conn := newConnection(uuid.New(), sink, context.Background())

	// Given a connection closed by a registry replacement
	conn.Close()

	done := make(chan struct{})
	go func() {
		conn.RunHeartbeat(5 * time.Millisecond)
		close(done)
	}()

	// Then the loop exits on its first tick without writing
	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("heartbeat loop did not stop on closed connection")
	}
	req.Empty(sink.String())
}

func TestConnection_Send_ConcurrentFramesNeverTorn(t *testing.T) {
	req := require.New(t)
	sink := &memorySink{}
	conn := newConnection(uuid.New(), sink, context.Background())

	// When many goroutines push events at once
	done := make(chan struct{})
	for i := 0; i < 20; i++ {
		go func(n int) {
			conn.Send("liveUsers", map[string]int{"n": n})
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < 20; i++ {
		<-done
	}

	// Then every frame in the sink is complete
	frames := strings.Split(strings.TrimSuffix(sink.String(), "\n\n"), "\n\n")
	req.Len(frames, 20)
	for _, frame := range frames {
		req.True(strings.HasPrefix(frame, "event: liveUsers\ndata: "), fmt.Sprintf("torn frame: %q", frame))
	}
}
