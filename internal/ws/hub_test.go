package ws_test

import (
	"encoding/json"
	"testing"
	"time"

	"ai-worker-console/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_ForwardQueuesJSON(t *testing.T) {
	hub := ws.NewHub()

	hub.Forward(ws.NewEvent(ws.EntityAgent, ws.ActionToggled, "a1", "tester", "tester set agent a1"))

	require.Len(t, hub.Broadcast, 1)
	var got ws.Event
	require.NoError(t, json.Unmarshal(<-hub.Broadcast, &got))
	assert.Equal(t, "record_change", got.Type)
	assert.Equal(t, ws.EntityAgent, got.Entity)
	assert.Equal(t, ws.ActionToggled, got.Action)
	assert.Equal(t, "a1", got.ID)
	assert.Equal(t, "tester", got.Actor)
}

func TestHub_ForwardDropsWhenQueueFull(t *testing.T) {
	hub := ws.NewHub()
	for i := 0; i < cap(hub.Broadcast); i++ {
		hub.Forward(ws.NewEvent(ws.EntityUser, ws.ActionUpdated, "u1", "tester", ""))
	}

	done := make(chan struct{})
	go func() {
		hub.Forward(ws.NewEvent(ws.EntityUser, ws.ActionDeleted, "u2", "tester", ""))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Forward blocked on a full queue")
	}
	assert.Len(t, hub.Broadcast, cap(hub.Broadcast))

	var first ws.Event
	require.NoError(t, json.Unmarshal(<-hub.Broadcast, &first))
	assert.Equal(t, "u1", first.ID)
}

func TestHub_RunDrainsBroadcastUntilStopped(t *testing.T) {
	hub := ws.NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run()
		close(stopped)
	}()

	hub.Forward(ws.NewEvent(ws.EntitySystem, ws.ActionCreated, "s9", "tester", ""))
	assert.Eventually(t, func() bool { return len(hub.Broadcast) == 0 }, time.Second, 10*time.Millisecond)

	hub.Stop()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestHub_JoinAndLeaveReturnAfterStop(t *testing.T) {
	hub := ws.NewHub()
	hub.Stop()

	done := make(chan bool)
	go func() {
		joined := hub.Join(nil)
		hub.Leave(nil)
		done <- joined
	}()

	select {
	case joined := <-done:
		assert.False(t, joined)
	case <-time.After(time.Second):
		t.Fatal("Join or Leave blocked on a stopped hub")
	}
}
