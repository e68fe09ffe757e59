package websocket

import (
	"testing"
	"time"
)

func TestHubBroadcastReachesClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{ID: "c1", send: make(chan Event, 4)}
	hub.register <- client

	// Wait for the register to be processed
	deadline := time.After(time.Second)
	for hub.ClientCount() != 1 {
		select {
		case <-deadline:
			t.Fatal("client was not registered")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	hub.Broadcast(Event{Type: EventReelLiked, ReelID: "507f1f77bcf86cd799439011"})

	select {
	case event := <-client.send:
		if event.Type != EventReelLiked {
			t.Errorf("event type = %q, want %q", event.Type, EventReelLiked)
		}
		if event.ReelID != "507f1f77bcf86cd799439011" {
			t.Errorf("reel id = %q", event.ReelID)
		}
	case <-time.After(time.Second):
		t.Fatal("broadcast did not reach the client")
	}

	hub.unregister <- client

	deadline = time.After(time.Second)
	for hub.ClientCount() != 0 {
		select {
		case <-deadline:
			t.Fatal("client was not unregistered")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	// The hub closes the send channel on unregister
	if _, open := <-client.send; open {
		t.Error("send channel should be closed after unregister")
	}
}

func TestBroadcastNeverBlocks(t *testing.T) {
	hub := NewHub() // Run not started, nothing drains the channel

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			hub.Broadcast(Event{Type: EventReelCreated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked the caller")
	}
}

func TestSlowConsumerDropsEvents(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Full send buffer simulates a stalled connection
	client := &Client{ID: "slow", send: make(chan Event)}
	hub.register <- client

	deadline := time.After(time.Second)
	for hub.ClientCount() != 1 {
		select {
		case <-deadline:
			t.Fatal("client was not registered")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	// Must not wedge the hub even though the client never reads
	for i := 0; i < 100; i++ {
		hub.Broadcast(Event{Type: EventReelCommented})
	}

	// The hub still responds to registrations
	second := &Client{ID: "c2", send: make(chan Event, 1)}
	hub.register <- second

	deadline = time.After(time.Second)
	for hub.ClientCount() != 2 {
		select {
		case <-deadline:
			t.Fatal("hub wedged by slow consumer")
		default:
			time.Sleep(time.Millisecond)
		}
	}
}
