package catalog

import (
	"context"
	"testing"
	"time"

	"modaai/internal/models"
)

func TestPushKeepsOnlyNewestSnapshotForLaggingConsumer(t *testing.T) {
	sub := &Subscription{snapshots: make(chan []models.Product, 1)}

	sub.push([]models.Product{{Name: "first"}})
	sub.push([]models.Product{{Name: "second"}})
	sub.push([]models.Product{{Name: "third"}})

	select {
	case got := <-sub.snapshots:
		if len(got) != 1 || got[0].Name != "third" {
			t.Fatalf("expected only the newest snapshot, got %+v", got)
		}
	default:
		t.Fatal("expected a snapshot to be waiting")
	}

	select {
	case extra := <-sub.snapshots:
		t.Fatalf("stale snapshot survived: %+v", extra)
	default:
	}
}

func TestCloseWaitsForDeliveryGoroutine(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sub := &Subscription{
		snapshots: make(chan []models.Product, 1),
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	// Mirrors the delivery loop in Watch: keep pushing snapshots until the
	// subscription context is cancelled, then release the channel.
	go func() {
		defer close(sub.done)
		defer close(sub.snapshots)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				sub.push([]models.Product{{Name: "tick"}})
			}
		}
	}()

	closed := make(chan struct{})
	go func() {
		sub.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return")
	}

	select {
	case <-sub.done:
	default:
		t.Fatal("Close returned before the delivery goroutine exited")
	}

	// Whatever was buffered drains, then the channel reports closed.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, open := <-sub.Snapshots():
			if !open {
				return
			}
		case <-deadline:
			t.Fatal("snapshot channel was never closed")
		}
	}
}
