package catalog

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"modaai/internal/models"
)

// Subscription delivers full ordered catalog snapshots whenever the products
// collection changes. Close is synchronous: once it returns, the change stream
// cursor is released and no further snapshots are delivered.
type Subscription struct {
	snapshots chan []models.Product
	cancel    context.CancelFunc
	done      chan struct{}
}

func (sub *Subscription) Snapshots() <-chan []models.Product {
	return sub.snapshots
}

func (sub *Subscription) Close() {
	sub.cancel()
	<-sub.done
}

// Watch opens a change stream on the products collection and re-lists the
// catalog after every event, pushing the fresh snapshot to the subscriber.
// The initial snapshot is delivered before Watch returns so a new subscriber
// never starts blank. A slow subscriber skips intermediate snapshots rather
// than blocking the stream.
func (s *Store) Watch(ctx context.Context) (*Subscription, error) {
	streamCtx, cancel := context.WithCancel(ctx)

	stream, err := s.products().Watch(streamCtx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, err
	}

	initial, err := s.List(streamCtx)
	if err != nil {
		_ = stream.Close(context.Background())
		cancel()
		return nil, err
	}

	sub := &Subscription{
		snapshots: make(chan []models.Product, 1),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	sub.push(initial)

	go func() {
		defer close(sub.done)
		defer close(sub.snapshots)
		defer stream.Close(context.Background())

		for stream.Next(streamCtx) {
			snapshot, err := s.List(streamCtx)
			if err != nil {
				if streamCtx.Err() != nil {
					return
				}
				log.Error().Err(err).Msg("catalog watch: re-list failed")
				continue
			}
			sub.push(snapshot)
		}
		if err := stream.Err(); err != nil && streamCtx.Err() == nil {
			log.Error().Err(err).Msg("catalog watch: change stream ended")
		}
	}()

	return sub, nil
}

func (sub *Subscription) push(snapshot []models.Product) {
	// Keep only the latest snapshot when the consumer lags.
	for {
		select {
		case sub.snapshots <- snapshot:
			return
		default:
			select {
			case <-sub.snapshots:
			default:
			}
		}
	}
}
