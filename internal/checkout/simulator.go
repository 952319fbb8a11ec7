package checkout

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is one of the three linear checkout states. There is no failure
// state: the simulated gateway always approves.
type State string

const (
	StatePayment    State = "payment"
	StateProcessing State = "processing"
	StateSuccess    State = "success"
)

var (
	ErrNotFound       = errors.New("checkout not found")
	ErrAlreadyStarted = errors.New("payment already started")
)

// Checkout is one simulated payment flow. Total is frozen at creation from
// the cart of the owning session.
type Checkout struct {
	ID        string    `json:"id"`
	Session   string    `json:"-"`
	State     State     `json:"state"`
	Total     int64     `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}

// Simulator drives checkouts through payment -> processing -> success. The
// only user-triggered transition is Pay; success is reached unconditionally
// after the configured delay, standing in for a real gateway round trip.
// Completed checkouts are kept around for the retention window so the client
// can still read the success state, then evicted.
type Simulator struct {
	mu        sync.Mutex
	delay     time.Duration
	retention time.Duration
	byID      map[string]*Checkout
}

func NewSimulator(delay, retention time.Duration) *Simulator {
	return &Simulator{delay: delay, retention: retention, byID: make(map[string]*Checkout)}
}

// Begin opens a checkout in the payment-selection state.
func (s *Simulator) Begin(session string, total int64) Checkout {
	co := &Checkout{
		ID:        uuid.NewString(),
		Session:   session,
		State:     StatePayment,
		Total:     total,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.byID[co.ID] = co
	s.mu.Unlock()

	return *co
}

// Pay moves the checkout into processing and schedules the unconditional
// success transition. onSuccess runs exactly once, when success is reached;
// the caller uses it to empty the owning session's cart. Only the session
// that opened the checkout can pay it; any other session sees ErrNotFound.
func (s *Simulator) Pay(id, session string, onSuccess func()) (Checkout, error) {
	s.mu.Lock()
	co, ok := s.byID[id]
	if !ok || co.Session != session {
		s.mu.Unlock()
		return Checkout{}, ErrNotFound
	}
	if co.State != StatePayment {
		state := *co
		s.mu.Unlock()
		return state, ErrAlreadyStarted
	}
	co.State = StateProcessing
	state := *co
	s.mu.Unlock()

	time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		co.State = StateSuccess
		s.mu.Unlock()
		if onSuccess != nil {
			onSuccess()
		}
		time.AfterFunc(s.retention, func() {
			s.mu.Lock()
			delete(s.byID, co.ID)
			s.mu.Unlock()
		})
	})

	return state, nil
}

func (s *Simulator) Get(id, session string) (Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	co, ok := s.byID[id]
	if !ok || co.Session != session {
		return Checkout{}, ErrNotFound
	}
	return *co, nil
}
