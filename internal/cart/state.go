package cart

import "sync"

// Observer receives every cart written to the container. Observers run on the
// publishing goroutine and must not call back into the engine synchronously.
type Observer func(*Cart)

type subscription struct {
	id uint64
	fn Observer
}

// State holds the current cart and the registry of observers. A nil current
// value means the cart has not been determined yet.
type State struct {
	publishMu sync.Mutex

	mu        sync.Mutex
	current   *Cart
	observers []subscription
	nextID    uint64
}

func NewState() *State {
	return &State{}
}

// Current returns a copy of the current cart, or nil.
func (s *State) Current() *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Subscribe registers fn, delivers the current value to it right away and
// returns a function that removes the registration.
func (s *State) Subscribe(fn Observer) func() {
	if fn == nil {
		return func() {}
	}

	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, subscription{id: id, fn: fn})
	current := s.current.Clone()
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *State) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.observers {
		if sub.id == id {
			s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
			return
		}
	}
}

// Publish replaces the current value and notifies observers in subscription
// order. Concurrent publishers are delivered one at a time.
func (s *State) Publish(cart *Cart) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	s.current = cart.Clone()
	observers := make([]subscription, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, sub := range observers {
		sub.fn(cart.Clone())
	}
}

// Subscribers returns the number of registered observers.
func (s *State) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}
