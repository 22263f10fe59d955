package app

import (
	"context"
	"sync"

	"flagforge/internal/domain"
)

// SolveFeed is an in-process broadcast hub for solve events. Subscribers get
// their own buffered channel; a slow subscriber loses its oldest event
// instead of blocking the submission path.
type SolveFeed struct {
	mu   sync.Mutex
	subs map[chan domain.SolveEvent]struct{}
}

func NewSolveFeed() *SolveFeed {
	return &SolveFeed{subs: make(map[chan domain.SolveEvent]struct{})}
}

// Subscribe returns a channel of solve events. The caller must invoke the
// returned cancel function to avoid leaks.
func (f *SolveFeed) Subscribe() (<-chan domain.SolveEvent, func()) {
	ch := make(chan domain.SolveEvent, 16)

	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subs[ch]; ok {
			delete(f.subs, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// SolveRecorded implements SolveListener.
func (f *SolveFeed) SolveRecorded(_ context.Context, ev domain.SolveEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- ev:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
}
