package live

import (
	"context"
	"sync"
)

// Feed is a live stream of values reloaded on every change of a topic.
type Feed[T any] struct {
	updates chan T
	cancel  context.CancelFunc
	done    chan struct{}

	mu  sync.Mutex
	err error
}

// Watch subscribes to topic and starts delivering values from load: the
// current value first, then a fresh one after each change. If the consumer
// falls behind, intermediate values are dropped and only the latest is kept.
// The feed stops when ctx is cancelled, Cancel is called, or load fails.
func Watch[T any](ctx context.Context, src Subscriber, topic Topic, load func(ctx context.Context) (T, error)) *Feed[T] {
	ctx, cancel := context.WithCancel(ctx)

	f := &Feed[T]{
		updates: make(chan T),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	// Subscribe before the first load so no change between the two is missed.
	sub := src.Subscribe(topic)
	go f.run(ctx, sub, load)

	return f
}

// Updates returns the value channel. It is closed when the feed stops.
func (f *Feed[T]) Updates() <-chan T {
	return f.updates
}

// Err returns the load error that stopped the feed, if any.
func (f *Feed[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Cancel stops the feed and waits for it to finish. No value is delivered
// after Cancel returns.
func (f *Feed[T]) Cancel() {
	f.cancel()
	<-f.done
}

func (f *Feed[T]) run(ctx context.Context, sub *Subscription, load func(ctx context.Context) (T, error)) {
	defer close(f.done)
	defer close(f.updates)
	defer sub.Close()

	pending, err := load(ctx)
	if err != nil {
		f.fail(ctx, err)
		return
	}
	hasPending := true

	for {
		if hasPending {
			select {
			case f.updates <- pending:
				hasPending = false
			case _, ok := <-sub.Changes():
				if !ok {
					return
				}
				if pending, err = load(ctx); err != nil {
					f.fail(ctx, err)
					return
				}
			case <-ctx.Done():
				return
			}
			continue
		}

		select {
		case _, ok := <-sub.Changes():
			if !ok {
				return
			}
			if pending, err = load(ctx); err != nil {
				f.fail(ctx, err)
				return
			}
			hasPending = true
		case <-ctx.Done():
			return
		}
	}
}

func (f *Feed[T]) fail(ctx context.Context, err error) {
	if ctx.Err() != nil {
		return
	}
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}
