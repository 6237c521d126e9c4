package dashboard

import (
	"context"
	"fmt"
)

// Notifier surfaces the outcome of a mutation to the operator
type Notifier interface {
	Success(message string)
	Failure(message string, err error)
}

// Mutation describes an optimistic change of one record
type Mutation[T any] struct {
	ID   int64
	Name string
	// Apply returns the locally patched copy shown before the remote call resolves.
	Apply func(T) T
	// Remote performs the change. A non-nil result is the authoritative record.
	Remote func(ctx context.Context) (*T, error)
}

// Reconciler applies changes to every replica at once, calls the remote
// side and then either commits the server's version or restores each
// replica to the state captured before the change.
type Reconciler[T any] struct {
	replicas []*Collection[T]
	notifier Notifier
	logger   Logger
}

// NewReconciler keeps the given replicas (list, day detail, selection...) in sync
func NewReconciler[T any](notifier Notifier, logger Logger, replicas ...*Collection[T]) *Reconciler[T] {
	return &Reconciler[T]{
		replicas: replicas,
		notifier: notifier,
		logger:   logger,
	}
}

// Mutate runs m optimistically
func (r *Reconciler[T]) Mutate(ctx context.Context, m Mutation[T]) error {
	restore := r.capture(m.ID)

	for _, c := range r.replicas {
		c.Update(m.ID, m.Apply)
	}

	result, err := m.Remote(ctx)
	if err != nil {
		restore()
		r.logger.Error("%s: id=%d reverted: %v", m.Name, m.ID, err)
		r.notifier.Failure(fmt.Sprintf("%s failed", m.Name), err)
		return err
	}

	if result != nil {
		authoritative := *result
		for _, c := range r.replicas {
			c.Update(m.ID, func(T) T { return authoritative })
		}
	}

	r.notifier.Success(fmt.Sprintf("%s done", m.Name))
	return nil
}

// Delete removes the record everywhere, then calls remote; on failure the
// record reappears at its previous position.
func (r *Reconciler[T]) Delete(ctx context.Context, id int64, name string, remote func(ctx context.Context) error) error {
	restore := r.capture(id)

	for _, c := range r.replicas {
		c.Remove(id)
	}

	if err := remote(ctx); err != nil {
		restore()
		r.logger.Error("%s: id=%d restored: %v", name, id, err)
		r.notifier.Failure(fmt.Sprintf("%s failed", name), err)
		return err
	}

	r.notifier.Success(fmt.Sprintf("%s done", name))
	return nil
}

// Create calls remote and adds the created record to the first replica.
// Nothing is shown before the server assigns an ID.
func (r *Reconciler[T]) Create(ctx context.Context, name string, remote func(ctx context.Context) (T, error)) (T, error) {
	created, err := remote(ctx)
	if err != nil {
		r.logger.Error("%s: %v", name, err)
		r.notifier.Failure(fmt.Sprintf("%s failed", name), err)
		var zero T
		return zero, err
	}

	if len(r.replicas) > 0 {
		r.replicas[0].Upsert(created)
	}
	r.notifier.Success(fmt.Sprintf("%s done", name))
	return created, nil
}

func (r *Reconciler[T]) capture(id int64) func() {
	restores := make([]func(), 0, len(r.replicas))
	for _, c := range r.replicas {
		restores = append(restores, c.capture(id))
	}
	return func() {
		for _, restore := range restores {
			restore()
		}
	}
}
