package seqid

import (
	"context"
	"fmt"
	"time"
)

// Sequencer answers the only question the assigner asks of storage: the
// highest identifier of a kind already issued under a day prefix. It returns
// "" when none has been issued yet.
type Sequencer interface {
	LastIssued(ctx context.Context, kind Kind, prefix string) (string, error)
}

// Entity is an aggregate that receives a sequential identifier on creation.
type Entity interface {
	SeqKind() Kind
	IsNew() bool
	SetSeqID(id string)
}

// Assigner computes the next identifier for a kind. It only reads from the
// Sequencer; the caller persists the identifier together with the entity.
type Assigner struct {
	seq Sequencer
	now func() time.Time
}

// Option configures an Assigner.
type Option func(*Assigner)

// WithClock overrides the clock used to derive the day prefix.
func WithClock(now func() time.Time) Option {
	return func(a *Assigner) {
		a.now = now
	}
}

// NewAssigner creates an Assigner backed by seq.
func NewAssigner(seq Sequencer, opts ...Option) *Assigner {
	a := &Assigner{
		seq: seq,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Next returns the identifier the next entity of kind created today should
// carry. Concurrent callers may receive the same value.
func (a *Assigner) Next(ctx context.Context, kind Kind) (string, error) {
	prefix := Prefix(a.now())

	last, err := a.seq.LastIssued(ctx, kind, prefix)
	if err != nil {
		return "", fmt.Errorf("last issued %s: %w", kind.Field, err)
	}
	if last == "" {
		return Format(prefix, 1), nil
	}

	lastPrefix, n, err := Parse(last)
	if err != nil {
		malformedTotal.WithLabelValues(kind.Name).Inc()
		return "", err
	}
	if lastPrefix != prefix {
		malformedTotal.WithLabelValues(kind.Name).Inc()
		return "", fmt.Errorf("%w: %q does not carry prefix %s", ErrMalformed, last, prefix)
	}
	return Format(prefix, n+1), nil
}

// Stamp attaches the next identifier to e. Entities that are already
// persisted are left untouched, so calling Stamp on an update path never
// changes an identifier.
func (a *Assigner) Stamp(ctx context.Context, e Entity) error {
	if !e.IsNew() {
		return nil
	}

	kind := e.SeqKind()
	id, err := a.Next(ctx, kind)
	if err != nil {
		return err
	}

	e.SetSeqID(id)
	assignedTotal.WithLabelValues(kind.Name).Inc()
	return nil
}
