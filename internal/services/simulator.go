package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

type PendingPolicy int

const (
	// PolicyLastWriteWins supersedes the pending operation with the newer one.
	PolicyLastWriteWins PendingPolicy = iota
	// PolicyRejectWhilePending fails new submissions with ErrBusy.
	PolicyRejectWhilePending
)

func ParsePendingPolicy(raw string) (PendingPolicy, error) {
	switch raw {
	case "", "last-write-wins":
		return PolicyLastWriteWins, nil
	case "reject-while-pending":
		return PolicyRejectWhilePending, nil
	default:
		return 0, fmt.Errorf("unknown pending policy %q", raw)
	}
}

type SimulatorConfig struct {
	Delay       time.Duration
	FailureRate float64
	Policy      PendingPolicy
	// Rand drives failure injection. Defaults to a time-seeded source.
	Rand *rand.Rand
}

// Simulator stands in for a remote API call. It owns a single pending slot:
// an operation commits only if it still holds the slot when its delay ends.
type Simulator struct {
	mu          sync.Mutex
	delay       time.Duration
	failureRate float64
	policy      PendingPolicy
	rand        *rand.Rand
	pending     *Operation
}

func NewSimulator(cfg SimulatorConfig) *Simulator {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{
		delay:       cfg.Delay,
		failureRate: cfg.FailureRate,
		policy:      cfg.Policy,
		rand:        rng,
	}
}

// Operation is the future returned by Submit.
type Operation struct {
	once sync.Once
	done chan struct{}
	err  error
}

func newOperation() *Operation {
	return &Operation{done: make(chan struct{})}
}

func (o *Operation) finish(err error) {
	o.once.Do(func() {
		o.err = err
		close(o.done)
	})
}

func (o *Operation) Done() <-chan struct{} {
	return o.done
}

// Err is valid once Done is closed.
func (o *Operation) Err() error {
	select {
	case <-o.done:
		return o.err
	default:
		return nil
	}
}

// Wait blocks until the operation settles and returns its outcome. Canceling
// the context given to Submit settles an operation that has not started
// committing; once the commit runs, its result stands.
func (o *Operation) Wait() error {
	<-o.done
	return o.err
}

// Submit schedules commit to run after the configured delay.
func (s *Simulator) Submit(ctx context.Context, commit func() error) *Operation {
	op := newOperation()

	s.mu.Lock()
	if s.pending != nil {
		if s.policy == PolicyRejectWhilePending {
			s.mu.Unlock()
			op.finish(ErrBusy)
			return op
		}
		s.pending.finish(ErrSuperseded)
	}
	s.pending = op
	s.mu.Unlock()

	go s.run(ctx, op, commit)
	return op
}

// Pending reports whether an operation currently holds the slot.
func (s *Simulator) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

func (s *Simulator) run(ctx context.Context, op *Operation, commit func() error) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-op.done:
		return
	case <-ctx.Done():
		s.release(op, ctx.Err())
		return
	case <-timer.C:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != op {
		return
	}
	s.pending = nil

	if s.failureRate > 0 && s.rand.Float64() < s.failureRate {
		op.finish(ErrSimulatedFailure)
		return
	}
	op.finish(commit())
}

func (s *Simulator) release(op *Operation, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == op {
		s.pending = nil
	}
	op.finish(err)
}
