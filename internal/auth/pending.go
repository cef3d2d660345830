// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import "context"

// Pending is the result of one Login or Logout call. Every call gets its own
// Pending, so overlapping calls never settle each other's results.
type Pending struct {
	done chan struct{}
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) settle(err error) {
	p.err = err
	close(p.done)
}

// Done is closed once the call has settled.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Err returns the call's error. Only meaningful after Done is closed.
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Wait blocks until the call settles or ctx ends. Giving up on the wait does
// not cancel the call.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
