// Package channels wraps channel sends that must never block forever or
// panic on a closed channel. Background workers use it to report to UI
// loops that may already have gone away.
package channels

import (
	"errors"
	"time"
)

var (
	// ErrChannelClosed is returned when sending on a closed channel.
	ErrChannelClosed = errors.New("channel closed")
	// ErrChannelTimeout is returned when no receiver took the value in time.
	ErrChannelTimeout = errors.New("send timeout")
	// ErrChannelFull is returned by SendNonBlock when the send would block.
	ErrChannelFull = errors.New("channel full")
)

// recoverClosed turns the runtime panic of a send on a closed channel into
// ErrChannelClosed.
func recoverClosed(err *error) {
	if r := recover(); r != nil {
		*err = ErrChannelClosed
	}
}

// SendNonBlock delivers msg only if a receiver or buffer slot is ready now.
func SendNonBlock[T any](ch chan<- T, msg T) (err error) {
	defer recoverClosed(&err)

	select {
	case ch <- msg:
		return nil
	default:
		return ErrChannelFull
	}
}

// SendWithTimeout waits up to timeout for the send to go through.
func SendWithTimeout[T any](ch chan<- T, msg T, timeout time.Duration) (err error) {
	defer recoverClosed(&err)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ch <- msg:
		return nil
	case <-timer.C:
		return ErrChannelTimeout
	}
}
