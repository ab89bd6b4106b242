// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

// ChannelInput is the reading end of a channel.
//
// Read parks until a value is available. StartRead/EndRead perform an
// extended rendezvous: the value is taken by StartRead but the writer
// stays synchronized until EndRead, so a forwarding process composes
// through pipelines without double-buffering. TryRead never parks.
//
// Read, StartRead and TryRead return a [*PoisonError] once the channel's
// poison strength exceeds the end's read immunity. EndRead completes
// normally even if the channel was poisoned inside the extended region.
type ChannelInput[T any] interface {
	Read() (T, error)
	StartRead() (T, error)
	EndRead()
	TryRead() (T, error)
	Poison(strength int)
}

// AltingChannelInput is a reading end that can additionally be mounted
// as a [Guard] in an [Alternative]. Only non-shared read ends are
// alting: a shared read end would let the alternative back off a
// commitment another reader depends on.
type AltingChannelInput[T any] interface {
	ChannelInput[T]
	Guard

	// Pending reports whether Read would return without parking.
	Pending() bool
}

// SharedChannelInput is the reading end of a channel whose read side is
// shared by several processes. It deliberately carries no guard
// capability; competing readers are served in FIFO order by the end's
// [Mutex].
type SharedChannelInput[T any] interface {
	ChannelInput[T]
}

// ChannelOutput is the writing end of a channel.
//
// On an unbuffered channel Write returns only after the matching read
// (or EndRead) completes; on a buffered channel it returns once the
// store accepts the value. TryWrite never parks.
type ChannelOutput[T any] interface {
	Write(v T) error
	TryWrite(v T) error
	Poison(strength int)
}

// SharedChannelOutput is the writing end of a channel whose write side
// is shared by several processes, serialized in FIFO order by the end's
// [Mutex].
type SharedChannelOutput[T any] interface {
	ChannelOutput[T]
}

// config carries construction options for the channel kernel.
type config[T any] struct {
	store         Store[T]
	readImmunity  int
	writeImmunity int
	obs           Observer
}

// Option configures a channel under construction.
type Option[T any] func(*config[T])

// Buffered interposes a clone of the given store prototype, making the
// channel buffered. The store must be non-nil and must not be a
// [ZeroBuffer] (the unbuffered kernel already provides rendezvous
// semantics, which no store can).
func Buffered[T any](store Store[T]) Option[T] {
	if store == nil {
		panic("csp: nil store given to Buffered")
	}
	if _, ok := any(store).(interface{ zeroStore() }); ok {
		panic("csp: zero buffer cannot back a buffered channel; use an unbuffered channel")
	}
	return func(cfg *config[T]) {
		cfg.store = store
	}
}

// ReadImmunity sets the read end's poison immunity: poison at strength
// less than or equal to n is ignored by read operations.
func ReadImmunity[T any](n int) Option[T] {
	if n < 0 {
		panic("csp: immunity must not be negative")
	}
	return func(cfg *config[T]) {
		cfg.readImmunity = n
	}
}

// WriteImmunity sets the write end's poison immunity: poison at strength
// less than or equal to n is ignored by write operations.
func WriteImmunity[T any](n int) Option[T] {
	if n < 0 {
		panic("csp: immunity must not be negative")
	}
	return func(cfg *config[T]) {
		cfg.writeImmunity = n
	}
}

// WithObserver attaches an [Observer] to the channel.
func WithObserver[T any](obs Observer) Option[T] {
	return func(cfg *config[T]) {
		cfg.obs = obs
	}
}

func applyOptions[T any](opts []Option[T]) config[T] {
	var cfg config[T]
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// One2One is a channel with one reader and one writer process.
// Its read end may be mounted in an [Alternative].
type One2One[T any] struct {
	ch channel[T]
}

// NewOne2One returns a channel for exactly one reader and one writer.
func NewOne2One[T any](opts ...Option[T]) *One2One[T] {
	c := &One2One[T]{}
	c.ch.init(applyOptions(opts), false, false)
	return c
}

// In returns the reading end.
func (c *One2One[T]) In() AltingChannelInput[T] { return &c.ch }

// Out returns the writing end.
func (c *One2One[T]) Out() ChannelOutput[T] { return &c.ch }

// One2Any is a channel with one writer and any number of competing
// reader processes. Its read end cannot be mounted in an [Alternative].
type One2Any[T any] struct {
	ch channel[T]
}

// NewOne2Any returns a channel for one writer and many readers.
func NewOne2Any[T any](opts ...Option[T]) *One2Any[T] {
	c := &One2Any[T]{}
	c.ch.init(applyOptions(opts), true, false)
	return c
}

// In returns the shared reading end.
func (c *One2Any[T]) In() SharedChannelInput[T] { return &c.ch }

// Out returns the writing end.
func (c *One2Any[T]) Out() ChannelOutput[T] { return &c.ch }

// Any2One is a channel with any number of competing writer processes
// and one reader. Its read end may be mounted in an [Alternative].
type Any2One[T any] struct {
	ch channel[T]
}

// NewAny2One returns a channel for many writers and one reader.
func NewAny2One[T any](opts ...Option[T]) *Any2One[T] {
	c := &Any2One[T]{}
	c.ch.init(applyOptions(opts), false, true)
	return c
}

// In returns the reading end.
func (c *Any2One[T]) In() AltingChannelInput[T] { return &c.ch }

// Out returns the shared writing end.
func (c *Any2One[T]) Out() SharedChannelOutput[T] { return &c.ch }

// Any2Any is a channel with any number of competing writers and readers.
// Its read end cannot be mounted in an [Alternative].
type Any2Any[T any] struct {
	ch channel[T]
}

// NewAny2Any returns a channel for many writers and many readers.
func NewAny2Any[T any](opts ...Option[T]) *Any2Any[T] {
	c := &Any2Any[T]{}
	c.ch.init(applyOptions(opts), true, true)
	return c
}

// In returns the shared reading end.
func (c *Any2Any[T]) In() SharedChannelInput[T] { return &c.ch }

// Out returns the shared writing end.
func (c *Any2Any[T]) Out() SharedChannelOutput[T] { return &c.ch }
