// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import (
	"code.hybscloud.com/kont"
)

// Session couples one reading end and one writing end into the endpoint
// a protocol runs against. Either end may be nil if the protocol never
// performs the corresponding operation.
type Session[T any] struct {
	in  ChannelInput[T]
	out ChannelOutput[T]
}

// NewSession returns a session endpoint over the given ends.
func NewSession[T any](in ChannelInput[T], out ChannelOutput[T]) *Session[T] {
	return &Session[T]{in: in, out: out}
}

// sessionDispatcher is the structural interface for session operations.
// dispatch blocks in the channel kernel; it returns an error only on a
// terminal condition (poison), which short-circuits the protocol.
type sessionDispatcher[T any] interface {
	dispatch(s *Session[T]) (kont.Resumed, error)
}

// Send is the effect operation for sending a value of type T.
// Perform(Send[T]{Value: v}) writes v to the session's output end.
type Send[T any] struct {
	kont.Phantom[struct{}]
	Value T
}

// dispatch handles Send by a blocking Write on the output end.
func (o Send[T]) dispatch(s *Session[T]) (kont.Resumed, error) {
	if err := s.out.Write(o.Value); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

// Recv is the effect operation for receiving a value of type T.
// Perform(Recv[T]{}) reads from the session's input end.
type Recv[T any] struct {
	kont.Phantom[T]
}

// dispatch handles Recv by a blocking Read on the input end.
func (Recv[T]) dispatch(s *Session[T]) (kont.Resumed, error) {
	v, err := s.in.Read()
	if err != nil {
		return nil, err
	}
	return v, nil
}

// PoisonOp is the effect operation for poisoning both session ends,
// the conventional graceful-shutdown move. It never fails: poisoning a
// poisoned channel only raises the strength.
type PoisonOp[T any] struct {
	kont.Phantom[struct{}]
	Strength int
}

// dispatch handles PoisonOp by poisoning whichever ends are present.
func (o PoisonOp[T]) dispatch(s *Session[T]) (kont.Resumed, error) {
	if s.in != nil {
		s.in.Poison(o.Strength)
	}
	if s.out != nil {
		s.out.Poison(o.Strength)
	}
	return struct{}{}, nil
}

// sessionHandler implements kont.Handler for session effects over the
// blocking channel kernel. A dispatch error (poison) short-circuits the
// protocol, returning Left.
type sessionHandler[T, R any] struct {
	s *Session[T]
}

// Dispatch implements kont.Handler via structural interface assertion.
func (h sessionHandler[T, R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	sop, ok := op.(sessionDispatcher[T])
	if !ok {
		panic("csp: unhandled effect in sessionHandler")
	}
	v, err := sop.dispatch(h.s)
	if err != nil {
		return kont.Left[error, R](err), false
	}
	return v, true
}

// Eval runs a session protocol against s, blocking in the channel
// kernel at every Send and Recv. Returns Either[error, R] — Right on
// completion, Left if an operation observed poison.
func Eval[T, R any](s *Session[T], protocol kont.Eff[R]) kont.Either[error, R] {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[error, R]](protocol, func(r R) kont.Either[error, R] {
		return kont.Right[error, R](r)
	})
	h := sessionHandler[T, R]{s: s}
	return kont.Handle(wrapped, h)
}

// RunPair creates an unbuffered One2One channel in each direction, runs
// both protocols as parallel processes, and returns both results. Each
// side's Send feeds the other side's Recv; a PoisonOp on either side
// unblocks the peer with a Left result.
func RunPair[T, A, B any](pa kont.Eff[A], pb kont.Eff[B]) (kont.Either[error, A], kont.Either[error, B]) {
	ab := NewOne2One[T]()
	ba := NewOne2One[T]()
	sa := NewSession[T](ba.In(), ab.Out())
	sb := NewSession[T](ab.In(), ba.Out())

	var resultA kont.Either[error, A]
	var resultB kont.Either[error, B]
	par := NewParallel(
		ProcessFunc(func() error {
			resultA = Eval(sa, pa)
			return nil
		}),
		ProcessFunc(func() error {
			resultB = Eval(sb, pb)
			return nil
		}),
	)
	// Eval never returns a process error; terminal conditions land in
	// the Either results.
	_ = par.Run()
	return resultA, resultB
}
