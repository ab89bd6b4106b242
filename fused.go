// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import (
	"code.hybscloud.com/kont"
)

// SendThen sends a value and then continues with next.
// Fuses Perform(Send[T]{Value: v}) + Then.
func SendThen[T, B any](v T, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Send[T]{Value: v}), next)
}

// RecvBind receives a value and passes it to f.
// Fuses Perform(Recv[T]{}) + Bind.
func RecvBind[T, B any](f func(T) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Recv[T]{}), f)
}

// PoisonDone poisons both session ends at the given strength and
// returns a. Fuses Perform(PoisonOp[T]) + Then + Pure.
func PoisonDone[T, A any](strength int, a A) kont.Eff[A] {
	return kont.Then(kont.Perform(PoisonOp[T]{Strength: strength}), kont.Pure(a))
}

// Loop runs a recursive session protocol.
// step returns Left(nextState) to continue or Right(result) to finish.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if left, ok := e.GetLeft(); ok {
			return Loop(left, step)
		}
		right, _ := e.GetRight()
		return kont.Pure(right)
	})
}
