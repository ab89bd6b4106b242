// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// PoisonError reports that a channel operation observed poison at a
// strength exceeding the calling end's immunity. The channel stays
// poisoned: every later operation on an end whose immunity is below the
// recorded strength fails the same way.
//
// A process that receives a PoisonError typically treats it as graceful
// shutdown and propagates it by poisoning its other ends.
type PoisonError struct {
	// Strength is the channel's poison strength at the time the
	// operation failed.
	Strength int
}

// Error implements the error interface.
func (e *PoisonError) Error() string {
	return fmt.Sprintf("csp: channel poisoned (strength %d)", e.Strength)
}

// IsPoisoned reports whether err is, or wraps, a [*PoisonError].
func IsPoisoned(err error) bool {
	var pe *PoisonError
	return errors.As(err, &pe)
}

// IsWouldBlock reports whether err signals that a TryRead or TryWrite
// could not complete without parking. The error is sourced from
// [code.hybscloud.com/iox] for ecosystem consistency.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}
