// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package objpool

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrInvalidArgument is returned by Init, Populate, and ScatterAdd for
// unsupported shard counts, nil buffers, mismatched object sizes, or
// misaligned buffers.
var ErrInvalidArgument = errors.New("objpool: invalid argument")

// ErrOutOfMemory is returned by Init when a shard directory or shard
// body allocation fails. Init rolls back any shards already allocated
// before returning it.
var ErrOutOfMemory = errors.New("objpool: out of memory")

// ErrFull is returned by ScatterAdd when every shard has rejected the
// object, and by Release — where it signals a caller bug (a
// double-release) rather than genuine backpressure, since Release's
// capacity is guaranteed by construction.
//
// ErrFull wraps [iox.ErrWouldBlock] for ecosystem consistency: it is a
// control-flow signal, not a failure, except on the Release path.
var ErrFull = fmt.Errorf("objpool: full: %w", iox.ErrWouldBlock)

// ErrEmpty is returned by Acquire when the pool currently has no object
// to hand out. Callers decide their own fallback (retry, backoff, or
// treat it as exhaustion).
//
// ErrEmpty wraps [iox.ErrWouldBlock] for ecosystem consistency.
var ErrEmpty = fmt.Errorf("objpool: empty: %w", iox.ErrWouldBlock)

// IsInvalidArgument reports whether err signals a malformed call to
// Init, Populate, or ScatterAdd.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsOutOfMemory reports whether err signals that Init failed to
// allocate a shard directory or a shard's backing storage.
func IsOutOfMemory(err error) bool {
	return errors.Is(err, ErrOutOfMemory)
}

// IsFull reports whether err indicates a pool or shard has no room.
func IsFull(err error) bool {
	return errors.Is(err, ErrFull)
}

// IsEmpty reports whether err indicates a pool had nothing to acquire.
func IsEmpty(err error) bool {
	return errors.Is(err, ErrEmpty)
}

// IsWouldBlock reports whether err is a control-flow signal (full or
// empty) rather than a genuine failure. Delegates to [iox.IsWouldBlock].
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}
