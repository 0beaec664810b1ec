// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treap

import "github.com/pkg/errors"

// Errors returned by trees and sets. Returned errors wrap one of these
// with the offending value or rank; test for them with [errors.Is].
var (
	// ErrNotFound reports that a value is not present.
	ErrNotFound = errors.New("treap: value not present")

	// ErrOutOfRange reports a rank outside [0, Len).
	ErrOutOfRange = errors.New("treap: rank out of range")

	// ErrInvalidPrecondition reports a call whose arguments break an
	// ordering requirement, such as joining trees whose values overlap.
	ErrInvalidPrecondition = errors.New("treap: invalid precondition")

	// ErrInvalidHandle reports a handle whose node has been erased
	// or that belongs to another tree.
	ErrInvalidHandle = errors.Wrap(ErrInvalidPrecondition, "stale or foreign handle")
)

var errModified = errors.New("treap: tree modified during iteration")
