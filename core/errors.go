// Copyright 2025 The go-evm Authors
// This file is part of the go-evm library.
//
// The go-evm library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-evm library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-evm library. If not, see <http://www.gnu.org/licenses/>.

package core

import (
	"errors"
)

// Batch-level validation errors. Any of these rejects the whole apply-and-call
// request before a single tuple is committed.
var (
	// ErrTooManyAuthorizations is returned if the authorization list exceeds
	// the tuple cap.
	ErrTooManyAuthorizations = errors.New("too many authorization tuples")

	// ErrDuplicateAuthority is returned if two tuples in one list recover to
	// the same authority address.
	ErrDuplicateAuthority = errors.New("duplicate authority in authorization list")

	// ErrIntrinsicGas is returned if the gas supplied does not cover the
	// intrinsic cost of the request shape.
	ErrIntrinsicGas = errors.New("intrinsic gas too low")

	// ErrInsufficientFunds is returned if the caller cannot cover the value
	// attached to the call.
	ErrInsufficientFunds = errors.New("insufficient funds for transfer")
)
