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

package types

import (
	"math/big"

	"github.com/fvm-actors/go-evm/common"
)

// ApplyCall is the call executed after an authorization batch has been
// applied.
type ApplyCall struct {
	To    common.Address
	Value *big.Int
	Input []byte
}

// ApplyAndCallParams is the wire parameter block of an apply-and-call
// request: a batch of authorization tuples followed by one call. It is
// consumed atomically; batch-level validation rejects the whole request
// before any state is touched.
type ApplyAndCallParams struct {
	List []Authorization
	Call ApplyCall
}

// Apply-and-call completion status codes.
const (
	ApplyAndCallStatusSuccess  = 0 // call halted normally
	ApplyAndCallStatusReverted = 1 // call reverted, output holds revert data
	ApplyAndCallStatusFailed   = 2 // call failed with all gas consumed, no output
)

// ApplyAndCallResult is the wire return of an apply-and-call request.
type ApplyAndCallResult struct {
	Status uint64
	Output []byte
}
