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

package vm

import (
	"github.com/holiman/uint256"

	"github.com/fvm-actors/go-evm/common"
	"github.com/fvm-actors/go-evm/core/types"
)

// Host is the capability interface through which the engine reaches persistent
// state. The interpreter never retains a handle on storage across calls: every
// access goes through the Host, and the Host owns all-or-nothing rollback via
// the snapshot methods.
type Host interface {
	// CreateAccount creates a new account at the given address. Carrying over
	// the balance is the caller's concern.
	CreateAccount(common.Address)

	AddBalance(common.Address, *uint256.Int)
	SubBalance(common.Address, *uint256.Int)
	GetBalance(common.Address) *uint256.Int

	GetNonce(common.Address) uint64
	SetNonce(common.Address, uint64)

	GetCodeHash(common.Address) common.Hash
	GetCode(common.Address) []byte
	SetCode(common.Address, []byte)
	GetCodeSize(common.Address) int

	GetState(common.Address, common.Hash) common.Hash
	SetState(common.Address, common.Hash, common.Hash)

	// Delegation state of externally-owned accounts. GetDelegation reports the
	// active delegate, if any. SetDelegation installs one, ClearDelegation
	// removes it. The auth nonce is the strictly increasing replay counter
	// consumed by authorization tuples.
	GetDelegation(common.Address) (common.Address, bool)
	SetDelegation(common.Address, common.Address)
	ClearDelegation(common.Address)
	GetAuthNonce(common.Address) uint64
	IncrementAuthNonce(common.Address)

	SelfDestruct(common.Address)
	HasSelfDestructed(common.Address) bool

	// Exist reports whether the given account exists in state.
	// Notably this should also return true for self-destructed accounts.
	Exist(common.Address) bool

	AddLog(*types.Log)

	// Snapshot and RevertToSnapshot bound the all-or-nothing effect of one
	// call frame; the interpreter signals outcome, the Host rolls back.
	Snapshot() int
	RevertToSnapshot(int)
}
