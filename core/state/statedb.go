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

// Package state provides an in-memory account state backing the engine's Host
// interface, with journalled modifications so call frames can be rolled back
// all-or-nothing.
package state

import (
	"github.com/holiman/uint256"

	"github.com/fvm-actors/go-evm/common"
	"github.com/fvm-actors/go-evm/core/types"
	"github.com/fvm-actors/go-evm/crypto"
)

// stateObject is the in-memory representation of one account.
type stateObject struct {
	balance  *uint256.Int
	nonce    uint64
	code     []byte
	codeHash common.Hash
	storage  map[common.Hash]common.Hash

	// delegation state
	delegate  *common.Address
	authNonce uint64

	selfDestructed bool
}

func newObject() *stateObject {
	return &stateObject{
		balance:  new(uint256.Int),
		codeHash: types.EmptyCodeHash,
		storage:  make(map[common.Hash]common.Hash),
	}
}

func (so *stateObject) setCode(code []byte) {
	so.code = code
	if len(code) == 0 {
		so.codeHash = types.EmptyCodeHash
	} else {
		so.codeHash = crypto.Keccak256Hash(code)
	}
}

// StateDB holds accounts keyed by address. It implements vm.Host. All
// mutations pass through the journal so RevertToSnapshot can unwind them.
type StateDB struct {
	objects map[common.Address]*stateObject
	logs    []*types.Log
	journal *journal
}

// NewStateDB creates an empty state database.
func NewStateDB() *StateDB {
	return &StateDB{
		objects: make(map[common.Address]*stateObject),
		journal: newJournal(),
	}
}

func (s *StateDB) getObject(addr common.Address) *stateObject {
	return s.objects[addr]
}

// getOrNewObject retrieves a state object or creates a new one if nil.
func (s *StateDB) getOrNewObject(addr common.Address) *stateObject {
	obj := s.objects[addr]
	if obj == nil {
		s.journal.append(createObjectChange{account: addr})
		obj = newObject()
		s.objects[addr] = obj
	}
	return obj
}

// CreateAccount explicitly creates a new account at addr.
func (s *StateDB) CreateAccount(addr common.Address) {
	s.getOrNewObject(addr)
}

// Exist reports whether the given account exists in state. Notably this also
// returns true for self-destructed accounts.
func (s *StateDB) Exist(addr common.Address) bool {
	return s.getObject(addr) != nil
}

// AddBalance adds amount to the account associated with addr.
func (s *StateDB) AddBalance(addr common.Address, amount *uint256.Int) {
	obj := s.getOrNewObject(addr)
	s.journal.append(balanceChange{account: addr, prev: obj.balance})
	obj.balance = new(uint256.Int).Add(obj.balance, amount)
}

// SubBalance subtracts amount from the account associated with addr.
func (s *StateDB) SubBalance(addr common.Address, amount *uint256.Int) {
	obj := s.getOrNewObject(addr)
	s.journal.append(balanceChange{account: addr, prev: obj.balance})
	obj.balance = new(uint256.Int).Sub(obj.balance, amount)
}

// GetBalance retrieves the balance from the given address or 0 if the account
// doesn't exist.
func (s *StateDB) GetBalance(addr common.Address) *uint256.Int {
	if obj := s.getObject(addr); obj != nil {
		return obj.balance
	}
	return new(uint256.Int)
}

// GetNonce returns the creation nonce of the account, or 0 if it doesn't exist.
func (s *StateDB) GetNonce(addr common.Address) uint64 {
	if obj := s.getObject(addr); obj != nil {
		return obj.nonce
	}
	return 0
}

// SetNonce sets the creation nonce of the account.
func (s *StateDB) SetNonce(addr common.Address, nonce uint64) {
	obj := s.getOrNewObject(addr)
	s.journal.append(nonceChange{account: addr, prev: obj.nonce})
	obj.nonce = nonce
}

// GetCode returns the bytecode stored at addr. An account carrying a
// delegation exposes the delegation indicator (0xef0100 followed by the
// delegate address) as its code; EXTCODE* observe the indicator, only
// execution resolves through it.
func (s *StateDB) GetCode(addr common.Address) []byte {
	if obj := s.getObject(addr); obj != nil {
		if obj.delegate != nil {
			return types.AddressToDelegation(*obj.delegate)
		}
		return obj.code
	}
	return nil
}

// SetCode installs code at addr.
func (s *StateDB) SetCode(addr common.Address, code []byte) {
	obj := s.getOrNewObject(addr)
	s.journal.append(codeChange{account: addr, prevCode: obj.code})
	obj.setCode(code)
}

// GetCodeSize returns the length of the bytecode stored at addr.
func (s *StateDB) GetCodeSize(addr common.Address) int {
	return len(s.GetCode(addr))
}

// GetCodeHash returns the hash of the bytecode stored at addr, or the zero
// hash if the account doesn't exist. Delegated accounts hash their delegation
// indicator, matching GetCode.
func (s *StateDB) GetCodeHash(addr common.Address) common.Hash {
	if obj := s.getObject(addr); obj != nil {
		if obj.delegate != nil {
			return crypto.Keccak256Hash(types.AddressToDelegation(*obj.delegate))
		}
		return obj.codeHash
	}
	return common.Hash{}
}

// GetState retrieves the value of a storage slot.
func (s *StateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	if obj := s.getObject(addr); obj != nil {
		return obj.storage[key]
	}
	return common.Hash{}
}

// SetState writes a value to a storage slot.
func (s *StateDB) SetState(addr common.Address, key, value common.Hash) {
	obj := s.getOrNewObject(addr)
	s.journal.append(storageChange{account: addr, key: key, prev: obj.storage[key]})
	obj.storage[key] = value
}

// GetDelegation reports the active delegate of addr, if any.
func (s *StateDB) GetDelegation(addr common.Address) (common.Address, bool) {
	if obj := s.getObject(addr); obj != nil && obj.delegate != nil {
		return *obj.delegate, true
	}
	return common.Address{}, false
}

// SetDelegation installs a delegation from addr to delegate.
func (s *StateDB) SetDelegation(addr common.Address, delegate common.Address) {
	obj := s.getOrNewObject(addr)
	s.journal.append(delegationChange{account: addr, prev: obj.delegate})
	obj.delegate = &delegate
}

// ClearDelegation removes any delegation installed on addr.
func (s *StateDB) ClearDelegation(addr common.Address) {
	obj := s.getOrNewObject(addr)
	s.journal.append(delegationChange{account: addr, prev: obj.delegate})
	obj.delegate = nil
}

// GetAuthNonce returns the authorization replay counter of addr.
func (s *StateDB) GetAuthNonce(addr common.Address) uint64 {
	if obj := s.getObject(addr); obj != nil {
		return obj.authNonce
	}
	return 0
}

// IncrementAuthNonce bumps the authorization replay counter of addr.
func (s *StateDB) IncrementAuthNonce(addr common.Address) {
	obj := s.getOrNewObject(addr)
	s.journal.append(authNonceChange{account: addr, prev: obj.authNonce})
	obj.authNonce++
}

// SelfDestruct marks the given account as self-destructed. The account's
// balance has already been moved by the opcode handler.
func (s *StateDB) SelfDestruct(addr common.Address) {
	obj := s.getObject(addr)
	if obj == nil {
		return
	}
	s.journal.append(selfDestructChange{account: addr})
	obj.selfDestructed = true
}

// HasSelfDestructed reports whether the account was marked self-destructed in
// this transition.
func (s *StateDB) HasSelfDestructed(addr common.Address) bool {
	if obj := s.getObject(addr); obj != nil {
		return obj.selfDestructed
	}
	return false
}

// AddLog appends a log record emitted during execution.
func (s *StateDB) AddLog(l *types.Log) {
	s.journal.append(addLogChange{})
	s.logs = append(s.logs, l)
}

// Logs returns the logs emitted so far.
func (s *StateDB) Logs() []*types.Log {
	return s.logs
}

// Snapshot returns an identifier for the current revision of the state.
func (s *StateDB) Snapshot() int {
	return s.journal.snapshot()
}

// RevertToSnapshot reverts all state changes made since the given revision.
func (s *StateDB) RevertToSnapshot(revid int) {
	s.journal.revertToSnapshot(revid, s)
}
