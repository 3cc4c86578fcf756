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

package state

import (
	"github.com/holiman/uint256"

	"github.com/fvm-actors/go-evm/common"
)

// journalEntry is a modification entry in the state change journal that can be
// reverted on demand.
type journalEntry interface {
	// revert undoes the changes introduced by this journal entry.
	revert(*StateDB)
}

// journal contains the list of state modifications applied since the last state
// commit. These are tracked to be able to be reverted in the case of an
// execution exception or request for reversal.
type journal struct {
	entries []journalEntry // Current changes tracked by the journal

	validRevisions []revision
	nextRevisionId int
}

type revision struct {
	id           int
	journalIndex int
}

// newJournal creates a new initialized journal.
func newJournal() *journal {
	return &journal{}
}

// snapshot returns an identifier for the current revision of the state.
func (j *journal) snapshot() int {
	id := j.nextRevisionId
	j.nextRevisionId++
	j.validRevisions = append(j.validRevisions, revision{id, j.length()})
	return id
}

// revertToSnapshot reverts all state changes made since the given revision.
func (j *journal) revertToSnapshot(revid int, s *StateDB) {
	// Find the snapshot in the stack of valid snapshots.
	idx := -1
	for i, rev := range j.validRevisions {
		if rev.id == revid {
			idx = i
			break
		}
	}
	if idx < 0 {
		panic("revision id cannot be reverted")
	}
	snapshot := j.validRevisions[idx].journalIndex

	// Replay the journal to undo changes and remove invalidated snapshots
	j.revert(s, snapshot)
	j.validRevisions = j.validRevisions[:idx]
}

// append inserts a new modification entry to the end of the change journal.
func (j *journal) append(entry journalEntry) {
	j.entries = append(j.entries, entry)
}

// revert undoes a batch of journalled modifications.
func (j *journal) revert(statedb *StateDB, snapshot int) {
	for i := len(j.entries) - 1; i >= snapshot; i-- {
		// Undo the changes made by the operation
		j.entries[i].revert(statedb)
	}
	j.entries = j.entries[:snapshot]
}

// length returns the current number of entries in the journal.
func (j *journal) length() int {
	return len(j.entries)
}

type (
	// Changes to the account database.
	createObjectChange struct {
		account common.Address
	}
	balanceChange struct {
		account common.Address
		prev    *uint256.Int
	}
	nonceChange struct {
		account common.Address
		prev    uint64
	}
	codeChange struct {
		account  common.Address
		prevCode []byte
	}
	storageChange struct {
		account common.Address
		key     common.Hash
		prev    common.Hash
	}
	delegationChange struct {
		account common.Address
		prev    *common.Address
	}
	authNonceChange struct {
		account common.Address
		prev    uint64
	}
	selfDestructChange struct {
		account common.Address
	}
	addLogChange struct{}
)

func (ch createObjectChange) revert(s *StateDB) {
	delete(s.objects, ch.account)
}

func (ch balanceChange) revert(s *StateDB) {
	s.objects[ch.account].balance = ch.prev
}

func (ch nonceChange) revert(s *StateDB) {
	s.objects[ch.account].nonce = ch.prev
}

func (ch codeChange) revert(s *StateDB) {
	s.objects[ch.account].setCode(ch.prevCode)
}

func (ch storageChange) revert(s *StateDB) {
	s.objects[ch.account].storage[ch.key] = ch.prev
}

func (ch delegationChange) revert(s *StateDB) {
	s.objects[ch.account].delegate = ch.prev
}

func (ch authNonceChange) revert(s *StateDB) {
	s.objects[ch.account].authNonce = ch.prev
}

func (ch selfDestructChange) revert(s *StateDB) {
	s.objects[ch.account].selfDestructed = false
}

func (ch addLogChange) revert(s *StateDB) {
	s.logs = s.logs[:len(s.logs)-1]
}
