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
	"bytes"
	"testing"

	"github.com/holiman/uint256"

	"github.com/fvm-actors/go-evm/common"
	"github.com/fvm-actors/go-evm/core/types"
	"github.com/fvm-actors/go-evm/crypto"
)

func TestSnapshotRevert(t *testing.T) {
	addr := common.HexToAddress("0x01")
	s := NewStateDB()

	s.AddBalance(addr, uint256.NewInt(100))
	s.SetNonce(addr, 3)
	s.SetState(addr, common.Hash{}, common.BytesToHash([]byte{0x01}))

	snap := s.Snapshot()

	s.SubBalance(addr, uint256.NewInt(40))
	s.SetNonce(addr, 4)
	s.SetState(addr, common.Hash{}, common.BytesToHash([]byte{0x02}))
	s.SetCode(addr, []byte{0xfe})

	s.RevertToSnapshot(snap)

	if have := s.GetBalance(addr); !have.Eq(uint256.NewInt(100)) {
		t.Errorf("balance = %s, want 100", have)
	}
	if s.GetNonce(addr) != 3 {
		t.Errorf("nonce = %d, want 3", s.GetNonce(addr))
	}
	if s.GetState(addr, common.Hash{}) != common.BytesToHash([]byte{0x01}) {
		t.Errorf("storage not reverted")
	}
	if s.GetCodeSize(addr) != 0 {
		t.Errorf("code not reverted")
	}
	if s.GetCodeHash(addr) != types.EmptyCodeHash {
		t.Errorf("code hash not reverted")
	}
}

func TestRevertRemovesCreatedAccount(t *testing.T) {
	addr := common.HexToAddress("0x02")
	s := NewStateDB()

	snap := s.Snapshot()
	s.CreateAccount(addr)
	if !s.Exist(addr) {
		t.Fatal("account not created")
	}
	s.RevertToSnapshot(snap)
	if s.Exist(addr) {
		t.Error("reverted account still exists")
	}
}

func TestNestedSnapshots(t *testing.T) {
	addr := common.HexToAddress("0x03")
	s := NewStateDB()

	s.SetNonce(addr, 1)
	outer := s.Snapshot()
	s.SetNonce(addr, 2)
	inner := s.Snapshot()
	s.SetNonce(addr, 3)

	s.RevertToSnapshot(inner)
	if s.GetNonce(addr) != 2 {
		t.Fatalf("nonce after inner revert = %d, want 2", s.GetNonce(addr))
	}
	s.RevertToSnapshot(outer)
	if s.GetNonce(addr) != 1 {
		t.Fatalf("nonce after outer revert = %d, want 1", s.GetNonce(addr))
	}
}

func TestRevertInvalidSnapshotPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown revision id")
		}
	}()
	s := NewStateDB()
	s.RevertToSnapshot(42)
}

func TestDelegationJournal(t *testing.T) {
	addr := common.HexToAddress("0x04")
	d1 := common.HexToAddress("0x05")
	d2 := common.HexToAddress("0x06")
	s := NewStateDB()

	s.SetDelegation(addr, d1)
	snap := s.Snapshot()

	s.SetDelegation(addr, d2)
	s.IncrementAuthNonce(addr)

	if got, ok := s.GetDelegation(addr); !ok || got != d2 {
		t.Fatalf("delegation = %s %v, want %s", got, ok, d2)
	}
	s.RevertToSnapshot(snap)

	if got, ok := s.GetDelegation(addr); !ok || got != d1 {
		t.Errorf("delegation after revert = %s %v, want %s", got, ok, d1)
	}
	if s.GetAuthNonce(addr) != 0 {
		t.Errorf("auth nonce after revert = %d, want 0", s.GetAuthNonce(addr))
	}

	// Clearing reverts back too.
	snap = s.Snapshot()
	s.ClearDelegation(addr)
	if _, ok := s.GetDelegation(addr); ok {
		t.Error("delegation not cleared")
	}
	s.RevertToSnapshot(snap)
	if got, ok := s.GetDelegation(addr); !ok || got != d1 {
		t.Errorf("delegation after clear revert = %s %v, want %s", got, ok, d1)
	}
}

func TestDelegatedCodeIndicator(t *testing.T) {
	addr := common.HexToAddress("0x09")
	delegate := common.HexToAddress("0x0a")
	s := NewStateDB()

	s.SetDelegation(addr, delegate)

	want := types.AddressToDelegation(delegate)
	if got := s.GetCode(addr); !bytes.Equal(got, want) {
		t.Errorf("code = %x, want indicator %x", got, want)
	}
	if got := s.GetCodeSize(addr); got != len(want) {
		t.Errorf("code size = %d, want %d", got, len(want))
	}
	if got := s.GetCodeHash(addr); got != crypto.Keccak256Hash(want) {
		t.Errorf("code hash = %x, want hash of indicator", got)
	}

	s.ClearDelegation(addr)
	if s.GetCodeSize(addr) != 0 {
		t.Error("cleared delegation still exposes code")
	}
	if s.GetCodeHash(addr) != types.EmptyCodeHash {
		t.Error("cleared delegation code hash mismatch")
	}
}

func TestSelfDestructJournal(t *testing.T) {
	addr := common.HexToAddress("0x07")
	s := NewStateDB()
	s.CreateAccount(addr)

	snap := s.Snapshot()
	s.SelfDestruct(addr)
	if !s.HasSelfDestructed(addr) {
		t.Fatal("account not marked self-destructed")
	}
	s.RevertToSnapshot(snap)
	if s.HasSelfDestructed(addr) {
		t.Error("self-destruct mark survived revert")
	}
}

func TestLogsJournal(t *testing.T) {
	addr := common.HexToAddress("0x08")
	s := NewStateDB()

	s.AddLog(&types.Log{Address: addr, Data: []byte{0x01}})
	snap := s.Snapshot()
	s.AddLog(&types.Log{Address: addr, Data: []byte{0x02}})

	if len(s.Logs()) != 2 {
		t.Fatalf("log count = %d, want 2", len(s.Logs()))
	}
	s.RevertToSnapshot(snap)
	if len(s.Logs()) != 1 {
		t.Fatalf("log count after revert = %d, want 1", len(s.Logs()))
	}
	if s.Logs()[0].Data[0] != 0x01 {
		t.Error("wrong log survived the revert")
	}
}

func TestBalanceOfMissingAccount(t *testing.T) {
	s := NewStateDB()
	if !s.GetBalance(common.HexToAddress("0xff")).IsZero() {
		t.Error("missing account should report a zero balance")
	}
	if s.Exist(common.HexToAddress("0xff")) {
		t.Error("balance read should not create the account")
	}
}
