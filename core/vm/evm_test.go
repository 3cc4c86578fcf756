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
	"bytes"
	"errors"
	"testing"

	"github.com/holiman/uint256"

	"github.com/fvm-actors/go-evm/common"
	"github.com/fvm-actors/go-evm/crypto"
)

// Initcode returning a single zero byte as the deployed code.
var testInitcode = []byte{
	byte(PUSH1), 0x01,
	byte(PUSH1), 0x00,
	byte(RETURN),
}

func TestCreate(t *testing.T) {
	evm, statedb := newTestEVM()

	wantAddr := crypto.CreateAddress(testCaller, 0)
	ret, addr, _, err := evm.Create(AccountRef(testCaller), testInitcode, 100000, new(uint256.Int))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr != wantAddr {
		t.Errorf("contract address mismatch: have %s, want %s", addr, wantAddr)
	}
	if !bytes.Equal(ret, []byte{0x00}) {
		t.Errorf("deployed code mismatch: have %x, want 00", ret)
	}
	if !bytes.Equal(statedb.GetCode(addr), []byte{0x00}) {
		t.Errorf("stored code mismatch: have %x", statedb.GetCode(addr))
	}
	if statedb.GetNonce(addr) != 1 {
		t.Errorf("created account nonce = %d, want 1", statedb.GetNonce(addr))
	}
	if statedb.GetNonce(testCaller) != 1 {
		t.Errorf("creator nonce = %d, want 1", statedb.GetNonce(testCaller))
	}
}

func TestCreate2(t *testing.T) {
	evm, statedb := newTestEVM()

	salt := uint256.NewInt(0xbeef)
	wantAddr := crypto.CreateAddress2(testCaller, salt.Bytes32(), crypto.Keccak256(testInitcode))
	_, addr, _, err := evm.Create2(AccountRef(testCaller), testInitcode, 100000, new(uint256.Int), salt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr != wantAddr {
		t.Errorf("contract address mismatch: have %s, want %s", addr, wantAddr)
	}
	if statedb.GetCodeSize(addr) != 1 {
		t.Errorf("stored code size = %d, want 1", statedb.GetCodeSize(addr))
	}
}

func TestCreateAddressCollision(t *testing.T) {
	evm, statedb := newTestEVM()

	taken := crypto.CreateAddress(testCaller, 0)
	statedb.CreateAccount(taken)
	statedb.SetNonce(taken, 1)

	_, _, leftover, err := evm.Create(AccountRef(testCaller), testInitcode, 100000, new(uint256.Int))
	if !errors.Is(err, ErrContractAddressCollision) {
		t.Fatalf("expected ErrContractAddressCollision, got %v", err)
	}
	if leftover != 0 {
		t.Errorf("collision should consume all gas, leftover = %d", leftover)
	}
}

func TestCreateCodeStoreOutOfGas(t *testing.T) {
	evm, _ := newTestEVM()

	// Enough to run the initcode, not enough to pay the per-byte deposit.
	gas := uint64(len(testInitcode))*3 + 20
	_, _, _, err := evm.Create(AccountRef(testCaller), testInitcode, gas, new(uint256.Int))
	if !errors.Is(err, ErrCodeStoreOutOfGas) {
		t.Fatalf("expected ErrCodeStoreOutOfGas, got %v", err)
	}
}

func TestCallInsufficientBalance(t *testing.T) {
	evm, _ := newTestEVM()

	value := uint256.NewInt(1)
	_, leftover, err := evm.Call(AccountRef(testCaller), testContract, nil, 10000, value)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if leftover != 10000 {
		t.Errorf("balance check should not consume gas, leftover = %d", leftover)
	}
}

func TestCallTransfersValue(t *testing.T) {
	evm, statedb := newTestEVM()
	statedb.AddBalance(testCaller, uint256.NewInt(100))

	_, _, err := evm.Call(AccountRef(testCaller), testContract, nil, 10000, uint256.NewInt(40))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if have := statedb.GetBalance(testContract); !have.Eq(uint256.NewInt(40)) {
		t.Errorf("recipient balance = %s, want 40", have)
	}
	if have := statedb.GetBalance(testCaller); !have.Eq(uint256.NewInt(60)) {
		t.Errorf("sender balance = %s, want 60", have)
	}
}

// A delegated account executes its delegate's code against its own storage.
func TestCallResolvesDelegation(t *testing.T) {
	authority := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	delegate := common.HexToAddress("0x00000000000000000000000000000000000000bb")
	// SSTORE 0x2a at slot 0.
	delegateCode := []byte{
		byte(PUSH1), 0x2a,
		byte(PUSH1), 0x00,
		byte(SSTORE),
		byte(STOP),
	}

	evm, statedb := newTestEVM()
	statedb.CreateAccount(delegate)
	statedb.SetCode(delegate, delegateCode)
	statedb.CreateAccount(authority)
	statedb.SetDelegation(authority, delegate)

	if _, _, err := evm.Call(AccountRef(testCaller), authority, nil, 100000, new(uint256.Int)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := common.BytesToHash([]byte{0x2a})
	if statedb.GetState(authority, common.Hash{}) != want {
		t.Error("delegate code did not run in the authority's storage context")
	}
	if statedb.GetState(delegate, common.Hash{}) != (common.Hash{}) {
		t.Error("delegate's own storage was modified")
	}
}

// EXTCODESIZE observes the 23-byte delegation indicator, not the delegate's
// code; only execution resolves through the delegation.
func TestExtCodeSizeSeesDelegationIndicator(t *testing.T) {
	authority := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	delegate := common.HexToAddress("0x00000000000000000000000000000000000000bb")

	evm, statedb := newTestEVM()
	statedb.CreateAccount(delegate)
	statedb.SetCode(delegate, []byte{byte(STOP)})
	statedb.CreateAccount(authority)
	statedb.SetDelegation(authority, delegate)

	code := append([]byte{byte(PUSH20)}, authority.Bytes()...)
	code = append(code,
		byte(EXTCODESIZE),
		byte(PUSH1), 0x00,
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH1), 0x00,
		byte(RETURN),
	)
	ret, _, err := run(evm, statedb, code, 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := make([]byte, 32)
	want[31] = 23 // len(0xef0100 || address)
	if !bytes.Equal(ret, want) {
		t.Errorf("EXTCODESIZE = %x, want %x", ret, want)
	}
}

func TestCallToPrecompileThroughEVM(t *testing.T) {
	evm, _ := newTestEVM()

	input := []byte("echo")
	identity := common.BytesToAddress([]byte{0x04})
	ret, leftover, err := evm.Call(AccountRef(testCaller), identity, input, 10000, new(uint256.Int))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(ret, input) {
		t.Errorf("identity output mismatch: have %x, want %x", ret, input)
	}
	if want := uint64(10000 - 18); leftover != want {
		t.Errorf("leftover = %d, want %d", leftover, want)
	}
}

func TestCallToEmptyAccount(t *testing.T) {
	evm, statedb := newTestEVM()

	missing := common.HexToAddress("0x0000000000000000000000000000000000001234")
	ret, leftover, err := evm.Call(AccountRef(testCaller), missing, nil, 10000, new(uint256.Int))
	if err != nil || ret != nil {
		t.Fatalf("call to missing account: ret %x err %v", ret, err)
	}
	if leftover != 10000 {
		t.Errorf("leftover = %d, want 10000", leftover)
	}
	if statedb.Exist(missing) {
		t.Error("valueless call materialised the account")
	}
}
