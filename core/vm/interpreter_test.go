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
	"github.com/fvm-actors/go-evm/core/state"
	"github.com/fvm-actors/go-evm/crypto"
)

var (
	testCaller   = common.HexToAddress("0x00000000000000000000000000000000deadbeef")
	testContract = common.HexToAddress("0x000000000000000000000000000000000000c0de")
)

func newTestEVM() (*EVM, *state.StateDB) {
	statedb := state.NewStateDB()
	statedb.CreateAccount(testCaller)
	return NewEVM(statedb, 314), statedb
}

// run deploys code at a fixed address and calls it with the given gas.
func run(evm *EVM, statedb *state.StateDB, code []byte, gas uint64) ([]byte, uint64, error) {
	statedb.CreateAccount(testContract)
	statedb.SetCode(testContract, code)
	return evm.Call(AccountRef(testCaller), testContract, nil, gas, new(uint256.Int))
}

func TestLoopHaltsOnStop(t *testing.T) {
	evm, statedb := newTestEVM()
	ret, leftover, err := run(evm, statedb, []byte{byte(STOP)}, 10000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ret != nil {
		t.Errorf("expected nil return, got %x", ret)
	}
	if leftover != 10000 {
		t.Errorf("STOP should be free, leftover = %d", leftover)
	}
}

func TestArithmeticAndReturn(t *testing.T) {
	// 1 + 2, stored at memory 0 and returned as a 32-byte word.
	code := []byte{
		byte(PUSH1), 0x01,
		byte(PUSH1), 0x02,
		byte(ADD),
		byte(PUSH1), 0x00,
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH1), 0x00,
		byte(RETURN),
	}
	evm, statedb := newTestEVM()
	ret, _, err := run(evm, statedb, code, 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := make([]byte, 32)
	want[31] = 3
	if !bytes.Equal(ret, want) {
		t.Errorf("return mismatch: have %x, want %x", ret, want)
	}
}

func TestRevertKeepsGasAndReturnsData(t *testing.T) {
	// Store 0xdead...0000 pattern and revert with one word of memory.
	code := []byte{
		byte(PUSH1), 0x42,
		byte(PUSH1), 0x00,
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH1), 0x00,
		byte(REVERT),
	}
	evm, statedb := newTestEVM()
	ret, leftover, err := run(evm, statedb, code, 100000)
	if err != ErrExecutionReverted {
		t.Fatalf("expected ErrExecutionReverted, got %v", err)
	}
	if leftover == 0 {
		t.Error("revert should not consume the remaining gas")
	}
	want := make([]byte, 32)
	want[31] = 0x42
	if !bytes.Equal(ret, want) {
		t.Errorf("revert data mismatch: have %x, want %x", ret, want)
	}
}

func TestInvalidOpcodeConsumesAllGas(t *testing.T) {
	evm, statedb := newTestEVM()
	_, leftover, err := run(evm, statedb, []byte{byte(INVALID)}, 10000)
	if err == nil {
		t.Fatal("expected error")
	}
	if leftover != 0 {
		t.Errorf("expected all gas consumed, leftover = %d", leftover)
	}
}

func TestUndefinedOpcode(t *testing.T) {
	evm, statedb := newTestEVM()
	_, _, err := run(evm, statedb, []byte{0x0c}, 10000)
	var invalid *ErrInvalidOpCode
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidOpCode, got %v", err)
	}
}

func TestOutOfGas(t *testing.T) {
	evm, statedb := newTestEVM()
	_, leftover, err := run(evm, statedb, []byte{byte(PUSH1), 0x01}, 1)
	if !errors.Is(err, ErrOutOfGas) {
		t.Fatalf("expected ErrOutOfGas, got %v", err)
	}
	if leftover != 0 {
		t.Errorf("expected all gas consumed, leftover = %d", leftover)
	}
}

func TestStackUnderflow(t *testing.T) {
	evm, statedb := newTestEVM()
	_, _, err := run(evm, statedb, []byte{byte(ADD)}, 10000)
	var underflow *ErrStackUnderflow
	if !errors.As(err, &underflow) {
		t.Fatalf("expected ErrStackUnderflow, got %v", err)
	}
}

func TestStackOverflow(t *testing.T) {
	code := bytes.Repeat([]byte{byte(PUSH0)}, 1025)
	evm, statedb := newTestEVM()
	_, _, err := run(evm, statedb, code, 100000)
	var overflow *ErrStackOverflow
	if !errors.As(err, &overflow) {
		t.Fatalf("expected ErrStackOverflow, got %v", err)
	}
}

func TestJumpToJumpdest(t *testing.T) {
	code := []byte{
		byte(PUSH1), 0x04,
		byte(JUMP),
		byte(INVALID),
		byte(JUMPDEST),
		byte(STOP),
	}
	evm, statedb := newTestEVM()
	if _, _, err := run(evm, statedb, code, 10000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestJumpToPushData(t *testing.T) {
	// Position 4 holds a JUMPDEST byte, but it is PUSH1 operand data.
	code := []byte{
		byte(PUSH1), 0x04,
		byte(JUMP),
		byte(PUSH1), byte(JUMPDEST),
		byte(STOP),
	}
	evm, statedb := newTestEVM()
	_, _, err := run(evm, statedb, code, 10000)
	if !errors.Is(err, ErrInvalidJump) {
		t.Fatalf("expected ErrInvalidJump, got %v", err)
	}
}

func TestJumpToNonJumpdest(t *testing.T) {
	code := []byte{
		byte(PUSH1), 0x03,
		byte(JUMP),
		byte(STOP),
	}
	evm, statedb := newTestEVM()
	_, _, err := run(evm, statedb, code, 10000)
	if !errors.Is(err, ErrInvalidJump) {
		t.Fatalf("expected ErrInvalidJump, got %v", err)
	}
}

// Memory grows in 32-byte words: a single byte write at offset 32 yields an
// MSIZE of 64.
func TestMemoryWordGrowth(t *testing.T) {
	code := []byte{
		byte(PUSH1), 0x01,
		byte(PUSH1), 0x20,
		byte(MSTORE8),
		byte(MSIZE),
		byte(PUSH1), 0x00,
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH1), 0x00,
		byte(RETURN),
	}
	evm, statedb := newTestEVM()
	ret, _, err := run(evm, statedb, code, 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := make([]byte, 32)
	want[31] = 0x40
	if !bytes.Equal(ret, want) {
		t.Errorf("MSIZE mismatch: have %x, want %x", ret, want)
	}
}

func TestKeccak256Op(t *testing.T) {
	// Hash of the empty string.
	code := []byte{
		byte(PUSH1), 0x00,
		byte(PUSH1), 0x00,
		byte(KECCAK256),
		byte(PUSH1), 0x00,
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH1), 0x00,
		byte(RETURN),
	}
	evm, statedb := newTestEVM()
	ret, _, err := run(evm, statedb, code, 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := crypto.Keccak256(nil); !bytes.Equal(ret, want) {
		t.Errorf("hash mismatch: have %x, want %x", ret, want)
	}
}

func TestStaticCallWriteProtection(t *testing.T) {
	code := []byte{
		byte(PUSH1), 0x01,
		byte(PUSH1), 0x00,
		byte(SSTORE),
	}
	evm, statedb := newTestEVM()
	statedb.CreateAccount(testContract)
	statedb.SetCode(testContract, code)

	_, leftover, err := evm.StaticCall(AccountRef(testCaller), testContract, nil, 100000)
	if !errors.Is(err, ErrWriteProtection) {
		t.Fatalf("expected ErrWriteProtection, got %v", err)
	}
	if leftover != 0 {
		t.Errorf("expected all gas consumed, leftover = %d", leftover)
	}
	if statedb.GetState(testContract, common.Hash{}) != (common.Hash{}) {
		t.Error("storage was modified during a static call")
	}
}

func TestStaticCallAllowsReads(t *testing.T) {
	code := []byte{
		byte(PUSH1), 0x00,
		byte(SLOAD),
		byte(PUSH1), 0x00,
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH1), 0x00,
		byte(RETURN),
	}
	evm, statedb := newTestEVM()
	statedb.CreateAccount(testContract)
	statedb.SetCode(testContract, code)
	statedb.SetState(testContract, common.Hash{}, common.BytesToHash([]byte{0x07}))

	ret, _, err := evm.StaticCall(AccountRef(testCaller), testContract, nil, 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := make([]byte, 32)
	want[31] = 0x07
	if !bytes.Equal(ret, want) {
		t.Errorf("SLOAD mismatch: have %x, want %x", ret, want)
	}
}

func TestNestedCall(t *testing.T) {
	callee := common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	calleeCode := []byte{
		byte(PUSH1), 0x07,
		byte(PUSH1), 0x00,
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH1), 0x00,
		byte(RETURN),
	}
	callerCode := []byte{
		byte(PUSH1), 0x20, // retSize
		byte(PUSH1), 0x00, // retOffset
		byte(PUSH1), 0x00, // inSize
		byte(PUSH1), 0x00, // inOffset
		byte(PUSH1), 0x00, // value
		byte(PUSH20),
	}
	callerCode = append(callerCode, callee.Bytes()...)
	callerCode = append(callerCode,
		byte(PUSH2), 0xff, 0xff, // gas
		byte(CALL),
		byte(PUSH1), 0x20,
		byte(PUSH1), 0x00,
		byte(RETURN),
	)

	evm, statedb := newTestEVM()
	statedb.CreateAccount(callee)
	statedb.SetCode(callee, calleeCode)
	ret, _, err := run(evm, statedb, callerCode, 200000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := make([]byte, 32)
	want[31] = 0x07
	if !bytes.Equal(ret, want) {
		t.Errorf("nested call return mismatch: have %x, want %x", ret, want)
	}
}

// An inner revert is contained: its storage writes are rolled back while the
// outer frame continues and commits its own.
func TestInnerRevertRollsBackInnerStateOnly(t *testing.T) {
	callee := common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	calleeCode := []byte{
		byte(PUSH1), 0x2a,
		byte(PUSH1), 0x00,
		byte(SSTORE),
		byte(PUSH1), 0x00,
		byte(PUSH1), 0x00,
		byte(REVERT),
	}
	callerCode := []byte{
		byte(PUSH1), 0x00, // retSize
		byte(PUSH1), 0x00, // retOffset
		byte(PUSH1), 0x00, // inSize
		byte(PUSH1), 0x00, // inOffset
		byte(PUSH1), 0x00, // value
		byte(PUSH20),
	}
	callerCode = append(callerCode, callee.Bytes()...)
	callerCode = append(callerCode,
		byte(PUSH2), 0xff, 0xff, // gas
		byte(CALL),
		byte(PUSH1), 0x01, // outer write survives
		byte(PUSH1), 0x01,
		byte(SSTORE),
		byte(STOP),
	)

	evm, statedb := newTestEVM()
	statedb.CreateAccount(callee)
	statedb.SetCode(callee, calleeCode)
	if _, _, err := run(evm, statedb, callerCode, 200000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if statedb.GetState(callee, common.Hash{}) != (common.Hash{}) {
		t.Error("reverted inner write survived")
	}
	key := common.BytesToHash([]byte{0x01})
	if statedb.GetState(testContract, key) != key {
		t.Error("outer write did not survive")
	}
}

func TestCallDepthLimit(t *testing.T) {
	evm, statedb := newTestEVM()
	evm.depth = int(1025)
	_, _, err := run(evm, statedb, []byte{byte(STOP)}, 10000)
	if !errors.Is(err, ErrDepth) {
		t.Fatalf("expected ErrDepth, got %v", err)
	}
}

// SELFDESTRUCT charges its 5000 base exactly once; the dynamic portion only
// adds the new-account cost when value is swept to a fresh beneficiary.
func TestSelfdestructGas(t *testing.T) {
	beneficiary := common.HexToAddress("0x00000000000000000000000000000000000000fe")
	code := append([]byte{byte(PUSH20)}, beneficiary.Bytes()...)
	code = append(code, byte(SELFDESTRUCT))

	// Zero-balance contract: base cost only.
	evm, statedb := newTestEVM()
	_, leftover, err := run(evm, statedb, code, 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if used := 100000 - leftover; used != 3+5000 {
		t.Errorf("gas used = %d, want %d", used, 3+5000)
	}

	// Funded contract sweeping to a missing account pays the account
	// creation surcharge on top.
	evm, statedb = newTestEVM()
	statedb.CreateAccount(testContract)
	statedb.AddBalance(testContract, uint256.NewInt(5))
	_, leftover, err = run(evm, statedb, code, 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if used := 100000 - leftover; used != 3+5000+25000 {
		t.Errorf("gas used = %d, want %d", used, 3+5000+25000)
	}
	if !statedb.GetBalance(beneficiary).Eq(uint256.NewInt(5)) {
		t.Error("balance was not swept to the beneficiary")
	}
}
