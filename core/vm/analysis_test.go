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
	"math/rand"
	"testing"
)

// referenceCodeSegments is a trivially-correct scanner used to validate the
// packed bitmap produced by codeBitmap.
func referenceCodeSegments(code []byte) []bool {
	isCode := make([]bool, len(code))
	for pc := 0; pc < len(code); {
		op := OpCode(code[pc])
		isCode[pc] = true
		pc++
		if op >= PUSH1 && op <= PUSH32 {
			pc += int(op - PUSH1 + 1)
		}
	}
	return isCode
}

func checkBitmap(t *testing.T, code []byte) {
	t.Helper()
	bits := codeBitmap(code)
	want := referenceCodeSegments(code)
	for pos := uint64(0); pos < uint64(len(code)); pos++ {
		if bits.codeSegment(pos) != want[pos] {
			t.Fatalf("code %x: position %d: codeSegment = %v, want %v",
				code, pos, bits.codeSegment(pos), want[pos])
		}
	}
}

func TestJumpDestAnalysis(t *testing.T) {
	for _, code := range [][]byte{
		{byte(PUSH1), 0x01, 0x01, 0x01},
		{byte(PUSH1), byte(PUSH1), byte(PUSH1), byte(PUSH1)},
		{0x00, byte(PUSH1), 0x00, byte(PUSH1), 0x00, byte(PUSH1), 0x00, byte(PUSH1)},
		{byte(PUSH8), byte(PUSH8), byte(PUSH8), byte(PUSH8), byte(PUSH8), byte(PUSH8), byte(PUSH8), byte(PUSH8), 0x01, 0x01, 0x01},
		{byte(PUSH8), 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01},
		{0x01, 0x01, 0x01, 0x01, 0x01, byte(PUSH2), byte(PUSH2), byte(PUSH2), 0x01, 0x01, 0x01},
		{byte(PUSH3), 0x01, 0x01, 0x01, byte(PUSH1), 0x01, 0x00, 0x01, 0x01, 0x01, 0x01, 0x01},
		{0x01, byte(PUSH8), 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01},
		{byte(PUSH16), 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01},
		{byte(PUSH32)},
		{byte(PUSH32), 0x01, 0x01},
		bytes.Repeat([]byte{byte(PUSH32)}, 64),
		bytes.Repeat([]byte{byte(JUMPDEST)}, 64),
	} {
		checkBitmap(t, code)
	}
}

func TestJumpDestAnalysisRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		code := make([]byte, rng.Intn(500))
		rng.Read(code)
		checkBitmap(t, code)
	}
}

// A JUMPDEST byte that lands inside push data must not count as code.
func TestCodeSegmentPushData(t *testing.T) {
	code := []byte{byte(PUSH2), byte(JUMPDEST), byte(JUMPDEST), byte(JUMPDEST), byte(STOP)}
	bits := codeBitmap(code)
	if bits.codeSegment(1) || bits.codeSegment(2) {
		t.Error("push data flagged as code segment")
	}
	if !bits.codeSegment(3) || !bits.codeSegment(4) {
		t.Error("code after push data not flagged as code segment")
	}
}
