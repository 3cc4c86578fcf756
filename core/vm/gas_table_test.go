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
	"math"
	"testing"
)

func TestMemoryGasCost(t *testing.T) {
	tests := []struct {
		size     uint64
		cost     uint64
		overflow bool
	}{
		{0x00, 0, false},
		{0x20, 3, false}, // one word: 1*3 + 1*1/512
		{0x40, 6, false},
		{0x8000, 5120, false}, // 1024 words: 3072 linear + 2048 quadratic
		{0x1fffffffe0, 36028809887088637, false},
		{0x1fffffffe1, 0, true},
		{math.MaxUint64, 0, true},
	}
	for i, tt := range tests {
		v, err := memoryGasCost(&Memory{}, tt.size)
		if (err == ErrGasUintOverflow) != tt.overflow {
			t.Errorf("test %d: overflow mismatch: have %v, want %v", i, err != nil, tt.overflow)
		}
		if v != tt.cost {
			t.Errorf("test %d: gas cost mismatch: have %v, want %v", i, v, tt.cost)
		}
	}
}

// Expanding memory charges only the delta above what was already paid for.
func TestMemoryGasCostDelta(t *testing.T) {
	mem := NewMemory()
	defer mem.Free()

	first, err := memoryGasCost(mem, 64)
	if err != nil {
		t.Fatal(err)
	}
	if first != 6 {
		t.Fatalf("first expansion cost = %d, want 6", first)
	}
	mem.Resize(64)

	// Growing to the same size again is free.
	again, err := memoryGasCost(mem, 64)
	if err != nil {
		t.Fatal(err)
	}
	if again != 0 {
		t.Fatalf("no-op expansion cost = %d, want 0", again)
	}

	// Growing by one more word costs the difference only.
	delta, err := memoryGasCost(mem, 96)
	if err != nil {
		t.Fatal(err)
	}
	if delta != 3 {
		t.Fatalf("delta expansion cost = %d, want 3", delta)
	}
}
