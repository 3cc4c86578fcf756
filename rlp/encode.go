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

// Package rlp implements the canonical RLP encoding subset used for
// authorization signing payloads: unsigned integers, byte strings and lists
// of already-encoded items.
package rlp

import "encoding/binary"

// EncodeUint64 returns the canonical RLP encoding of v.
// Zero encodes as the empty string (0x80).
func EncodeUint64(v uint64) []byte {
	switch {
	case v == 0:
		return []byte{0x80}
	case v < 0x80:
		return []byte{byte(v)}
	default:
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], v)
		i := 0
		for buf[i] == 0 {
			i++
		}
		b := buf[i:]
		return append([]byte{0x80 + byte(len(b))}, b...)
	}
}

// EncodeString returns the RLP encoding of b as a byte string.
func EncodeString(b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return []byte{b[0]}
	}
	return append(encodeLength(len(b), 0x80), b...)
}

// EncodeList concatenates the already-encoded items and wraps them in a
// list header.
func EncodeList(items ...[]byte) []byte {
	var payload []byte
	for _, item := range items {
		payload = append(payload, item...)
	}
	return append(encodeLength(len(payload), 0xc0), payload...)
}

func encodeLength(n int, offset byte) []byte {
	if n <= 55 {
		return []byte{offset + byte(n)}
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	i := 0
	for buf[i] == 0 {
		i++
	}
	b := buf[i:]
	return append([]byte{offset + 55 + byte(len(b))}, b...)
}
