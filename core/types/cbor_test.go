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
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/fvm-actors/go-evm/common"
)

// Wire-level vector: one tuple plus a call, hand-assembled from the CBOR
// tuple encoding. Every field is positional; no map keys appear on the wire.
func TestApplyAndCallParamsEncoding(t *testing.T) {
	params := &ApplyAndCallParams{
		List: []Authorization{{
			ChainID: 314,
			Address: common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
			Nonce:   7,
			V:       1,
			R:       *new(uint256.Int).SetBytes(bytes.Repeat([]byte{0x11}, 32)),
			S:       *new(uint256.Int).SetBytes(bytes.Repeat([]byte{0x22}, 32)),
		}},
		Call: ApplyCall{
			To:    common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"),
			Value: big.NewInt(0x0102),
			Input: []byte{0x03, 0x04},
		},
	}

	want := common.FromHex(
		"82" + // params: array(2)
			"81" + // authorization list: array(1)
			"86" + // tuple: array(6)
			"19013a" + // chain_id = 314
			"54" + strings.Repeat("aa", 20) + // delegate address
			"07" + // nonce
			"01" + // y-parity
			"5820" + strings.Repeat("11", 32) + // r
			"5820" + strings.Repeat("22", 32) + // s
			"83" + // call: array(3)
			"54" + strings.Repeat("bb", 20) + // to
			"420102" + // value, big-endian bytes
			"420304", // input
	)

	var buf bytes.Buffer
	require.NoError(t, params.MarshalCBOR(&buf))
	require.Equal(t, want, buf.Bytes())

	var decoded ApplyAndCallParams
	require.NoError(t, decoded.UnmarshalCBOR(bytes.NewReader(buf.Bytes())))
	require.Equal(t, params.List, decoded.List)
	require.Equal(t, params.Call.To, decoded.Call.To)
	require.Equal(t, 0, params.Call.Value.Cmp(decoded.Call.Value))
	require.Equal(t, params.Call.Input, decoded.Call.Input)
}

func TestApplyAndCallParamsEmptyList(t *testing.T) {
	params := &ApplyAndCallParams{
		Call: ApplyCall{
			To:    common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"),
			Value: new(big.Int),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, params.MarshalCBOR(&buf))

	var decoded ApplyAndCallParams
	require.NoError(t, decoded.UnmarshalCBOR(bytes.NewReader(buf.Bytes())))
	require.Empty(t, decoded.List)
	require.Equal(t, params.Call.To, decoded.Call.To)
	require.Equal(t, 0, decoded.Call.Value.Sign())
}

func TestApplyAndCallResultEncoding(t *testing.T) {
	result := &ApplyAndCallResult{
		Status: ApplyAndCallStatusReverted,
		Output: []byte{0xde, 0xad},
	}

	var buf bytes.Buffer
	require.NoError(t, result.MarshalCBOR(&buf))
	require.Equal(t, common.FromHex("820142dead"), buf.Bytes())

	var decoded ApplyAndCallResult
	require.NoError(t, decoded.UnmarshalCBOR(bytes.NewReader(buf.Bytes())))
	require.Equal(t, result.Status, decoded.Status)
	require.Equal(t, result.Output, decoded.Output)
}

func TestApplyAndCallResultNoOutput(t *testing.T) {
	result := &ApplyAndCallResult{Status: ApplyAndCallStatusSuccess}

	var buf bytes.Buffer
	require.NoError(t, result.MarshalCBOR(&buf))
	require.Equal(t, common.FromHex("820040"), buf.Bytes())
}

func TestUnmarshalRejectsWrongAddressLength(t *testing.T) {
	// Tuple with a 19-byte address field.
	enc := common.FromHex("86" + "19013a" + "53" + strings.Repeat("aa", 19) + "07" + "01" +
		"5820" + strings.Repeat("11", 32) + "5820" + strings.Repeat("22", 32))

	var auth Authorization
	err := auth.UnmarshalCBOR(bytes.NewReader(enc))
	require.Error(t, err)
}

func TestUnmarshalRejectsWrongArity(t *testing.T) {
	// array(5) where a 6-field tuple is expected
	enc := common.FromHex("85" + "19013a" + "54" + strings.Repeat("aa", 20) + "07" + "01" +
		"5820" + strings.Repeat("11", 32))

	var auth Authorization
	err := auth.UnmarshalCBOR(bytes.NewReader(enc))
	require.Error(t, err)
}

func TestAuthorizationRoundTrip(t *testing.T) {
	auth := Authorization{
		ChainID: 0,
		Address: common.Address{}, // clearing sentinel
		Nonce:   0,
		V:       0,
		R:       *uint256.NewInt(1),
		S:       *uint256.NewInt(2),
	}

	var buf bytes.Buffer
	require.NoError(t, auth.MarshalCBOR(&buf))

	var decoded Authorization
	require.NoError(t, decoded.UnmarshalCBOR(bytes.NewReader(buf.Bytes())))
	require.Equal(t, auth, decoded)
}
