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

package core

import (
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/fvm-actors/go-evm/common"
	"github.com/fvm-actors/go-evm/core/state"
	"github.com/fvm-actors/go-evm/core/types"
	"github.com/fvm-actors/go-evm/core/vm"
	"github.com/fvm-actors/go-evm/crypto"
	"github.com/fvm-actors/go-evm/params"
)

const testChainID = 314

var (
	caller       = common.HexToAddress("0x00000000000000000000000000000000deadbeef")
	delegateAddr = common.HexToAddress("0x00000000000000000000000000000000000000dd")
)

// Delegate contract: store 0x2a at slot 0 and return it as one word.
var delegateCode = []byte{
	0x60, 0x2a, // PUSH1 0x2a
	0x60, 0x00, // PUSH1 0
	0x55,       // SSTORE
	0x60, 0x2a, // PUSH1 0x2a
	0x60, 0x00, // PUSH1 0
	0x52,       // MSTORE
	0x60, 0x20, // PUSH1 32
	0x60, 0x00, // PUSH1 0
	0xf3, // RETURN
}

func newTestEnv() (*vm.EVM, *state.StateDB) {
	statedb := state.NewStateDB()
	statedb.CreateAccount(caller)
	statedb.CreateAccount(delegateAddr)
	statedb.SetCode(delegateAddr, delegateCode)
	return vm.NewEVM(statedb, testChainID), statedb
}

// signedAuth returns a tuple signed by key delegating the key's account to
// delegate.
func signedAuth(t *testing.T, key *ecdsa.PrivateKey, chainID uint64, delegate common.Address, nonce uint64) types.Authorization {
	t.Helper()
	auth, err := types.SignAuthorization(key, types.Authorization{
		ChainID: chainID,
		Address: delegate,
		Nonce:   nonce,
	})
	require.NoError(t, err)
	return auth
}

func newKey(t *testing.T) (*ecdsa.PrivateKey, common.Address) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key, crypto.PubkeyToAddress(key.PublicKey)
}

func TestIntrinsicGas(t *testing.T) {
	require.Equal(t, params.TxGas, IntrinsicGas(0))
	require.Equal(t, params.TxGas+3*params.TxAuthTupleGas, IntrinsicGas(3))
}

func TestIntrinsicGasChargedUpFront(t *testing.T) {
	evm, statedb := newTestEnv()
	key, authority := newKey(t)
	p := &types.ApplyAndCallParams{
		List: []types.Authorization{signedAuth(t, key, testChainID, delegateAddr, 0)},
		Call: ApplyCallTo(authority),
	}

	_, _, err := ApplyAndCall(evm, caller, p, IntrinsicGas(1)-1)
	require.ErrorIs(t, err, ErrIntrinsicGas)

	// Nothing was committed.
	_, ok := statedb.GetDelegation(authority)
	require.False(t, ok)
	require.Zero(t, statedb.GetAuthNonce(authority))
}

// ApplyCallTo builds a plain valueless call to the given address.
func ApplyCallTo(to common.Address) types.ApplyCall {
	return types.ApplyCall{To: to, Value: new(big.Int)}
}

func TestTupleCap(t *testing.T) {
	evm, _ := newTestEnv()

	junk := func(n int) []types.Authorization {
		list := make([]types.Authorization, n)
		for i := range list {
			list[i] = types.Authorization{
				ChainID: testChainID,
				Nonce:   uint64(i),
				V:       0,
				R:       *uint256.NewInt(1),
				S:       *uint256.NewInt(1),
			}
		}
		return list
	}

	p := &types.ApplyAndCallParams{List: junk(params.MaxAuthorizationTuples + 1), Call: ApplyCallTo(delegateAddr)}
	_, _, err := ApplyAndCall(evm, caller, p, 10_000_000)
	require.ErrorIs(t, err, ErrTooManyAuthorizations)

	// Exactly at the cap is accepted.
	p = &types.ApplyAndCallParams{List: junk(params.MaxAuthorizationTuples), Call: ApplyCallTo(delegateAddr)}
	result, report, err := ApplyAndCall(evm, caller, p, 10_000_000)
	require.NoError(t, err)
	require.EqualValues(t, types.ApplyAndCallStatusSuccess, result.Status)
	require.Len(t, report.Outcomes, params.MaxAuthorizationTuples)
}

func TestDuplicateAuthorityRejected(t *testing.T) {
	evm, statedb := newTestEnv()
	key, authority := newKey(t)

	p := &types.ApplyAndCallParams{
		List: []types.Authorization{
			signedAuth(t, key, testChainID, delegateAddr, 0),
			signedAuth(t, key, testChainID, delegateAddr, 1),
		},
		Call: ApplyCallTo(authority),
	}
	_, _, err := ApplyAndCall(evm, caller, p, 10_000_000)
	require.ErrorIs(t, err, ErrDuplicateAuthority)

	// The first tuple was valid, but a duplicate rejects the whole request
	// before anything is committed.
	_, ok := statedb.GetDelegation(authority)
	require.False(t, ok)
	require.Zero(t, statedb.GetAuthNonce(authority))
}

func TestApplyAndCallSuccess(t *testing.T) {
	evm, statedb := newTestEnv()
	key, authority := newKey(t)

	p := &types.ApplyAndCallParams{
		List: []types.Authorization{signedAuth(t, key, testChainID, delegateAddr, 0)},
		Call: ApplyCallTo(authority),
	}
	result, report, err := ApplyAndCall(evm, caller, p, 10_000_000)
	require.NoError(t, err)
	require.EqualValues(t, types.ApplyAndCallStatusSuccess, result.Status)

	// The call ran the delegate's code...
	want := make([]byte, 32)
	want[31] = 0x2a
	require.Equal(t, want, result.Output)

	// ...in the authority's storage context.
	require.Equal(t, common.BytesToHash([]byte{0x2a}), statedb.GetState(authority, common.Hash{}))
	require.Equal(t, common.Hash{}, statedb.GetState(delegateAddr, common.Hash{}))

	got, ok := statedb.GetDelegation(authority)
	require.True(t, ok)
	require.Equal(t, delegateAddr, got)
	require.EqualValues(t, 1, statedb.GetAuthNonce(authority))

	require.Len(t, report.Outcomes, 1)
	require.Equal(t, TupleApplied, report.Outcomes[0].Status)
	require.Equal(t, authority, report.Outcomes[0].Authority)
	require.Equal(t, IntrinsicGas(1), report.IntrinsicGas)
	require.Greater(t, report.GasUsed, report.IntrinsicGas)
}

func TestChainIDValidation(t *testing.T) {
	evm, statedb := newTestEnv()
	wrongKey, wrongAuthority := newKey(t)
	zeroKey, zeroAuthority := newKey(t)

	p := &types.ApplyAndCallParams{
		List: []types.Authorization{
			signedAuth(t, wrongKey, 999, delegateAddr, 0), // mismatch, skipped
			signedAuth(t, zeroKey, 0, delegateAddr, 0),    // chain id 0 always applies
		},
		Call: ApplyCallTo(delegateAddr),
	}
	_, report, err := ApplyAndCall(evm, caller, p, 10_000_000)
	require.NoError(t, err)

	require.Equal(t, TupleSkippedChainIDMismatch, report.Outcomes[0].Status)
	require.Equal(t, TupleApplied, report.Outcomes[1].Status)

	_, ok := statedb.GetDelegation(wrongAuthority)
	require.False(t, ok)
	got, ok := statedb.GetDelegation(zeroAuthority)
	require.True(t, ok)
	require.Equal(t, delegateAddr, got)
}

func TestInvalidSignatureSkipped(t *testing.T) {
	evm, statedb := newTestEnv()
	key, authority := newKey(t)

	bad := signedAuth(t, key, testChainID, delegateAddr, 0)
	bad.V = 5 // out of range

	p := &types.ApplyAndCallParams{
		List: []types.Authorization{bad},
		Call: ApplyCallTo(delegateAddr),
	}
	result, report, err := ApplyAndCall(evm, caller, p, 10_000_000)
	require.NoError(t, err)
	require.EqualValues(t, types.ApplyAndCallStatusSuccess, result.Status)
	require.Equal(t, TupleSkippedInvalidSignature, report.Outcomes[0].Status)
	require.Equal(t, common.Address{}, report.Outcomes[0].Authority)

	_, ok := statedb.GetDelegation(authority)
	require.False(t, ok)
}

func TestNonceMismatchSkipped(t *testing.T) {
	evm, statedb := newTestEnv()
	key, authority := newKey(t)

	p := &types.ApplyAndCallParams{
		List: []types.Authorization{signedAuth(t, key, testChainID, delegateAddr, 5)},
		Call: ApplyCallTo(delegateAddr),
	}
	_, report, err := ApplyAndCall(evm, caller, p, 10_000_000)
	require.NoError(t, err)
	require.Equal(t, TupleSkippedNonceMismatch, report.Outcomes[0].Status)

	_, ok := statedb.GetDelegation(authority)
	require.False(t, ok)
	require.Zero(t, statedb.GetAuthNonce(authority))
}

func TestAuthorityWithCodeSkipped(t *testing.T) {
	evm, statedb := newTestEnv()
	key, authority := newKey(t)
	statedb.CreateAccount(authority)
	statedb.SetCode(authority, []byte{0xfe})

	p := &types.ApplyAndCallParams{
		List: []types.Authorization{signedAuth(t, key, testChainID, delegateAddr, 0)},
		Call: ApplyCallTo(delegateAddr),
	}
	_, report, err := ApplyAndCall(evm, caller, p, 10_000_000)
	require.NoError(t, err)
	require.Equal(t, TupleSkippedAuthorityHasCode, report.Outcomes[0].Status)
	require.Zero(t, statedb.GetAuthNonce(authority))
}

// Delegation-formatted code does not block re-delegation.
func TestDelegatedAuthorityMayRedelegate(t *testing.T) {
	evm, statedb := newTestEnv()
	key, authority := newKey(t)
	statedb.CreateAccount(authority)
	statedb.SetCode(authority, types.AddressToDelegation(delegateAddr))

	p := &types.ApplyAndCallParams{
		List: []types.Authorization{signedAuth(t, key, testChainID, delegateAddr, 0)},
		Call: ApplyCallTo(delegateAddr),
	}
	_, report, err := ApplyAndCall(evm, caller, p, 10_000_000)
	require.NoError(t, err)
	require.Equal(t, TupleApplied, report.Outcomes[0].Status)
	require.EqualValues(t, 1, statedb.GetAuthNonce(authority))
}

func TestZeroAddressClearsDelegation(t *testing.T) {
	evm, statedb := newTestEnv()
	key, authority := newKey(t)

	p := &types.ApplyAndCallParams{
		List: []types.Authorization{signedAuth(t, key, testChainID, delegateAddr, 0)},
		Call: ApplyCallTo(delegateAddr),
	}
	_, _, err := ApplyAndCall(evm, caller, p, 10_000_000)
	require.NoError(t, err)
	_, ok := statedb.GetDelegation(authority)
	require.True(t, ok)

	p = &types.ApplyAndCallParams{
		List: []types.Authorization{signedAuth(t, key, testChainID, common.Address{}, 1)},
		Call: ApplyCallTo(delegateAddr),
	}
	_, report, err := ApplyAndCall(evm, caller, p, 10_000_000)
	require.NoError(t, err)
	require.Equal(t, TupleApplied, report.Outcomes[0].Status)

	_, ok = statedb.GetDelegation(authority)
	require.False(t, ok)
	require.EqualValues(t, 2, statedb.GetAuthNonce(authority))
}

// A failing call consumes its gas but does not roll back committed tuples:
// each tuple is its own state transition.
func TestFailedCallKeepsCommittedTuples(t *testing.T) {
	evm, statedb := newTestEnv()
	key, authority := newKey(t)

	target := common.HexToAddress("0x00000000000000000000000000000000000000ff")
	statedb.CreateAccount(target)
	statedb.SetCode(target, []byte{0xfe}) // INVALID

	p := &types.ApplyAndCallParams{
		List: []types.Authorization{signedAuth(t, key, testChainID, delegateAddr, 0)},
		Call: ApplyCallTo(target),
	}
	gas := uint64(100_000)
	result, report, err := ApplyAndCall(evm, caller, p, gas)
	require.NoError(t, err)
	require.EqualValues(t, types.ApplyAndCallStatusFailed, result.Status)
	require.Nil(t, result.Output)

	// All gas was consumed.
	require.Equal(t, gas, report.GasUsed)

	// The tuple survived the failed call.
	got, ok := statedb.GetDelegation(authority)
	require.True(t, ok)
	require.Equal(t, delegateAddr, got)
	require.EqualValues(t, 1, statedb.GetAuthNonce(authority))
}

func TestRevertedCall(t *testing.T) {
	evm, statedb := newTestEnv()

	target := common.HexToAddress("0x00000000000000000000000000000000000000ff")
	statedb.CreateAccount(target)
	statedb.SetCode(target, []byte{
		0x60, 0x42, // PUSH1 0x42
		0x60, 0x00, // PUSH1 0
		0x52,       // MSTORE
		0x60, 0x20, // PUSH1 32
		0x60, 0x00, // PUSH1 0
		0xfd, // REVERT
	})

	p := &types.ApplyAndCallParams{Call: ApplyCallTo(target)}
	gas := uint64(100_000)
	result, report, err := ApplyAndCall(evm, caller, p, gas)
	require.NoError(t, err)
	require.EqualValues(t, types.ApplyAndCallStatusReverted, result.Status)

	want := make([]byte, 32)
	want[31] = 0x42
	require.Equal(t, want, result.Output)

	// A revert refunds the remaining gas.
	require.Less(t, report.GasUsed, gas)
}

func TestCallValueTransferred(t *testing.T) {
	evm, statedb := newTestEnv()
	statedb.AddBalance(caller, uint256.NewInt(100))

	target := common.HexToAddress("0x00000000000000000000000000000000000000ff")
	p := &types.ApplyAndCallParams{
		Call: types.ApplyCall{To: target, Value: big.NewInt(40)},
	}
	result, _, err := ApplyAndCall(evm, caller, p, 100_000)
	require.NoError(t, err)
	require.EqualValues(t, types.ApplyAndCallStatusSuccess, result.Status)
	require.True(t, statedb.GetBalance(target).Eq(uint256.NewInt(40)))
	require.True(t, statedb.GetBalance(caller).Eq(uint256.NewInt(60)))
}

func TestCallValueInsufficientFunds(t *testing.T) {
	evm, statedb := newTestEnv()
	key, authority := newKey(t)

	p := &types.ApplyAndCallParams{
		List: []types.Authorization{signedAuth(t, key, testChainID, delegateAddr, 0)},
		Call: types.ApplyCall{To: delegateAddr, Value: big.NewInt(1)},
	}
	_, _, err := ApplyAndCall(evm, caller, p, 10_000_000)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	// Tuples were already committed when the transfer failed.
	require.EqualValues(t, 1, statedb.GetAuthNonce(authority))
}

func TestCallValueOverflowsWord(t *testing.T) {
	evm, _ := newTestEnv()

	// 2^256 does not fit a 256-bit word.
	value := new(big.Int).Lsh(big.NewInt(1), 256)
	p := &types.ApplyAndCallParams{
		Call: types.ApplyCall{To: delegateAddr, Value: value},
	}
	_, _, err := ApplyAndCall(evm, caller, p, 10_000_000)
	require.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestEmptyRequestGas(t *testing.T) {
	evm, _ := newTestEnv()

	// Valueless call to a missing account costs nothing beyond the base.
	target := common.HexToAddress("0x0000000000000000000000000000000000001234")
	result, report, err := ApplyAndCall(evm, caller, &types.ApplyAndCallParams{Call: ApplyCallTo(target)}, 100_000)
	require.NoError(t, err)
	require.EqualValues(t, types.ApplyAndCallStatusSuccess, result.Status)
	require.Equal(t, params.TxGas, report.GasUsed)
}

func TestTupleStatusString(t *testing.T) {
	for status, want := range map[TupleStatus]string{
		TupleApplied:                 "applied",
		TupleSkippedInvalidSignature: "skipped-invalid-signature",
		TupleSkippedChainIDMismatch:  "skipped-chain-id-mismatch",
		TupleSkippedNonceMismatch:    "skipped-nonce-mismatch",
		TupleSkippedAuthorityHasCode: "skipped-authority-has-code",
		TupleStatus(99):              "unknown",
	} {
		require.Equal(t, want, status.String())
	}
}
