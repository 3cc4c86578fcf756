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

// Package core implements the apply-and-call processor: batch application of
// signed delegation authorizations followed by a single EVM call.
package core

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/holiman/uint256"
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"

	"github.com/fvm-actors/go-evm/common"
	"github.com/fvm-actors/go-evm/core/types"
	"github.com/fvm-actors/go-evm/core/vm"
	"github.com/fvm-actors/go-evm/params"
)

var log = logging.Logger("applycall")

// TupleStatus tags the outcome of a single authorization tuple. Tuples are
// best-effort: an invalid one is skipped, it never aborts the batch.
type TupleStatus uint8

const (
	TupleApplied TupleStatus = iota
	TupleSkippedInvalidSignature
	TupleSkippedChainIDMismatch
	TupleSkippedNonceMismatch
	TupleSkippedAuthorityHasCode
)

// String implements fmt.Stringer.
func (s TupleStatus) String() string {
	switch s {
	case TupleApplied:
		return "applied"
	case TupleSkippedInvalidSignature:
		return "skipped-invalid-signature"
	case TupleSkippedChainIDMismatch:
		return "skipped-chain-id-mismatch"
	case TupleSkippedNonceMismatch:
		return "skipped-nonce-mismatch"
	case TupleSkippedAuthorityHasCode:
		return "skipped-authority-has-code"
	default:
		return "unknown"
	}
}

// TupleOutcome reports what happened to one tuple of the batch.
type TupleOutcome struct {
	Index     int
	Authority common.Address // zero when signature recovery failed
	Status    TupleStatus
}

// ApplyAndCallReport collects the per-tuple outcomes and the gas accounting of
// an apply-and-call request.
type ApplyAndCallReport struct {
	Outcomes     []TupleOutcome
	IntrinsicGas uint64
	GasUsed      uint64
}

// IntrinsicGas computes the fixed cost of a request shape: a base cost plus a
// per-tuple cost, independent of execution outcome.
func IntrinsicGas(tuples int) uint64 {
	return params.TxGas + params.TxAuthTupleGas*uint64(tuples)
}

// ApplyAndCall atomically applies a batch of delegation authorizations and
// then executes the accompanying call against the delegation-resolved code of
// the target.
//
// Batch-level checks (tuple cap, intrinsic gas, duplicate authorities) reject
// the whole request before any state is touched. Per-tuple failures are
// non-fatal: the offending tuple is skipped and the rest of the batch
// proceeds. A failing call does not roll back committed tuples; each tuple is
// a logically separate state transition.
func ApplyAndCall(evm *vm.EVM, caller common.Address, p *types.ApplyAndCallParams, gas uint64) (*types.ApplyAndCallResult, *ApplyAndCallReport, error) {
	host := evm.Host

	// Tuple cap, before anything else.
	if len(p.List) > params.MaxAuthorizationTuples {
		return nil, nil, xerrors.Errorf("%d tuples: %w", len(p.List), ErrTooManyAuthorizations)
	}

	// Charge intrinsic gas before any tuple is validated, so an under-funded
	// batch fails fast without partial validation work.
	igas := IntrinsicGas(len(p.List))
	if gas < igas {
		return nil, nil, xerrors.Errorf("have %d, want %d: %w", gas, igas, ErrIntrinsicGas)
	}
	gas -= igas

	report := &ApplyAndCallReport{IntrinsicGas: igas}

	// First pass: recover every authority and reject duplicates. No state is
	// mutated here, so a duplicate still rejects the request outright.
	type recovered struct {
		authority common.Address
		status    TupleStatus
	}
	seen := mapset.NewThreadUnsafeSet[common.Address]()
	auths := make([]recovered, len(p.List))
	for i := range p.List {
		tuple := &p.List[i]
		if tuple.ChainID != 0 && tuple.ChainID != evm.ChainID {
			auths[i] = recovered{status: TupleSkippedChainIDMismatch}
			continue
		}
		authority, err := tuple.Authority()
		if err != nil {
			log.Debugw("authorization signature rejected", "index", i, "err", err)
			auths[i] = recovered{status: TupleSkippedInvalidSignature}
			continue
		}
		if !seen.Add(authority) {
			return nil, nil, xerrors.Errorf("tuple %d authority %s: %w", i, authority, ErrDuplicateAuthority)
		}
		auths[i] = recovered{authority: authority, status: TupleApplied}
	}

	// Second pass: commit the valid tuples in list order.
	for i := range p.List {
		tuple := &p.List[i]
		outcome := TupleOutcome{Index: i, Authority: auths[i].authority, Status: auths[i].status}
		if outcome.Status == TupleApplied {
			outcome.Status = applyAuthorization(host, tuple, auths[i].authority)
		}
		if outcome.Status == TupleApplied {
			log.Debugw("delegation applied", "authority", outcome.Authority, "delegate", tuple.Address)
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	// Execute the call. Delegation resolution on the target is the EVM's
	// concern; a failing call does not undo the tuples committed above.
	value := new(uint256.Int)
	if p.Call.Value != nil {
		if overflow := value.SetFromBig(p.Call.Value); overflow {
			return nil, nil, xerrors.Errorf("call value out of range: %w", ErrInsufficientFunds)
		}
	}
	ret, leftover, err := evm.Call(vm.AccountRef(caller), p.Call.To, p.Call.Input, gas, value)
	report.GasUsed = igas + gas - leftover

	result := &types.ApplyAndCallResult{Output: ret}
	switch {
	case err == nil:
		result.Status = types.ApplyAndCallStatusSuccess
	case err == vm.ErrExecutionReverted:
		result.Status = types.ApplyAndCallStatusReverted
	case err == vm.ErrInsufficientBalance:
		return nil, nil, xerrors.Errorf("call value %s: %w", p.Call.Value, ErrInsufficientFunds)
	default:
		log.Debugw("call failed", "to", p.Call.To, "err", err)
		result.Status = types.ApplyAndCallStatusFailed
		result.Output = nil
	}
	return result, report, nil
}

// applyAuthorization commits a single recovered tuple: install (or clear) the
// delegation and bump the authority's replay counter.
func applyAuthorization(host vm.Host, tuple *types.Authorization, authority common.Address) TupleStatus {
	// An authority that already carries contract code cannot delegate; only
	// fresh accounts and accounts whose code is itself a delegation may.
	if code := host.GetCode(authority); len(code) > 0 {
		if _, ok := types.ParseDelegation(code); !ok {
			return TupleSkippedAuthorityHasCode
		}
	}
	if host.GetAuthNonce(authority) != tuple.Nonce {
		return TupleSkippedNonceMismatch
	}
	if tuple.Address == (common.Address{}) {
		// The zero address is the clearing sentinel.
		host.ClearDelegation(authority)
	} else {
		host.SetDelegation(authority, tuple.Address)
	}
	host.IncrementAuthNonce(authority)
	return TupleApplied
}
