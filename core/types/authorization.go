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
	"crypto/ecdsa"
	"errors"

	"github.com/holiman/uint256"

	"github.com/fvm-actors/go-evm/common"
	"github.com/fvm-actors/go-evm/crypto"
	"github.com/fvm-actors/go-evm/rlp"
)

// DelegationPrefix is used by code to denote the account is delegating to
// another account.
var DelegationPrefix = []byte{0xef, 0x01, 0x00}

// ErrInvalidSig is returned by Authority when the signature values fail the
// range and malleability checks.
var ErrInvalidSig = errors.New("invalid authorization v, r, s values")

// authorizationMagic is the domain separation byte prepended to the RLP
// payload before hashing, so an authorization signature can never collide
// with a transaction signature.
const authorizationMagic = 0x05

// ParseDelegation tries to parse the address from a delegation slice.
func ParseDelegation(b []byte) (common.Address, bool) {
	if len(b) != 23 || !bytes.HasPrefix(b, DelegationPrefix) {
		return common.Address{}, false
	}
	return common.BytesToAddress(b[len(DelegationPrefix):]), true
}

// AddressToDelegation adds the delegation prefix to the specified address.
func AddressToDelegation(addr common.Address) []byte {
	return append(DelegationPrefix, addr.Bytes()...)
}

// Authorization is a signed statement from an account to install a delegation
// to the given address at its own address. The zero address is the clearing
// sentinel: applying it removes any delegation instead of installing one.
type Authorization struct {
	ChainID uint64
	Address common.Address
	Nonce   uint64
	V       uint8 // y-parity of the signature
	R       uint256.Int
	S       uint256.Int
}

// SignAuthorization creates a signed authorization.
func SignAuthorization(prv *ecdsa.PrivateKey, auth Authorization) (Authorization, error) {
	sighash := auth.SigHash()
	sig, err := crypto.Sign(sighash[:], prv)
	if err != nil {
		return Authorization{}, err
	}
	r := new(uint256.Int).SetBytes(sig[:32])
	s := new(uint256.Int).SetBytes(sig[32:64])
	return Authorization{
		ChainID: auth.ChainID,
		Address: auth.Address,
		Nonce:   auth.Nonce,
		V:       sig[64],
		R:       *r,
		S:       *s,
	}, nil
}

// SigHash returns the hash the authority signed: keccak256 of the magic byte
// followed by the RLP list of chain id, delegate address and nonce.
func (a *Authorization) SigHash() common.Hash {
	payload := rlp.EncodeList(
		rlp.EncodeUint64(a.ChainID),
		rlp.EncodeString(a.Address.Bytes()),
		rlp.EncodeUint64(a.Nonce),
	)
	return crypto.Keccak256Hash([]byte{authorizationMagic}, payload)
}

// Authority recovers the authorizing account of an authorization.
func (a *Authorization) Authority() (common.Address, error) {
	sighash := a.SigHash()
	if !crypto.ValidateSignatureValues(a.V, a.R.ToBig(), a.S.ToBig(), true) {
		return common.Address{}, ErrInvalidSig
	}
	// encode the signature in uncompressed format
	var sig [crypto.SignatureLength]byte
	a.R.WriteToSlice(sig[:32])
	a.S.WriteToSlice(sig[32:64])
	sig[64] = a.V
	// recover the public key from the signature
	pub, err := crypto.Ecrecover(sighash[:], sig[:])
	if err != nil {
		return common.Address{}, err
	}
	if len(pub) == 0 || pub[0] != 4 {
		return common.Address{}, errors.New("invalid public key")
	}
	var addr common.Address
	copy(addr[:], crypto.Keccak256(pub[1:])[12:])
	return addr, nil
}
