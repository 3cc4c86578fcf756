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

// Package params holds the protocol gas schedule and engine limits.
package params

const (
	TxGas uint64 = 21000 // Base intrinsic charge for an apply-and-call request.

	TxAuthTupleGas uint64 = 12500 // Per authorization tuple in an apply-and-call request.

	// MaxAuthorizationTuples caps the authorization list of a single
	// apply-and-call request. Longer lists are rejected outright, before
	// any tuple is validated.
	MaxAuthorizationTuples = 64

	QuadCoeffDiv    uint64 = 512  // Divisor for the quadratic particle of the memory cost equation.
	MemoryGas       uint64 = 3    // Times the address of the (highest referenced byte in memory + 1).
	CallCreateDepth uint64 = 1024 // Maximum depth of call/create stack.
	StackLimit      uint64 = 1024 // Maximum size of VM stack allowed.

	Keccak256Gas     uint64 = 30 // Once per KECCAK256 operation.
	Keccak256WordGas uint64 = 6  // Once per word of the KECCAK256 operation's data.
	CopyGas          uint64 = 3  // Multiplied by the number of copied 32-byte words (round up).
	LogGas           uint64 = 375
	LogDataGas       uint64 = 8
	LogTopicGas      uint64 = 375

	SloadGas         uint64 = 200
	SstoreSetGas     uint64 = 20000 // Once per SSTORE operation from clean zero.
	SstoreResetGas   uint64 = 5000  // Once per SSTORE operation from clean non-zero.
	SstoreClearGas   uint64 = 5000  // Once per SSTORE operation to a zero value.
	JumpdestGas      uint64 = 1
	CreateGas        uint64 = 32000
	CreateDataGas    uint64 = 200 // Per byte of deployed contract code.
	Create2Gas       uint64 = 32000
	SelfdestructGas  uint64 = 5000
	CreateBySelfdestructGas uint64 = 25000 // Paid when SELFDESTRUCT sends funds to a fresh account.
	CallGas          uint64 = 700
	CallValueTransferGas uint64 = 9000  // Paid for CALL when the value transfer is non-zero.
	CallNewAccountGas    uint64 = 25000 // Paid for CALL when the destination address didn't exist prior.
	CallStipend          uint64 = 2300  // Free gas given at beginning of call.
	BalanceGas           uint64 = 700
	ExtcodeSizeGas       uint64 = 700
	ExtcodeCopyBase      uint64 = 700
	ExtcodeHashGas       uint64 = 700
	ExpGas               uint64 = 10 // Once per EXP instruction.
	ExpByteGas           uint64 = 50 // Times ceil(log256(exponent)) for the EXP instruction.

	MaxCodeSize     = 24576           // Maximum bytecode a contract account may carry.
	MaxInitCodeSize = 2 * MaxCodeSize // Maximum initcode for a create.
	InitCodeWordGas uint64 = 2        // Once per word of the init code when creating a contract.

	// Precompile gas prices.

	EcrecoverGas        uint64 = 3000
	Sha256BaseGas       uint64 = 60
	Sha256PerWordGas    uint64 = 12
	IdentityBaseGas     uint64 = 15
	IdentityPerWordGas  uint64 = 3

	Bls12381G1AddGas          uint64 = 500   // Price for BLS12-381 elliptic curve G1 point addition.
	Bls12381G1MulGas          uint64 = 12000 // Price for BLS12-381 elliptic curve G1 point scalar multiplication.
	Bls12381G2AddGas          uint64 = 800   // Price for BLS12-381 elliptic curve G2 point addition.
	Bls12381G2MulGas          uint64 = 45000 // Price for BLS12-381 elliptic curve G2 point scalar multiplication.
	Bls12381PairingBaseGas    uint64 = 65000 // Base gas price for BLS12-381 elliptic curve pairing check.
	Bls12381PairingPerPairGas uint64 = 43000 // Per-point pair gas price for BLS12-381 elliptic curve pairing check.
	Bls12381MapG1Gas          uint64 = 5500  // Gas price for BLS12-381 mapping field element to G1 operation.
	Bls12381MapG2Gas          uint64 = 75000 // Gas price for BLS12-381 mapping field element to G2 operation.
)

// Bls12381MultiExpDiscountTable is the gas discount table for BLS12-381 G1 and
// G2 multi exponentiation operations.
var Bls12381MultiExpDiscountTable = [128]uint64{1200, 888, 764, 641, 594, 547, 500, 453, 438, 423, 408, 394, 379, 364, 349, 334, 330, 326, 322, 318, 314, 310, 306, 302, 298, 294, 289, 285, 281, 277, 273, 269, 268, 266, 265, 263, 262, 260, 259, 257, 256, 254, 253, 251, 250, 248, 247, 245, 244, 242, 241, 239, 238, 236, 235, 233, 232, 231, 229, 228, 226, 225, 223, 222, 221, 220, 219, 219, 218, 217, 216, 216, 215, 214, 213, 213, 212, 211, 211, 210, 209, 208, 208, 207, 206, 205, 205, 204, 203, 202, 202, 201, 200, 199, 199, 198, 197, 196, 196, 195, 194, 193, 193, 192, 191, 191, 190, 189, 188, 188, 187, 186, 185, 185, 184, 183, 182, 182, 181, 180, 179, 179, 178, 177, 176, 176, 175, 174}
