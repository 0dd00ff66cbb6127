// Package uint256 provides a fixed-width 256-bit unsigned integer used for proof-of-work targets.
package uint256

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Size is the width of a Uint256 in bytes.
const Size = 32

// ErrUnderflow is returned by CheckedSub when the subtrahend is larger than the minuend.
var ErrUnderflow = errors.New("uint256 subtraction underflow")

// Uint256 is a big-endian 256-bit unsigned integer. The zero value is 0.
type Uint256 [Size]byte

var (
	// Zero is the additive identity.
	Zero = Uint256{}
	// One is the value 1.
	One = FromUint64(1)
)

// FromUint64 places v in the low 8 bytes.
func FromUint64(v uint64) Uint256 {
	var u Uint256
	for i := 0; i < 8; i++ {
		u[Size-1-i] = byte(v >> (8 * i))
	}
	return u
}

// FromBytes wraps a 32-byte big-endian array.
func FromBytes(b [Size]byte) Uint256 {
	return Uint256(b)
}

// FromHex parses a big-endian hex string of at most 64 digits. An optional 0x prefix is accepted.
func FromHex(s string) (Uint256, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) > 2*Size {
		return Zero, fmt.Errorf("hex value %q exceeds 256 bits", s)
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Zero, fmt.Errorf("decode hex: %w", err)
	}
	var u Uint256
	copy(u[Size-len(raw):], raw)
	return u, nil
}

// FromBig converts a non-negative big.Int that fits in 256 bits.
func FromBig(v *big.Int) (Uint256, error) {
	if v == nil {
		return Zero, errors.New("nil big int")
	}
	if v.Sign() < 0 {
		return Zero, fmt.Errorf("negative value %s", v)
	}
	if v.BitLen() > 8*Size {
		return Zero, fmt.Errorf("value %s exceeds 256 bits", v)
	}
	var u Uint256
	v.FillBytes(u[:])
	return u, nil
}

// Max returns 2^256-1.
func Max() Uint256 {
	return Zero.Sub(One)
}

// Bytes returns the big-endian representation.
func (u Uint256) Bytes() [Size]byte {
	return u
}

// ToBig converts to a big.Int.
func (u Uint256) ToBig() *big.Int {
	return new(big.Int).SetBytes(u[:])
}

// IsZero reports whether u is 0.
func (u Uint256) IsZero() bool {
	return u == Zero
}

// Sub returns u - v modulo 2^256. When v > u the result wraps around; use CheckedSub to detect that.
func (u Uint256) Sub(v Uint256) Uint256 {
	var out Uint256
	var borrow int
	for i := Size - 1; i >= 0; i-- {
		d := int(u[i]) - int(v[i]) - borrow
		if d < 0 {
			d += 256
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = byte(d)
	}
	return out
}

// CheckedSub returns u - v or ErrUnderflow when v > u.
func (u Uint256) CheckedSub(v Uint256) (Uint256, error) {
	if u.Less(v) {
		return Zero, fmt.Errorf("%w: %s - %s", ErrUnderflow, u.Hex(), v.Hex())
	}
	return u.Sub(v), nil
}

// SaturatingSub returns u - v clamped at zero.
func (u Uint256) SaturatingSub(v Uint256) Uint256 {
	if u.Less(v) {
		return Zero
	}
	return u.Sub(v)
}

// Rsh returns u shifted right by n bits. Shifting by 256 or more yields zero.
func (u Uint256) Rsh(n uint) Uint256 {
	if n >= 8*Size {
		return Zero
	}
	if n == 0 {
		return u
	}
	byteShift := int(n / 8)
	bitShift := n % 8

	var out Uint256
	for i := Size - 1; i >= byteShift; i-- {
		src := i - byteShift
		out[i] = u[src] >> bitShift
		if bitShift > 0 && src > 0 {
			out[i] |= u[src-1] << (8 - bitShift)
		}
	}
	return out
}

// Cmp compares u and v and returns -1, 0 or +1.
func (u Uint256) Cmp(v Uint256) int {
	for i := 0; i < Size; i++ {
		switch {
		case u[i] < v[i]:
			return -1
		case u[i] > v[i]:
			return 1
		}
	}
	return 0
}

// Less reports whether u < v.
func (u Uint256) Less(v Uint256) bool {
	return u.Cmp(v) < 0
}

// Equal reports whether u == v.
func (u Uint256) Equal(v Uint256) bool {
	return u == v
}

// Hex returns the full 64-digit big-endian hex encoding.
func (u Uint256) Hex() string {
	return hex.EncodeToString(u[:])
}

// String returns an abbreviated form showing the first and last four bytes.
func (u Uint256) String() string {
	return fmt.Sprintf("0x%s..%s", hex.EncodeToString(u[:4]), hex.EncodeToString(u[Size-4:]))
}
