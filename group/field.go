package group

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"
)

// curveB is the short Weierstrass coefficient shared by the Pasta curves:
// both Pallas and Vesta are defined by y^2 = x^3 + 5 over their respective
// base fields.
var curveB = big.NewInt(5)

var (
	errWrongLength  = errors.New("group: encoding has wrong length")
	errOffCurve     = errors.New("group: point is not on the curve")
	errNonCanonical = errors.New("group: encoding is not canonical")
)

// affinePoint is a curve point in affine coordinates, parameterized at
// runtime by its base field modulus. Pallas and Vesta share this engine and
// differ only in which modulus plays which role, mirroring how the pair of
// curves forms a 2-cycle.
type affinePoint struct {
	x, y     *big.Int
	infinity bool
	mod      *big.Int
}

func newIdentity(mod *big.Int) *affinePoint {
	return &affinePoint{x: new(big.Int), y: new(big.Int), infinity: true, mod: mod}
}

func (a *affinePoint) clone() *affinePoint {
	return &affinePoint{
		x:        new(big.Int).Set(a.x),
		y:        new(big.Int).Set(a.y),
		infinity: a.infinity,
		mod:      a.mod,
	}
}

func (a *affinePoint) isOnCurve() bool {
	if a.infinity {
		return true
	}
	lhs := new(big.Int).Mul(a.y, a.y)
	lhs.Mod(lhs, a.mod)

	rhs := new(big.Int).Mul(a.x, a.x)
	rhs.Mul(rhs, a.x)
	rhs.Add(rhs, curveB)
	rhs.Mod(rhs, a.mod)

	return lhs.Cmp(rhs) == 0
}

// add implements complete affine point addition for short Weierstrass curves
// with a == 0, handling the identity and doubling cases explicitly.
func (a *affinePoint) add(b *affinePoint) *affinePoint {
	if a.infinity {
		return b.clone()
	}
	if b.infinity {
		return a.clone()
	}

	mod := a.mod
	if a.x.Cmp(b.x) == 0 {
		sum := new(big.Int).Add(a.y, b.y)
		sum.Mod(sum, mod)
		if sum.Sign() == 0 {
			return newIdentity(mod)
		}
		return a.double()
	}

	// lambda = (y2 - y1) / (x2 - x1)
	num := new(big.Int).Sub(b.y, a.y)
	num.Mod(num, mod)
	den := new(big.Int).Sub(b.x, a.x)
	den.Mod(den, mod)
	den.ModInverse(den, mod)
	lambda := num.Mul(num, den)
	lambda.Mod(lambda, mod)

	return a.combine(b.x, lambda)
}

func (a *affinePoint) double() *affinePoint {
	if a.infinity || a.y.Sign() == 0 {
		return newIdentity(a.mod)
	}
	mod := a.mod

	// lambda = 3x^2 / 2y
	num := new(big.Int).Mul(a.x, a.x)
	num.Mul(num, big.NewInt(3))
	num.Mod(num, mod)
	den := new(big.Int).Add(a.y, a.y)
	den.ModInverse(den, mod)
	lambda := num.Mul(num, den)
	lambda.Mod(lambda, mod)

	return a.combine(a.x, lambda)
}

// combine finishes an addition/doubling given the slope lambda and the
// second point's x-coordinate (equal to a.x when doubling).
func (a *affinePoint) combine(bx, lambda *big.Int) *affinePoint {
	mod := a.mod

	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, a.x)
	x3.Sub(x3, bx)
	x3.Mod(x3, mod)

	y3 := new(big.Int).Sub(a.x, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, a.y)
	y3.Mod(y3, mod)

	return &affinePoint{x: x3, y: y3, mod: mod}
}

func (a *affinePoint) negate() *affinePoint {
	if a.infinity {
		return newIdentity(a.mod)
	}
	y := new(big.Int).Neg(a.y)
	y.Mod(y, a.mod)
	return &affinePoint{x: new(big.Int).Set(a.x), y: y, mod: a.mod}
}

func (a *affinePoint) equal(b *affinePoint) bool {
	if a.infinity || b.infinity {
		return a.infinity && b.infinity
	}
	return a.x.Cmp(b.x) == 0 && a.y.Cmp(b.y) == 0
}

// scalarMul computes k*a using a fixed-iteration Montgomery ladder, so the
// sequence of point operations performed does not depend on the bits of k.
// math/big's own arithmetic is not formally constant-time, but the ladder
// shape avoids branching on secret bits, which is the best a pure math/big
// implementation can offer.
func (a *affinePoint) scalarMul(k *big.Int, order *big.Int) *affinePoint {
	r0 := newIdentity(a.mod)
	r1 := a.clone()

	bits := order.BitLen()
	for i := bits - 1; i >= 0; i-- {
		bit := k.Bit(i)
		if bit == 0 {
			r1 = r0.add(r1)
			r0 = r0.double()
		} else {
			r0 = r0.add(r1)
			r1 = r1.double()
		}
	}
	return r0
}

// encode returns the 32-byte little-endian encoding of a's x-coordinate with
// the top bit set to the parity of y. The identity encodes as all-zero bytes
// with the parity bit clear.
func (a *affinePoint) encode() [32]byte {
	var out [32]byte
	if a.infinity {
		return out
	}
	b := a.x.Bytes() // big-endian, no leading zeros
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	if a.y.Bit(0) == 1 {
		out[31] |= 0x80
	}
	return out
}

// decodeAffine recovers a curve point from its compressed encoding, using
// Tonelli-Shanks to recompute y from x. It rejects non-canonical x values
// (>= modulus) and x values that are not on the curve.
func decodeAffine(mod *big.Int, b [32]byte) (*affinePoint, error) {
	raw := make([]byte, 32)
	copy(raw, b[:])
	parity := raw[31] >> 7
	raw[31] &= 0x7f

	// all-zero (parity 0) is the identity point. This never collides with a
	// real point: x=0 is off-curve on both Pasta fields, since 5 is a
	// quadratic non-residue modulo each of them.
	allZero := true
	for _, v := range raw {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero && parity == 0 {
		return newIdentity(mod), nil
	}

	le := make([]byte, 32)
	for i, v := range raw {
		le[31-i] = v
	}
	x := new(big.Int).SetBytes(le)
	if x.Cmp(mod) >= 0 {
		return nil, errNonCanonical
	}

	rhs := new(big.Int).Mul(x, x)
	rhs.Mul(rhs, x)
	rhs.Add(rhs, curveB)
	rhs.Mod(rhs, mod)

	y, ok := modSqrt(rhs, mod)
	if !ok {
		return nil, errOffCurve
	}
	if y.Bit(0) != uint(parity) {
		y.Sub(mod, y)
	}

	return &affinePoint{x: x, y: y, mod: mod}, nil
}

// modSqrt computes a square root of n modulo the prime p using the
// Tonelli-Shanks algorithm. It returns ok=false if n is not a quadratic
// residue. Both Pasta field moduli are congruent to 1 mod 4 (they have high
// 2-adicity, by design, to support FFT-friendly arithmetic), so the simple
// p = 3 mod 4 shortcut does not apply here.
func modSqrt(n, p *big.Int) (*big.Int, bool) {
	n = new(big.Int).Mod(n, p)
	if n.Sign() == 0 {
		return new(big.Int), true
	}

	one := big.NewInt(1)
	two := big.NewInt(2)

	euler := new(big.Int).Sub(p, one)
	euler.Div(euler, two)
	if new(big.Int).Exp(n, euler, p).Cmp(one) != 0 {
		return nil, false
	}

	// Factor p-1 = q * 2^s with q odd.
	q := new(big.Int).Sub(p, one)
	s := 0
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		s++
	}
	if s == 1 {
		// p = 3 mod 4 shortcut, kept for completeness even though neither
		// Pasta modulus takes this path.
		exp := new(big.Int).Add(p, one)
		exp.Div(exp, big.NewInt(4))
		return new(big.Int).Exp(n, exp, p), true
	}

	// Find a quadratic non-residue z.
	z := big.NewInt(2)
	for new(big.Int).Exp(z, euler, p).Cmp(new(big.Int).Sub(p, one)) != 0 {
		z.Add(z, one)
	}

	m := s
	c := new(big.Int).Exp(z, q, p)
	t := new(big.Int).Exp(n, q, p)
	qPlus1Over2 := new(big.Int).Add(q, one)
	qPlus1Over2.Div(qPlus1Over2, two)
	r := new(big.Int).Exp(n, qPlus1Over2, p)

	for t.Cmp(one) != 0 {
		i := 0
		t2i := new(big.Int).Set(t)
		for ; i < m; i++ {
			if t2i.Cmp(one) == 0 {
				break
			}
			t2i.Mul(t2i, t2i)
			t2i.Mod(t2i, p)
		}

		b := new(big.Int).Exp(c, new(big.Int).Lsh(one, uint(m-i-1)), p)
		m = i
		c = new(big.Int).Mul(b, b)
		c.Mod(c, p)
		t.Mul(t, c)
		t.Mod(t, p)
		r.Mul(r, b)
		r.Mod(r, p)
	}

	return r, true
}

// reduceUniform reduces a 64-byte uniformly random string into a value in
// [0, mod), the same unbiased-reduction approach edwards25519.SetUniformBytes
// uses for a 32-byte field but doubled in width to keep the bias negligible
// against a ~255-bit modulus.
func reduceUniform(b [64]byte, mod *big.Int) *big.Int {
	v := new(big.Int).SetBytes(b[:])
	return v.Mod(v, mod)
}

func randomFieldElement(mod *big.Int) (*big.Int, error) {
	var b [64]byte
	if _, err := rand.Read(b[:]); err != nil {
		return nil, err
	}
	return reduceUniform(b, mod), nil
}

// bigToLE32 encodes v as 32 little-endian bytes, the canonical fixed-width
// scalar encoding.
func bigToLE32(v *big.Int) [32]byte {
	var out [32]byte
	b := v.Bytes()
	for i, x := range b {
		out[len(b)-1-i] = x
	}
	return out
}

// le32ToBig decodes a canonical little-endian scalar encoding, rejecting
// values that are not fully reduced modulo mod.
func le32ToBig(b [32]byte, mod *big.Int) (*big.Int, error) {
	be := make([]byte, 32)
	for i, x := range b {
		be[31-i] = x
	}
	v := new(big.Int).SetBytes(be)
	if v.Cmp(mod) >= 0 {
		return nil, errNonCanonical
	}
	return v, nil
}

// mustHexBytes32 decodes a fixed 32-byte hex constant, panicking on the
// malformed-literal programmer error (this is only ever called with
// constants embedded in this package).
func mustHexBytes32(s string) [32]byte {
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 32 {
		panic("group: malformed embedded hex constant")
	}
	var out [32]byte
	copy(out[:], raw)
	return out
}
