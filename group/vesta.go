package group

import "math/big"

// VestaScalar is an element of the Vesta curve's scalar field (numerically
// the same prime as Pallas's base field).
type VestaScalar struct {
	v *big.Int
}

func (s *VestaScalar) Add(x, y *VestaScalar) *VestaScalar {
	s.v = new(big.Int).Add(x.v, y.v)
	s.v.Mod(s.v, pastaBaseField)
	return s
}

func (s *VestaScalar) Mul(x, y *VestaScalar) *VestaScalar {
	s.v = new(big.Int).Mul(x.v, y.v)
	s.v.Mod(s.v, pastaBaseField)
	return s
}

func (s *VestaScalar) Bytes() [32]byte {
	return bigToLE32(s.v)
}

func (s *VestaScalar) SetCanonicalBytes(b [32]byte) (*VestaScalar, error) {
	v, err := le32ToBig(b, pastaBaseField)
	if err != nil {
		return nil, err
	}
	s.v = v
	return s, nil
}

// VestaPoint is an element of the Vesta curve group.
type VestaPoint struct {
	a *affinePoint
}

func (p *VestaPoint) Add(x, y *VestaPoint) *VestaPoint {
	p.a = x.a.add(y.a)
	return p
}

func (p *VestaPoint) ScalarMult(s *VestaScalar, x *VestaPoint) *VestaPoint {
	p.a = x.a.scalarMul(s.v, pastaBaseField)
	return p
}

func (p *VestaPoint) Equal(y *VestaPoint) bool {
	return p.a.equal(y.a)
}

func (p *VestaPoint) IsIdentity() bool {
	return p.a.infinity
}

func (p *VestaPoint) Bytes() [32]byte {
	return p.a.encode()
}

func (p *VestaPoint) SetCanonicalBytes(b [32]byte) (*VestaPoint, error) {
	a, err := decodeAffine(pastaScalarField, b)
	if err != nil {
		return nil, err
	}
	p.a = a
	return p, nil
}

// VestaCurve implements group.Curve for the Vesta curve.
type VestaCurve struct{}

func (VestaCurve) Name() string { return "vesta" }

func (VestaCurve) NewPoint() *VestaPoint {
	return &VestaPoint{a: newIdentity(pastaScalarField)}
}

func (VestaCurve) NewScalar() *VestaScalar {
	return &VestaScalar{v: new(big.Int)}
}

func (VestaCurve) RandomScalar() (*VestaScalar, error) {
	v, err := randomFieldElement(pastaBaseField)
	if err != nil {
		return nil, err
	}
	return &VestaScalar{v: v}, nil
}

func (VestaCurve) UniformScalar(b [64]byte) *VestaScalar {
	return &VestaScalar{v: reduceUniform(b, pastaBaseField)}
}

// VestaParams returns the Vesta curve's registered nothing-up-my-sleeve
// generator pair, derived the same way as PallasParams but hashing
// "sigmauth/vesta/g/" and "sigmauth/vesta/h/".
func VestaParams() GroupParams[*VestaPoint] {
	return GroupParams[*VestaPoint]{
		G: mustDecodeVesta(vestaGHex),
		H: mustDecodeVesta(vestaHHex),
		P: &VestaPoint{a: newIdentity(pastaScalarField)},
		Q: &VestaPoint{a: newIdentity(pastaScalarField)},
	}
}

const (
	vestaGHex = "be30475da694828283b5ee998bdb3b142f6bba33f168b6fcb191ada2baf4f58f"
	vestaHHex = "382f9e787521259e4c9d31b59d63f258b2c7fac14ab53890ca823fbb3e14280b"
)

func mustDecodeVesta(hexStr string) *VestaPoint {
	b := mustHexBytes32(hexStr)
	a, err := decodeAffine(pastaScalarField, b)
	if err != nil {
		panic("group: invalid embedded vesta constant: " + err.Error())
	}
	return &VestaPoint{a: a}
}
