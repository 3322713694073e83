// Package sigma implements the Chaum-Pedersen equality-of-discrete-logs
// Sigma protocol: commit, challenge, response, and verify, generic over any
// curve satisfying the group package's capability set.
package sigma

import "github.com/mosaicnet/sigmauth/group"

// CommitParams is the four group elements exchanged as part of a commitment:
// the registered public values (Y1, Y2) and the fresh commitment (R1, R2).
type CommitParams[P any] struct {
	Y1, Y2 P
	R1, R2 P
}

// Commitment computes (cp, k) for secret x: Y1 = g*x, Y2 = h*x, R1 = g*k,
// R2 = h*k, where k is fresh commitment randomness. k must remain secret
// until Response folds it with the server's challenge.
func Commitment[P group.Point[P, S], S group.Scalar[S]](
	curve group.Curve[P, S],
	params group.GroupParams[P],
	x S,
) (CommitParams[P], S, error) {
	k, err := curve.RandomScalar()
	if err != nil {
		var zero CommitParams[P]
		var zeroS S
		return zero, zeroS, err
	}

	cp := CommitParams[P]{
		Y1: curve.NewPoint().ScalarMult(x, params.G),
		Y2: curve.NewPoint().ScalarMult(x, params.H),
		R1: curve.NewPoint().ScalarMult(k, params.G),
		R2: curve.NewPoint().ScalarMult(k, params.H),
	}
	return cp, k, nil
}

// Challenge returns a fresh uniformly random scalar. The challenge in this
// protocol is generated by the verifier (the server); there is no
// Fiat-Shamir transcript hash involved.
func Challenge[P group.Point[P, S], S group.Scalar[S]](curve group.Curve[P, S]) (S, error) {
	return curve.RandomScalar()
}

// Response computes s = k + c*x in the scalar field.
func Response[P group.Point[P, S], S group.Scalar[S]](
	curve group.Curve[P, S],
	k, c, x S,
) S {
	cx := curve.NewScalar().Mul(c, x)
	return curve.NewScalar().Add(k, cx)
}

// Verify reports whether g*s == R1 + Y1*c and h*s == R2 + Y2*c. Both
// equalities must hold; cp is not secret, so there is no requirement to hide
// which one failed, but the two checks are still both evaluated rather than
// short-circuited to keep the function's shape independent of the inputs.
func Verify[P group.Point[P, S], S group.Scalar[S]](
	curve group.Curve[P, S],
	params group.GroupParams[P],
	s, c S,
	cp CommitParams[P],
) bool {
	lhs1 := curve.NewPoint().ScalarMult(s, params.G)
	y1c := curve.NewPoint().ScalarMult(c, cp.Y1)
	rhs1 := curve.NewPoint().Add(cp.R1, y1c)
	ok1 := lhs1.Equal(rhs1)

	lhs2 := curve.NewPoint().ScalarMult(s, params.H)
	y2c := curve.NewPoint().ScalarMult(c, cp.Y2)
	rhs2 := curve.NewPoint().Add(cp.R2, y2c)
	ok2 := lhs2.Equal(rhs2)

	return ok1 && ok2
}
