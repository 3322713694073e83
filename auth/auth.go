// Package auth implements the three-operation authentication state machine:
// register, create_challenge, and verify, binding the group and sigma
// packages to the in-memory store behind a concurrent request surface.
package auth

import (
	"github.com/google/uuid"

	"github.com/mosaicnet/sigmauth/group"
	"github.com/mosaicnet/sigmauth/sigma"
	"github.com/mosaicnet/sigmauth/store"
)

// AuthAPI is the non-generic surface a wire handler dispatches against. A
// Service[P, S] satisfies it for any curve instantiation because all of its
// methods speak only in encoded bytes; selecting pallas vs. vesta is a
// runtime choice of which concrete Service to construct, not a type
// parameter threaded through the caller.
type AuthAPI interface {
	Register(user string, y1, y2 []byte) error
	CreateChallenge(user string, r1, r2 []byte) (authID string, c []byte, err error)
	Verify(authID string, s []byte) (sessionID string, err error)
}

// Service binds one curve instantiation's group parameters to a store.
// cmd/sigma-server constructs a single Service, for the curve chosen by
// --curve at startup; there is no generic dispatch at runtime, only at
// construction.
type Service[P group.Point[P, S], S group.Scalar[S]] struct {
	curve  group.Curve[P, S]
	params group.GroupParams[P]
	store  *store.Store
}

// New constructs a Service over curve/params, backed by st.
func New[P group.Point[P, S], S group.Scalar[S]](curve group.Curve[P, S], params group.GroupParams[P], st *store.Store) *Service[P, S] {
	return &Service[P, S]{curve: curve, params: params, store: st}
}

func decodePoint[P group.Point[P, S], S group.Scalar[S]](curve group.Curve[P, S], b []byte) (P, error) {
	arr, err := group.To32(b)
	if err != nil {
		var zero P
		return zero, err
	}
	return curve.NewPoint().SetCanonicalBytes(arr)
}

func decodeScalar[P group.Point[P, S], S group.Scalar[S]](curve group.Curve[P, S], b []byte) (S, error) {
	arr, err := group.To32(b)
	if err != nil {
		var zero S
		return zero, err
	}
	return curve.NewScalar().SetCanonicalBytes(arr)
}

// Register decodes y1, y2 and overwrites any existing record for user.
func (svc *Service[P, S]) Register(user string, y1, y2 []byte) error {
	py1, err := decodePoint[P](svc.curve, y1)
	if err != nil {
		return invalidArgument("invalid y1: " + err.Error())
	}
	py2, err := decodePoint[P](svc.curve, y2)
	if err != nil {
		return invalidArgument("invalid y2: " + err.Error())
	}

	y1b, y2b := py1.Bytes(), py2.Bytes()
	svc.store.CreateUser(&store.User{
		Username: user,
		Y1:       y1b[:],
		Y2:       y2b[:],
	})
	return nil
}

// CreateChallenge decodes r1, r2, stores them against user, draws a fresh
// challenge scalar, and allocates an auth_id for it.
func (svc *Service[P, S]) CreateChallenge(user string, r1, r2 []byte) (string, []byte, error) {
	pr1, err := decodePoint[P](svc.curve, r1)
	if err != nil {
		return "", nil, invalidArgument("invalid r1: " + err.Error())
	}
	pr2, err := decodePoint[P](svc.curve, r2)
	if err != nil {
		return "", nil, invalidArgument("invalid r2: " + err.Error())
	}

	c, err := sigma.Challenge[P](svc.curve)
	if err != nil {
		return "", nil, invalidArgument("challenge generation failed: " + err.Error())
	}
	cBytes := c.Bytes()

	r1b, r2b := pr1.Bytes(), pr2.Bytes()
	authID, ok := svc.store.CreateChallenge(user, r1b[:], r2b[:], cBytes[:])
	if !ok {
		return "", nil, notFound("user not found")
	}
	return authID, cBytes[:], nil
}

// Verify decodes s, fetches and consumes the challenge for authID, checks
// the Chaum-Pedersen equalities, and on success issues a session id.
func (svc *Service[P, S]) Verify(authID string, s []byte) (string, error) {
	ps, err := decodeScalar[P](svc.curve, s)
	if err != nil {
		return "", invalidArgument("invalid s: " + err.Error())
	}

	ch, user := svc.store.FetchAndConsumeChallenge(authID)
	if ch == nil {
		return "", notFound("challenge not found")
	}
	if user == nil {
		return "", notFound("user not found")
	}
	if user.R1 == nil || user.R2 == nil {
		return "", invalidArgument("no challenge outstanding for user")
	}

	pc, err := decodeScalar[P](svc.curve, ch.C)
	if err != nil {
		return "", invalidArgument("stored challenge is corrupt: " + err.Error())
	}
	cp, err := commitParamsFrom[P](svc.curve, user)
	if err != nil {
		return "", invalidArgument("stored user record is corrupt: " + err.Error())
	}

	if !sigma.Verify[P](svc.curve, svc.params, ps, pc, cp) {
		return "", invalidArgument("invalid authentication")
	}

	return uuid.New().String(), nil
}

func commitParamsFrom[P group.Point[P, S], S group.Scalar[S]](curve group.Curve[P, S], user *store.User) (sigma.CommitParams[P], error) {
	var cp sigma.CommitParams[P]
	var err error
	if cp.Y1, err = decodePoint[P](curve, user.Y1); err != nil {
		return cp, err
	}
	if cp.Y2, err = decodePoint[P](curve, user.Y2); err != nil {
		return cp, err
	}
	if cp.R1, err = decodePoint[P](curve, user.R1); err != nil {
		return cp, err
	}
	if cp.R2, err = decodePoint[P](curve, user.R2); err != nil {
		return cp, err
	}
	return cp, nil
}
