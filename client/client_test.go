package client

import (
	"testing"

	"github.com/mosaicnet/sigmauth/auth"
	"github.com/mosaicnet/sigmauth/group"
	"github.com/mosaicnet/sigmauth/store"
	"github.com/mosaicnet/sigmauth/wire"
)

// inProcessTransport drives an auth.Service directly, skipping HTTP, so the
// protocol's end-to-end shape can be tested without a network listener.
type inProcessTransport struct {
	svc *auth.Service[*group.PallasPoint, *group.PallasScalar]
}

func (t *inProcessTransport) Register(req wire.RegisterRequest) error {
	return t.svc.Register(req.User, req.Y1, req.Y2)
}

func (t *inProcessTransport) CreateChallenge(req wire.ChallengeRequest) (wire.ChallengeResponse, error) {
	authID, c, err := t.svc.CreateChallenge(req.User, req.R1, req.R2)
	return wire.ChallengeResponse{AuthID: authID, C: c}, err
}

func (t *inProcessTransport) Verify(req wire.AnswerRequest) (wire.AnswerResponse, error) {
	sessionID, err := t.svc.Verify(req.AuthID, req.S)
	return wire.AnswerResponse{SessionID: sessionID}, err
}

func TestDriverRunWithRandomSecret(t *testing.T) {
	curve := group.PallasCurve{}
	params := group.PallasParams()
	svc := auth.New[*group.PallasPoint, *group.PallasScalar](curve, params, store.New())

	d := New[*group.PallasPoint, *group.PallasScalar](curve, params, &inProcessTransport{svc: svc})

	sessionID, err := d.Run("peggy", "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sessionID) != 36 {
		t.Fatalf("expected a 36-character session id, got %q", sessionID)
	}
}

func TestDriverRunWithSecretIsDeterministic(t *testing.T) {
	curve := group.PallasCurve{}
	params := group.PallasParams()

	svc1 := auth.New[*group.PallasPoint, *group.PallasScalar](curve, params, store.New())
	d1 := New[*group.PallasPoint, *group.PallasScalar](curve, params, &inProcessTransport{svc: svc1})
	if _, err := d1.Run("peggy", "hunter2"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	svc2 := auth.New[*group.PallasPoint, *group.PallasScalar](curve, params, store.New())
	d2 := New[*group.PallasPoint, *group.PallasScalar](curve, params, &inProcessTransport{svc: svc2})
	if _, err := d2.Run("peggy", "hunter2"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	x1, err := d1.deriveSecret("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	x2, err := d2.deriveSecret("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if x1.Bytes() != x2.Bytes() {
		t.Fatal("expected the same secret string to derive the same scalar")
	}
}
