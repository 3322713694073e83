package sigma

import (
	"testing"

	"github.com/mosaicnet/sigmauth/group"
)

func TestCorrectnessPallas(t *testing.T) {
	curve := group.PallasCurve{}
	params := group.PallasParams()

	for i := 0; i < 20; i++ {
		x, err := curve.RandomScalar()
		if err != nil {
			t.Fatal(err)
		}

		cp, k, err := Commitment[*group.PallasPoint, *group.PallasScalar](curve, params, x)
		if err != nil {
			t.Fatal(err)
		}
		c, err := Challenge[*group.PallasPoint, *group.PallasScalar](curve)
		if err != nil {
			t.Fatal(err)
		}
		s := Response[*group.PallasPoint, *group.PallasScalar](curve, k, c, x)

		if !Verify[*group.PallasPoint, *group.PallasScalar](curve, params, s, c, cp) {
			t.Fatalf("honest transcript failed to verify (x=%x)", x.Bytes())
		}
	}
}

func TestCorrectnessVesta(t *testing.T) {
	curve := group.VestaCurve{}
	params := group.VestaParams()

	for i := 0; i < 20; i++ {
		x, err := curve.RandomScalar()
		if err != nil {
			t.Fatal(err)
		}

		cp, k, err := Commitment[*group.VestaPoint, *group.VestaScalar](curve, params, x)
		if err != nil {
			t.Fatal(err)
		}
		c, err := Challenge[*group.VestaPoint, *group.VestaScalar](curve)
		if err != nil {
			t.Fatal(err)
		}
		s := Response[*group.VestaPoint, *group.VestaScalar](curve, k, c, x)

		if !Verify[*group.VestaPoint, *group.VestaScalar](curve, params, s, c, cp) {
			t.Fatalf("honest transcript failed to verify (x=%x)", x.Bytes())
		}
	}
}

func TestSoundnessSanity(t *testing.T) {
	curve := group.PallasCurve{}
	params := group.PallasParams()

	x, err := curve.RandomScalar()
	if err != nil {
		t.Fatal(err)
	}
	cp, k, err := Commitment[*group.PallasPoint, *group.PallasScalar](curve, params, x)
	if err != nil {
		t.Fatal(err)
	}
	c, err := Challenge[*group.PallasPoint, *group.PallasScalar](curve)
	if err != nil {
		t.Fatal(err)
	}
	s := Response[*group.PallasPoint, *group.PallasScalar](curve, k, c, x)

	one := curve.NewScalar().Add(curve.NewScalar(), curve.NewScalar())
	oneBytes := one.Bytes()
	oneBytes[0] |= 0x01 // perturb the low byte to get a scalar != 0
	forged, err := curve.NewScalar().SetCanonicalBytes(oneBytes)
	if err != nil {
		t.Fatal(err)
	}
	sPrime := curve.NewScalar().Add(s, forged)

	if Verify[*group.PallasPoint, *group.PallasScalar](curve, params, sPrime, c, cp) {
		t.Fatal("forged response unexpectedly verified")
	}
}

func TestVerifyRejectsWrongChallenge(t *testing.T) {
	curve := group.PallasCurve{}
	params := group.PallasParams()

	x, _ := curve.RandomScalar()
	cp, k, err := Commitment[*group.PallasPoint, *group.PallasScalar](curve, params, x)
	if err != nil {
		t.Fatal(err)
	}
	c, _ := Challenge[*group.PallasPoint, *group.PallasScalar](curve)
	s := Response[*group.PallasPoint, *group.PallasScalar](curve, k, c, x)

	cPrime, _ := Challenge[*group.PallasPoint, *group.PallasScalar](curve)
	if cPrime.Bytes() == c.Bytes() {
		t.Skip("improbable challenge collision")
	}
	if Verify[*group.PallasPoint, *group.PallasScalar](curve, params, s, cPrime, cp) {
		t.Fatal("response for one challenge verified against a different challenge")
	}
}

func TestVerifyRejectsTamperedCommitment(t *testing.T) {
	curve := group.PallasCurve{}
	params := group.PallasParams()

	x, _ := curve.RandomScalar()
	cp, k, err := Commitment[*group.PallasPoint, *group.PallasScalar](curve, params, x)
	if err != nil {
		t.Fatal(err)
	}
	c, _ := Challenge[*group.PallasPoint, *group.PallasScalar](curve)
	s := Response[*group.PallasPoint, *group.PallasScalar](curve, k, c, x)

	tampered := cp
	tampered.Y1 = curve.NewPoint().Add(cp.Y1, params.G)

	if Verify[*group.PallasPoint, *group.PallasScalar](curve, params, s, c, tampered) {
		t.Fatal("tampered Y1 unexpectedly verified")
	}
}
