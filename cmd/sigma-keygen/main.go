// Command sigma-keygen outputs a fresh random scalar secret, suitable for
// passing to sigma-client's --secret flag in place of a random run.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/mosaicnet/sigmauth/group"
)

var curveName = flag.String("curve", "pallas", "Curve to sample a scalar for: pallas or vesta.")

func main() {
	log.SetFlags(log.LstdFlags)
	flag.Parse()

	var encoded [32]byte
	switch *curveName {
	case "pallas":
		s, err := (group.PallasCurve{}).RandomScalar()
		if err != nil {
			log.Fatal(err)
		}
		encoded = s.Bytes()
	case "vesta":
		s, err := (group.VestaCurve{}).RandomScalar()
		if err != nil {
			log.Fatal(err)
		}
		encoded = s.Bytes()
	default:
		log.Fatal(&group.ErrUnsupportedCurve{Name: *curveName})
	}

	fmt.Printf("Secret scalar (%s):\n%x\n", *curveName, encoded)
}
