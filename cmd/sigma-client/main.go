// Command sigma-client runs one full Chaum-Pedersen protocol exchange
// against a sigma-server instance and prints the resulting session id.
package main

import (
	"flag"
	"log"

	"github.com/mosaicnet/sigmauth/client"
	"github.com/mosaicnet/sigmauth/group"
)

var (
	host      = flag.String("host", "[::1]", "Server host.")
	port      = flag.String("port", "50051", "Server port.")
	curveName = flag.String("curve", "pallas", "Curve to use: pallas or vesta.")
	user      = flag.String("user", "peggy", "Username to authenticate as.")
	secret    = flag.String("secret", "", "Optional secret string; a random scalar is used if absent.")
)

func run(baseURL string) (string, error) {
	transport := client.NewHTTPTransport(baseURL)

	switch *curveName {
	case "pallas":
		d := client.New[*group.PallasPoint, *group.PallasScalar](group.PallasCurve{}, group.PallasParams(), transport)
		return d.Run(*user, *secret)
	case "vesta":
		d := client.New[*group.VestaPoint, *group.VestaScalar](group.VestaCurve{}, group.VestaParams(), transport)
		return d.Run(*user, *secret)
	default:
		return "", &group.ErrUnsupportedCurve{Name: *curveName}
	}
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	flag.Parse()

	log.Println("Starting client")
	log.Printf("     host: %s", *host)
	log.Printf("     port: %s", *port)
	log.Printf("     curve: %s", *curveName)
	log.Printf("     user: %s", *user)

	baseURL := "http://" + *host + ":" + *port
	sessionID, err := run(baseURL)
	if err != nil {
		log.Fatalf("protocol run failed: %v", err)
	}
	log.Printf("authenticated, session id: %s", sessionID)
}
