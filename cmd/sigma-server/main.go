// Command sigma-server answers register_user, create_challenge, and verify
// requests for the Chaum-Pedersen authentication protocol, over one of the
// two supported Pasta curves.
package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mosaicnet/sigmauth/auth"
	"github.com/mosaicnet/sigmauth/group"
	"github.com/mosaicnet/sigmauth/store"
)

var (
	host        = flag.String("host", "[::1]", "Address to listen on.")
	port        = flag.String("port", "50051", "Port to listen on.")
	curveName   = flag.String("curve", "pallas", "Curve to use: pallas or vesta.")
	configFile  = flag.String("config", "", "Optional location of a config file.")
	metricsAddr = flag.String("metrics-addr", "[::1]:9090", "Address for the metrics server.")
)

func newAPI(name string, st *store.Store) (auth.AuthAPI, error) {
	switch name {
	case "pallas":
		return auth.New[*group.PallasPoint, *group.PallasScalar](group.PallasCurve{}, group.PallasParams(), st), nil
	case "vesta":
		return auth.New[*group.VestaPoint, *group.VestaScalar](group.VestaCurve{}, group.VestaParams(), st), nil
	default:
		return nil, &group.ErrUnsupportedCurve{Name: name}
	}
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile | log.LUTC)
	flag.Parse()

	var tlsConfig = (*Config)(nil)
	if *configFile != "" {
		cfg, err := ReadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config file: %v", err)
		}
		tlsConfig = cfg
		if cfg.MetricsAddr != "" {
			*metricsAddr = cfg.MetricsAddr
		}
	}

	api, err := newAPI(*curveName, store.New())
	if err != nil {
		log.Fatalf("Failed to construct authentication service: %v", err)
	}

	go metrics(*metricsAddr)

	h := &Handler{api: api}
	r := mux.NewRouter()
	r.HandleFunc("/v1/register", HandleAPI("/v1/register", h.Register))
	r.HandleFunc("/v1/challenge", HandleAPI("/v1/challenge", h.CreateChallenge))
	r.HandleFunc("/v1/verify", HandleAPI("/v1/verify", h.Verify))

	addr := *host + ":" + *port
	srv := &http.Server{
		Addr:    addr,
		Handler: r,

		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
	if tlsConfig != nil {
		srv.TLSConfig = tlsConfig.tlsConfig
	}

	log.Printf("Starting sigmauth server (curve=%s) at: %v", *curveName, addr)
	if tlsConfig == nil || tlsConfig.tlsConfig == nil {
		log.Fatal(srv.ListenAndServe())
	} else {
		log.Fatal(srv.ListenAndServeTLS("", ""))
	}
}
