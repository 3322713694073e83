// Package client implements the driver that runs one full Chaum-Pedersen
// protocol exchange against a running sigmauth server: derive a secret,
// commit, register, request a challenge, respond, and verify.
package client

import (
	"bytes"
	"crypto/sha512"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/mosaicnet/sigmauth/group"
	"github.com/mosaicnet/sigmauth/sigma"
	"github.com/mosaicnet/sigmauth/wire"
)

// Transport is the minimal capability the driver needs from an RPC client;
// satisfied by *HTTPTransport below, or any test double.
type Transport interface {
	Register(req wire.RegisterRequest) error
	CreateChallenge(req wire.ChallengeRequest) (wire.ChallengeResponse, error)
	Verify(req wire.AnswerRequest) (wire.AnswerResponse, error)
}

// HTTPTransport speaks the server's JSON-over-HTTP RPC surface.
type HTTPTransport struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPTransport(baseURL string) *HTTPTransport {
	return &HTTPTransport{BaseURL: baseURL, Client: http.DefaultClient}
}

func (t *HTTPTransport) postJSON(path string, reqBody, respBody interface{}) error {
	buf, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}
	resp, err := t.Client.Post(t.BaseURL+path, "application/json", bytes.NewReader(buf))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env wire.ApiResponse
	env.Response = respBody
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return err
	}
	if !env.Success {
		return fmt.Errorf("%s: %s", env.Code, env.Message)
	}
	return nil
}

func (t *HTTPTransport) Register(req wire.RegisterRequest) error {
	var out wire.RegisterResponse
	return t.postJSON("/v1/register", req, &out)
}

func (t *HTTPTransport) CreateChallenge(req wire.ChallengeRequest) (wire.ChallengeResponse, error) {
	var out wire.ChallengeResponse
	err := t.postJSON("/v1/challenge", req, &out)
	return out, err
}

func (t *HTTPTransport) Verify(req wire.AnswerRequest) (wire.AnswerResponse, error) {
	var out wire.AnswerResponse
	err := t.postJSON("/v1/verify", req, &out)
	return out, err
}

// Driver runs the protocol for one curve instantiation.
type Driver[P group.Point[P, S], S group.Scalar[S]] struct {
	curve     group.Curve[P, S]
	params    group.GroupParams[P]
	transport Transport
}

// New constructs a Driver bound to curve/params, speaking over transport.
func New[P group.Point[P, S], S group.Scalar[S]](curve group.Curve[P, S], params group.GroupParams[P], transport Transport) *Driver[P, S] {
	return &Driver[P, S]{curve: curve, params: params, transport: transport}
}

// deriveSecret hashes secret with SHA-512 and reduces it into a scalar, or
// samples a fresh random scalar when secret is empty.
func (d *Driver[P, S]) deriveSecret(secret string) (S, error) {
	if secret == "" {
		return d.curve.RandomScalar()
	}
	sum := sha512.Sum512([]byte(secret))
	return d.curve.UniformScalar(sum), nil
}

// Run executes register -> create_challenge -> verify for user, returning
// the session id minted by the server. If secret is empty a fresh random
// scalar is used instead of a hash-derived one.
func (d *Driver[P, S]) Run(user, secret string) (string, error) {
	x, err := d.deriveSecret(secret)
	if err != nil {
		return "", fmt.Errorf("deriving secret: %w", err)
	}

	cp, k, err := sigma.Commitment[P](d.curve, d.params, x)
	if err != nil {
		return "", fmt.Errorf("computing commitment: %w", err)
	}

	y1, y2 := cp.Y1.Bytes(), cp.Y2.Bytes()
	if err := d.transport.Register(wire.RegisterRequest{User: user, Y1: y1[:], Y2: y2[:]}); err != nil {
		return "", fmt.Errorf("register: %w", err)
	}

	r1, r2 := cp.R1.Bytes(), cp.R2.Bytes()
	challengeResp, err := d.transport.CreateChallenge(wire.ChallengeRequest{User: user, R1: r1[:], R2: r2[:]})
	if err != nil {
		return "", fmt.Errorf("create_challenge: %w", err)
	}

	cArr, err := group.To32(challengeResp.C)
	if err != nil {
		return "", fmt.Errorf("decoding challenge: %w", err)
	}
	c, err := d.curve.NewScalar().SetCanonicalBytes(cArr)
	if err != nil {
		return "", fmt.Errorf("decoding challenge: %w", err)
	}

	s := sigma.Response[P](d.curve, k, c, x)

	// Informational local re-check; the verdict is logged and discarded,
	// never used to gate the call to the server below.
	if !sigma.Verify[P](d.curve, d.params, s, c, cp) {
		log.Printf("local re-check of the response did not verify")
	}

	sBytes := s.Bytes()
	answerResp, err := d.transport.Verify(wire.AnswerRequest{AuthID: challengeResp.AuthID, S: sBytes[:]})
	if err != nil {
		return "", fmt.Errorf("verify: %w", err)
	}
	return answerResp.SessionID, nil
}
