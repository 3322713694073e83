package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"

	"github.com/mosaicnet/sigmauth/auth"
	"github.com/mosaicnet/sigmauth/wire"
)

// HandleAPI takes an API handler function as input and turns it into an
// http.HandlerFunc by adding error handling and metrics.
func HandleAPI(path string, inner func(rw http.ResponseWriter, req *http.Request) *wire.HttpError) http.HandlerFunc {
	return func(rw http.ResponseWriter, req *http.Request) {
		if err := inner(rw, req); err != nil {
			requestCtr.WithLabelValues(path, fmt.Sprint(err.Status)).Inc()
			log.Printf("%v(%v): %v", path, err.Status, err.Err)

			rw.Header().Set("Content-Type", "application/json")
			rw.WriteHeader(err.Status)
			json.NewEncoder(rw).Encode(wire.ApiResponse{
				Success: false,
				Message: err.Err.Error(),
				Code:    err.Code,
			})
		} else {
			requestCtr.WithLabelValues(path, "200").Inc()
		}
	}
}

// toHttpError maps a Service error onto the HTTP status and wire-level code:
// invalid_argument (400) and not_found (404) are the two kinds a Service
// returns; any other error maps to internal (500).
func toHttpError(err error) *wire.HttpError {
	switch {
	case auth.IsNotFound(err):
		return &wire.HttpError{Status: http.StatusNotFound, Code: "not_found", Err: err}
	case auth.IsInvalidArgument(err):
		return &wire.HttpError{Status: http.StatusBadRequest, Code: "invalid_argument", Err: err}
	default:
		return &wire.HttpError{Status: http.StatusInternalServerError, Code: "internal", Err: err}
	}
}

// Handler dispatches the three RPC methods against a single curve's Service.
type Handler struct {
	api auth.AuthAPI
}

func decodeBody(req *http.Request, v interface{}) error {
	raw, err := ioutil.ReadAll(req.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func writeSuccess(rw http.ResponseWriter, response interface{}) *wire.HttpError {
	rw.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(rw).Encode(wire.ApiResponse{Success: true, Response: response}); err != nil {
		return &wire.HttpError{Status: http.StatusInternalServerError, Code: "internal", Err: err}
	}
	return nil
}

// Register handles register_user.
func (h *Handler) Register(rw http.ResponseWriter, req *http.Request) *wire.HttpError {
	if req.Method != http.MethodPost {
		return &wire.HttpError{Status: http.StatusMethodNotAllowed, Code: "invalid_argument", Err: fmt.Errorf("method not allowed")}
	}
	var body wire.RegisterRequest
	if err := decodeBody(req, &body); err != nil {
		return &wire.HttpError{Status: http.StatusBadRequest, Code: "invalid_argument", Err: err}
	}

	if err := h.api.Register(body.User, body.Y1, body.Y2); err != nil {
		return toHttpError(err)
	}
	return writeSuccess(rw, wire.RegisterResponse{})
}

// CreateChallenge handles create_challenge.
func (h *Handler) CreateChallenge(rw http.ResponseWriter, req *http.Request) *wire.HttpError {
	if req.Method != http.MethodPost {
		return &wire.HttpError{Status: http.StatusMethodNotAllowed, Code: "invalid_argument", Err: fmt.Errorf("method not allowed")}
	}
	var body wire.ChallengeRequest
	if err := decodeBody(req, &body); err != nil {
		return &wire.HttpError{Status: http.StatusBadRequest, Code: "invalid_argument", Err: err}
	}

	authID, c, err := h.api.CreateChallenge(body.User, body.R1, body.R2)
	if err != nil {
		return toHttpError(err)
	}
	return writeSuccess(rw, wire.ChallengeResponse{AuthID: authID, C: c})
}

// Verify handles verify.
func (h *Handler) Verify(rw http.ResponseWriter, req *http.Request) *wire.HttpError {
	if req.Method != http.MethodPost {
		return &wire.HttpError{Status: http.StatusMethodNotAllowed, Code: "invalid_argument", Err: fmt.Errorf("method not allowed")}
	}
	var body wire.AnswerRequest
	if err := decodeBody(req, &body); err != nil {
		return &wire.HttpError{Status: http.StatusBadRequest, Code: "invalid_argument", Err: err}
	}

	sessionID, err := h.api.Verify(body.AuthID, body.S)
	if err != nil {
		outcome := "invalid_argument"
		if auth.IsNotFound(err) {
			outcome = "not_found"
		}
		verifyCtr.WithLabelValues(outcome).Inc()
		return toHttpError(err)
	}
	verifyCtr.WithLabelValues("success").Inc()
	return writeSuccess(rw, wire.AnswerResponse{SessionID: sessionID})
}
