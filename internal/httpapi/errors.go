package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

const (
	codeBadRequest       = "bad_request"
	codeNotFound         = "not_found"
	codeMethodNotAllowed = "method_not_allowed"
	codePageNotFound     = "page_not_found"
	codeVersionNotFound  = "version_not_found"
	codeBlockNotFound    = "block_not_found"
	codeNotRunnable      = "not_runnable"
	codeCanceled         = "request_canceled"
	codeInternal         = "internal_error"

	// statusClientClosedRequest is the de facto status for requests
	// abandoned by the client.
	statusClientClosedRequest = 499
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func canceledHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	writeError(w, statusClientClosedRequest, codeCanceled, "request canceled")
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := loggerFrom(r, s.logger)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			logger.Info("Request failed", slog.String("error", err.Error()))
			return
		}
	}
	logger.Error("Internal error", slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
