package server

import (
	"encoding/json"
	"net/http"

	errs "github.com/matzehuels/mazegen/pkg/errors"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errs.Code) int {
	switch code {
	case errs.ErrCodeInvalidDimensions, errs.ErrCodeMalformedInput, errs.ErrCodeOutOfBounds,
		errs.ErrCodeInvalidInput, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errs.ErrCodeNotFound, errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errs.ErrCodeNetwork:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: errs.UserMessage(err)}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
