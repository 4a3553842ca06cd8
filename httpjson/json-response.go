package httpjson

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/programme-lv/writing/srvcerror"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJson encodes data before touching w, so an encoding failure
// still produces a well-formed 500 response.
func WriteJson(w http.ResponseWriter, statusCode int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to encode json response", "error", err)
		statusCode = http.StatusInternalServerError
		body = []byte(`{"error":"Internal Server Error"}`)
	}
	WriteRawJson(w, statusCode, body)
}

func WriteRawJson(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

func WriteSuccessJson(w http.ResponseWriter, data any) {
	WriteJson(w, http.StatusOK, data)
}

func WriteErrorJson(w http.ResponseWriter, errMsg string, statusCode int) {
	WriteJson(w, statusCode, ErrorResponse{Error: errMsg})
}

// WriteError writes the public part of err. Errors that are not
// *srvcerror.Error become a bare 500.
func WriteError(w http.ResponseWriter, err error) {
	srvcErr := &srvcerror.Error{}
	if errors.As(err, &srvcErr) {
		WriteErrorJson(w, srvcErr.Error(), srvcErr.HttpStatusCode())
		return
	}
	internal := srvcerror.ErrInternalSE()
	WriteErrorJson(w, internal.Error(), internal.HttpStatusCode())
}

// HandleError logs msg with err and its debug info, then writes the
// public response.
func HandleError(logger *slog.Logger, w http.ResponseWriter, msg string, err error) {
	srvcErr := &srvcerror.Error{}
	if errors.As(err, &srvcErr) {
		status := srvcErr.HttpStatusCode()
		attrs := []any{"error", err, "code", srvcErr.ErrorCode(), "status", status}
		if srvcErr.DebugInfo() != nil {
			attrs = append(attrs, "debug", srvcErr.DebugInfo())
		}
		if status >= http.StatusInternalServerError {
			logger.Error(msg, attrs...)
		} else {
			logger.Warn(msg, attrs...)
		}
	} else {
		logger.Error(msg, "error", err)
	}
	WriteError(w, err)
}
