package web

// errors.go renders every failed request the same way:
//  1. Handler calls respondError(w, r, err, status)
//  2. core.MapError turns err into a coded, user-facing message
//  3. The technical error is logged with the request ID
//  4. API clients get JSON; browsers get the HTML error page

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/JonMunkholm/orderdesk/internal/core"
	"github.com/JonMunkholm/orderdesk/internal/logging"
	"github.com/JonMunkholm/orderdesk/internal/tabular"
	"github.com/JonMunkholm/orderdesk/internal/web/templates"
)

var (
	errRateLimited = errors.New("rate limit exceeded")
	errNoFile      = errors.New("no file provided")
)

// requestError is a malformed or shape-invalid request body.
type requestError struct {
	reason string
	fields map[string]string // JSON field -> failed rule
}

func (e *requestError) Error() string {
	return "invalid request: " + e.reason
}

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Action  string            `json:"action,omitempty"`
	Code    string            `json:"code"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// statusFor picks the HTTP status for a domain or transport error.
func statusFor(err error) int {
	var (
		ve  *core.ValidationError
		de  *tabular.DecodeError
		re  *requestError
		mbe *http.MaxBytesError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &re), errors.Is(err, errNoFile):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrDuplicateCode):
		return http.StatusConflict
	case errors.Is(err, core.ErrUnknownProduct):
		return http.StatusNotFound
	case errors.Is(err, core.ErrTooManyImports), errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	case errors.As(err, &mbe):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &de):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes the mapped user message.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, status int) {
	msg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"code", msg.Code,
		"error", err.Error(),
	}
	if status >= http.StatusInternalServerError || !core.IsUserFacing(err) {
		logger.Error("request error", attrs...)
	} else {
		logger.Warn("request rejected", attrs...)
	}

	if !wantsJSON(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if err := templates.ErrorPage(msg.Message, msg.Action, msg.Code).Render(r.Context(), w); err != nil {
			logger.Error("render error page", "error", err)
		}
		return
	}

	resp := ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}
	var re *requestError
	if errors.As(err, &re) {
		resp.Fields = re.fields
	}
	writeJSON(w, r, status, resp)
}

// wantsJSON reports whether the client should get a JSON error body.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// writeJSON encodes v with the given status. Encoding errors are logged
// since the header is already sent.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode", "error", err)
	}
}

// maxJSONBody bounds API request bodies.
const maxJSONBody = 1 << 20

// decodeJSON reads a JSON body into dst and checks its validate tags.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &requestError{reason: fmt.Sprintf("malformed JSON body: %v", err)}
	}

	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return &requestError{reason: err.Error()}
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return &requestError{reason: "field validation failed", fields: fields}
	}
	return nil
}
