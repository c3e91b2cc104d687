package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/orderdesk/internal/core"
)

type userResponse struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type renameRequest struct {
	Name string `json:"name" validate:"max=100"`
}

// orderRequest is the body of POST /api/orders. Quantity and user index are
// pointers so a missing field is distinguished from zero. The quantity bound
// matches core.MaxQuantity.
type orderRequest struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
	Quantity  *int   `json:"quantity" validate:"required,max=1000000"`
	UserIndex *int   `json:"user_index" validate:"required"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	names := s.session.Users()
	users := make([]userResponse, len(names))
	for i, name := range names {
		users[i] = userResponse{Index: i, Name: name}
	}
	writeJSON(w, r, http.StatusOK, users)
}

// handleRenameUser renames the user at the 0-based {index}.
// Orders already recorded keep the old name.
func (s *Server) handleRenameUser(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		err := &core.ValidationError{Field: core.FieldUserIndex, Value: raw, Message: "user index must be an integer"}
		s.respondError(w, r, err, statusFor(err))
		return
	}

	var req renameRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	if err := s.session.RenameUser(index, req.Name); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	name, _ := s.userName(index)
	writeJSON(w, r, http.StatusOK, userResponse{Index: index, Name: name})
}

func (s *Server) userName(index int) (string, bool) {
	names := s.session.Users()
	if index < 0 || index >= len(names) {
		return "", false
	}
	return names[index], true
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders := s.session.Orders()
	if orders == nil {
		orders = []core.OrderEntry{}
	}
	writeJSON(w, r, http.StatusOK, orders)
}

// handleRecordOrder records an order for the user at user_index.
func (s *Server) handleRecordOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	entry, err := s.session.RecordOrder(req.ProductID, *req.Quantity, *req.UserIndex)
	if err != nil {
		s.metrics.OrderRejected(err)
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.metrics.OrderRecorded()
	writeJSON(w, r, http.StatusCreated, entry)
}

// defaultAuditLimit caps /api/audit when ?limit= is absent.
const defaultAuditLimit = 100

// handleAuditLog returns recent session changes, newest first.
// ?action= filters by action and ?limit= caps the result.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := defaultAuditLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			err := &requestError{reason: fmt.Sprintf("limit must be a positive integer, got %q", raw)}
			s.respondError(w, r, err, statusFor(err))
			return
		}
		limit = n
	}

	entries := s.session.AuditLog(core.AuditFilter{
		Action: core.AuditAction(q.Get("action")),
		Limit:  limit,
	})
	writeJSON(w, r, http.StatusOK, entries)
}
