package core

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of session change being recorded.
type AuditAction string

const (
	ActionProductAdd    AuditAction = "product_add"
	ActionProductRemove AuditAction = "product_remove"
	ActionImport        AuditAction = "import"
	ActionUserRename    AuditAction = "user_rename"
	ActionOrderRecord   AuditAction = "order_record"
)

// AuditSeverity represents the severity level of an audit entry.
type AuditSeverity string

const (
	SeverityLow    AuditSeverity = "low"
	SeverityMedium AuditSeverity = "medium"
	SeverityHigh   AuditSeverity = "high"
)

// DefaultAuditCapacity is used when the configured capacity is not positive.
const DefaultAuditCapacity = 500

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID           string        `json:"id"`
	Action       AuditAction   `json:"action"`
	Severity     AuditSeverity `json:"severity"`
	ProductID    string        `json:"product_id,omitempty"`
	ProductCode  string        `json:"product_code,omitempty"`
	UserName     string        `json:"user_name,omitempty"`
	OldValue     string        `json:"old_value,omitempty"`
	NewValue     string        `json:"new_value,omitempty"`
	RowsAffected int           `json:"rows_affected,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// AuditLogParams contains parameters for creating an audit log entry.
type AuditLogParams struct {
	Action       AuditAction
	ProductID    string
	ProductCode  string
	UserName     string
	OldValue     string
	NewValue     string
	RowsAffected int
}

// AuditFilter selects entries from the log. Zero values match everything.
type AuditFilter struct {
	Action AuditAction
	Limit  int
}

// determineSeverity returns the appropriate severity for an action.
func determineSeverity(action AuditAction) AuditSeverity {
	switch action {
	case ActionProductRemove, ActionImport:
		return SeverityHigh
	case ActionProductAdd, ActionUserRename:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// AuditLog keeps the most recent entries in a fixed-size ring.
// It is not safe for concurrent use; Session guards it with its own lock.
type AuditLog struct {
	entries []AuditEntry
	next    int
	full    bool

	now   func() time.Time
	newID func() string
}

// NewAuditLog creates a log holding at most capacity entries.
func NewAuditLog(capacity int) *AuditLog {
	if capacity <= 0 {
		capacity = DefaultAuditCapacity
	}
	return &AuditLog{
		entries: make([]AuditEntry, capacity),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Record appends an entry, evicting the oldest when the log is full.
func (a *AuditLog) Record(params AuditLogParams) AuditEntry {
	e := AuditEntry{
		ID:           a.newID(),
		Action:       params.Action,
		Severity:     determineSeverity(params.Action),
		ProductID:    params.ProductID,
		ProductCode:  params.ProductCode,
		UserName:     params.UserName,
		OldValue:     params.OldValue,
		NewValue:     params.NewValue,
		RowsAffected: params.RowsAffected,
		CreatedAt:    a.now().UTC(),
	}

	a.entries[a.next] = e
	a.next = (a.next + 1) % len(a.entries)
	if a.next == 0 {
		a.full = true
	}
	return e
}

// Len returns the number of entries held.
func (a *AuditLog) Len() int {
	if a.full {
		return len(a.entries)
	}
	return a.next
}

// Entries returns matching entries, newest first.
func (a *AuditLog) Entries(filter AuditFilter) []AuditEntry {
	n := a.Len()
	out := make([]AuditEntry, 0, min(n, max(filter.Limit, 0)))
	for i := 0; i < n; i++ {
		idx := (a.next - 1 - i + len(a.entries)) % len(a.entries)
		e := a.entries[idx]
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out
}
