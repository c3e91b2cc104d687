package core

import (
	"io"
	"log/slog"
	"strconv"
	"sync"
)

// SessionOptions configures a new Session.
type SessionOptions struct {
	UserNames   []string     // initial registry; DefaultUserNames(DefaultUserCount, "") when nil
	SeedCatalog bool         // start with DefaultProducts
	AuditSize   int          // audit entries kept; DefaultAuditCapacity when not positive
	Logger      *slog.Logger // slog.Default() when nil
}

// Session bundles one catalog, user registry and ledger.
//
// The stores themselves are single-threaded. Session serializes every call
// behind one lock so an HTTP server can share it between request goroutines
// while the engine still sees a single actor. Servers that host several
// independent sessions must create one Session per operator.
type Session struct {
	mu      sync.RWMutex
	catalog *Catalog
	users   *Registry
	ledger  *Ledger
	audit   *AuditLog
	log     *slog.Logger
}

// NewSession creates a session and wires the catalog-to-ledger cascade.
func NewSession(opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	names := opts.UserNames
	if names == nil {
		names = DefaultUserNames(DefaultUserCount, DefaultUserPrefix)
	}

	catalog := NewCatalog()
	ledger := NewLedger(catalog)
	catalog.OnRemove(func(productID string) {
		if n := ledger.RemoveByProduct(productID); n > 0 {
			logger.Debug("cascaded order removal", "product_id", productID, "orders_removed", n)
		}
	})

	s := &Session{
		catalog: catalog,
		users:   NewRegistry(names),
		ledger:  ledger,
		audit:   NewAuditLog(opts.AuditSize),
		log:     logger,
	}

	if opts.SeedCatalog {
		for _, p := range DefaultProducts {
			if _, err := catalog.Add(p.Name, p.Code, p.Unit); err != nil {
				logger.Warn("seed product rejected", "code", p.Code, "error", err)
			}
		}
	}

	return s
}

// Products returns the catalog in insertion order.
func (s *Session) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.List()
}

// SearchProducts filters the catalog by a case-insensitive name or code substring.
func (s *Session) SearchProducts(query string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Search(query)
}

// FindProduct looks a product up by ID.
func (s *Session) FindProduct(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Find(id)
}

// AddProduct adds a product manually.
func (s *Session) AddProduct(name, code, unit string) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.catalog.Add(name, code, unit)
	if err != nil {
		return Product{}, err
	}
	s.audit.Record(AuditLogParams{
		Action:      ActionProductAdd,
		ProductID:   p.ID,
		ProductCode: p.Code,
		NewValue:    p.Name,
	})
	s.log.Info("product added", "product_id", p.ID, "code", p.Code)
	return p, nil
}

// RemoveProduct deletes a product and every order for it.
// Returns the number of cascaded orders and whether the product existed.
func (s *Session) RemoveProduct(id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog.Find(id)
	if !ok {
		return 0, false
	}
	before := s.ledger.Len()
	s.catalog.Remove(id)
	removed := before - s.ledger.Len()

	s.audit.Record(AuditLogParams{
		Action:       ActionProductRemove,
		ProductID:    id,
		ProductCode:  p.Code,
		OldValue:     p.Name,
		RowsAffected: removed,
	})
	s.log.Info("product removed", "product_id", id, "orders_removed", removed)
	return removed, true
}

// ImportRows merges decoded spreadsheet rows into the catalog as one batch.
func (s *Session) ImportRows(rows []Row) ImportResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := Merge(rows, s.catalog)
	s.audit.Record(AuditLogParams{Action: ActionImport, RowsAffected: res.Added})
	s.log.Info("import merged",
		"rows", len(rows),
		"added", res.Added,
		"skipped", res.Skipped,
		"ignored", res.Ignored,
	)
	return res
}

// PreviewImport reports what ImportRows would do with rows, without changing the catalog.
func (s *Session) PreviewImport(rows []Row) ImportPreview {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return PreviewMerge(rows, s.catalog)
}

// Users returns the user display names in order.
func (s *Session) Users() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.List()
}

// RenameUser changes the display name at index.
func (s *Session) RenameUser(index int, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, err := s.users.Name(index)
	if err != nil {
		return err
	}
	if err := s.users.Rename(index, name); err != nil {
		return err
	}
	renamed, _ := s.users.Name(index)
	s.audit.Record(AuditLogParams{Action: ActionUserRename, OldValue: old, NewValue: renamed})
	s.log.Info("user renamed", "index", index)
	return nil
}

// RecordOrder records an order by the user at userIndex.
// The user's current name is copied into the entry.
func (s *Session) RecordOrder(productID string, quantity, userIndex int) (OrderEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, err := s.users.Name(userIndex)
	if err != nil {
		return OrderEntry{}, err
	}
	e, err := s.ledger.Record(productID, quantity, name)
	if err != nil {
		return OrderEntry{}, err
	}
	p, _ := s.catalog.Find(productID)
	s.audit.Record(AuditLogParams{
		Action:       ActionOrderRecord,
		ProductID:    productID,
		ProductCode:  p.Code,
		UserName:     e.UserName,
		NewValue:     strconv.Itoa(quantity),
		RowsAffected: 1,
	})
	s.log.Debug("order recorded", "product_id", productID, "quantity", quantity, "user_index", userIndex)
	return e, nil
}

// Orders returns the ledger in insertion order.
func (s *Session) Orders() []OrderEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.All()
}

// Summary derives the per-product rollup from the current state.
func (s *Session) Summary() []SummaryRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summarize(s.catalog, s.ledger)
}

// WriteExport writes the current summary to w. The lock is released before writing.
func (s *Session) WriteExport(w io.Writer) error {
	return WriteDelimited(w, s.Summary())
}

// AuditLog returns recorded session changes matching filter, newest first.
func (s *Session) AuditLog(filter AuditFilter) []AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.audit.Entries(filter)
}

// Stats returns the current store sizes.
func (s *Session) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Products: s.catalog.Len(),
		Users:    s.users.Len(),
		Orders:   s.ledger.Len(),
	}
}
