package core

// Product is an orderable catalog item.
// ID is assigned by the Catalog and never changes; Code is unique within the catalog.
type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	Unit string `json:"unit"`
}

// OrderEntry records that a user asked for a quantity of a product.
//
// UserName is a snapshot of the user's display name at the time the entry was
// recorded. Renaming the user later does not rewrite existing entries.
type OrderEntry struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UserName  string `json:"user_name"`
}

// SummaryRow is the per-product rollup derived from the ledger.
type SummaryRow struct {
	Product       Product  `json:"product"`
	TotalQuantity int      `json:"total_quantity"`
	Orderers      []string `json:"orderers"` // distinct user names, first-appearance order
}

// Row is one decoded spreadsheet row: header text to cell value.
// Values are usually strings but may be numbers or other scalars depending on the decoder.
type Row = map[string]any

// ImportResult summarizes one merge batch.
type ImportResult struct {
	Added      int      `json:"added"`
	Skipped    int      `json:"skipped"`    // complete rows whose code already existed
	Ignored    int      `json:"ignored"`    // rows missing name, code or unit
	Duplicates []string `json:"duplicates"` // codes of skipped rows, in row order
}

// Total returns the number of rows the batch looked at.
func (r ImportResult) Total() int {
	return r.Added + r.Skipped + r.Ignored
}

// Stats is a point-in-time count of the session's stores.
type Stats struct {
	Products int `json:"products"`
	Users    int `json:"users"`
	Orders   int `json:"orders"`
}

// ProductFinder resolves product IDs. Satisfied by *Catalog.
type ProductFinder interface {
	Find(id string) (Product, bool)
}

// EntrySource yields ledger entries in insertion order. Satisfied by *Ledger.
type EntrySource interface {
	All() []OrderEntry
}
