// Package core provides the catalog, order ledger and summary logic for procurement orders.
//
// This package holds all domain state and rules, independent of any UI or
// transport layer. The web package and tests drive it through [Session].
//
// # Stores
//
// A session owns three stores:
//
//   - [Catalog]: orderable products, unique by code, with stable generated IDs.
//   - [Registry]: a fixed-length list of user display names addressed by index.
//   - [Ledger]: order entries in insertion order.
//
// Removing a product from the catalog removes every ledger entry for it. The
// cascade is wired with [Catalog.OnRemove] when the session is built.
//
// # Import
//
// Decoded spreadsheet rows are folded into the catalog by [Merge]. Each row
// is matched against [NameAliases], [CodeAliases] and [UnitAliases]:
//
//	res := session.ImportRows([]core.Row{
//	    {"Название": "Соль", "Код": "SL-1", "Единица": "кг"},
//	    {"name": "Salt", "code": "SL-1", "unit": "kg"}, // skipped, duplicate code
//	})
//	// res.Added == 1, res.Skipped == 1
//
// # Summary and Export
//
// [Summarize] derives one [SummaryRow] per ordered product, in order of the
// product's first ledger entry. [WriteDelimited] renders the rows as
// comma-delimited text with quoted text fields.
//
// # Error Handling
//
// Mutators return [*ValidationError], [*DuplicateCodeError] or
// [*UnknownProductError] and leave state untouched on failure. [MapError]
// converts any error to a coded, user-facing message:
//
//   - VAL001-VAL005: validation errors
//   - CAT001-CAT002: catalog errors
//   - FILE001-FILE005: import file errors
//   - RATE001: rate limiting
package core
