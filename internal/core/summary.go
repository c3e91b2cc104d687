package core

// summaryAcc accumulates one product's rollup while scanning the ledger.
type summaryAcc struct {
	row  SummaryRow
	seen map[string]struct{}
}

// Summarize rolls ledger entries up per product.
//
// Entries are scanned in insertion order. Rows come out in the order their
// product was first seen, and each row's Orderers lists distinct user names in
// the order they first ordered that product. Entries whose product cannot be
// resolved are skipped. The result depends only on the inputs.
func Summarize(products ProductFinder, entries EntrySource) []SummaryRow {
	var accs []*summaryAcc
	index := make(map[string]int)

	for _, e := range entries.All() {
		product, ok := products.Find(e.ProductID)
		if !ok {
			continue
		}

		if i, ok := index[e.ProductID]; ok {
			acc := accs[i]
			acc.row.TotalQuantity += e.Quantity
			if _, dup := acc.seen[e.UserName]; !dup {
				acc.seen[e.UserName] = struct{}{}
				acc.row.Orderers = append(acc.row.Orderers, e.UserName)
			}
			continue
		}

		index[e.ProductID] = len(accs)
		accs = append(accs, &summaryAcc{
			row: SummaryRow{
				Product:       product,
				TotalQuantity: e.Quantity,
				Orderers:      []string{e.UserName},
			},
			seen: map[string]struct{}{e.UserName: {}},
		})
	}

	rows := make([]SummaryRow, len(accs))
	for i, acc := range accs {
		rows[i] = acc.row
	}
	return rows
}
