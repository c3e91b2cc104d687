package core

import (
	"io"
	"strconv"
	"strings"
)

// ExportHeader is the first line of the delimited summary export.
var ExportHeader = []string{
	"Название",
	"Код товара",
	"Единица измерения",
	"Общее количество",
	"Пользователи",
}

// OrdererSeparator joins the orderers of one summary row.
const OrdererSeparator = ", "

// ToDelimitedText renders summary rows as comma-delimited text.
func ToDelimitedText(rows []SummaryRow) string {
	var b strings.Builder
	// strings.Builder never returns a write error
	_ = WriteDelimited(&b, rows)
	return b.String()
}

// WriteDelimited writes the header line and one line per summary row to w.
//
// Text fields are always quoted with embedded quotes doubled, so names
// containing commas, quotes or newlines survive a round trip through any
// CSV reader. The total quantity is written as a bare integer.
func WriteDelimited(w io.Writer, rows []SummaryRow) error {
	if _, err := io.WriteString(w, strings.Join(ExportHeader, ",")+"\n"); err != nil {
		return err
	}

	var line strings.Builder
	for _, row := range rows {
		line.Reset()
		line.WriteString(quoteField(row.Product.Name))
		line.WriteByte(',')
		line.WriteString(quoteField(row.Product.Code))
		line.WriteByte(',')
		line.WriteString(quoteField(row.Product.Unit))
		line.WriteByte(',')
		line.WriteString(strconv.Itoa(row.TotalQuantity))
		line.WriteByte(',')
		line.WriteString(quoteField(strings.Join(row.Orderers, OrdererSeparator)))
		line.WriteByte('\n')

		if _, err := io.WriteString(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
