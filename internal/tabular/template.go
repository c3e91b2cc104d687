package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/orderdesk/internal/core"
)

// Template formats accepted by WriteTemplate.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// TemplateSheet names the worksheet of the XLSX template.
const TemplateSheet = "Товары"

var templateContentTypes = map[string]string{
	FormatCSV:  "text/csv; charset=utf-8",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// TemplateContentType returns the MIME type for a template format.
func TemplateContentType(format string) (string, bool) {
	ct, ok := templateContentTypes[strings.ToLower(format)]
	return ct, ok
}

// WriteTemplate writes a blank import file holding only core.ImportHeader.
// CSV output starts with a UTF-8 BOM so Excel detects the encoding.
func WriteTemplate(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case FormatCSV:
		return writeCSVTemplate(w)
	case FormatXLSX:
		return writeXLSXTemplate(w)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func writeCSVTemplate(w io.Writer) error {
	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(core.ImportHeader); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSXTemplate(w io.Writer) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName("Sheet1", TemplateSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(core.ImportHeader))
	for i, h := range core.ImportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(TemplateSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	lastCell, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(TemplateSheet, "A1", lastCell, bold); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(TemplateSheet, "A", lastCol, 24); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
