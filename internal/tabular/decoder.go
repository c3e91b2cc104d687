// Package tabular decodes uploaded spreadsheets into header-keyed rows.
//
// Supported inputs are delimited text (.csv, .txt) and Office Open XML
// workbooks (.xlsx, .xlsm). The first non-empty record is the header; every
// later non-empty record becomes one row keyed by the cleaned header text.
package tabular

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/orderdesk/internal/core"
)

var (
	// ErrUnsupportedFormat is returned for file types the decoder cannot read.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmptyFile is returned when the input has no header record.
	ErrEmptyFile = errors.New("empty file")
)

// DecodeError reports a failure to decode one uploaded file.
type DecodeError struct {
	Filename string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Filename, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// zipMagic starts every .xlsx container.
var zipMagic = []byte("PK\x03\x04")

// Decode reads r fully and decodes it according to the extension of filename.
// Files without an extension are sniffed: zip containers are treated as
// workbooks, anything else as delimited text. Callers bound the size of r.
func Decode(r io.Reader, filename string) ([]core.Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DecodeError{Filename: filename, Err: err}
	}

	var rows []core.Row
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv", ".txt":
		rows, err = DecodeCSV(data)
	case ".xlsx", ".xlsm":
		rows, err = DecodeXLSX(data)
	case ".xls":
		err = fmt.Errorf("%w: re-save legacy .xls workbooks as .xlsx", ErrUnsupportedFormat)
	case "":
		if bytes.HasPrefix(data, zipMagic) {
			rows, err = DecodeXLSX(data)
		} else {
			rows, err = DecodeCSV(data)
		}
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, &DecodeError{Filename: filename, Err: err}
	}
	return rows, nil
}

// buildRows turns raw records into header-keyed rows.
func buildRows(records [][]string) ([]core.Row, error) {
	var header []string
	var rows []core.Row

	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		if header == nil {
			header = make([]string, len(rec))
			for i, cell := range rec {
				header[i] = core.CleanCell(cell)
			}
			continue
		}

		row := make(core.Row, len(header))
		for i, cell := range rec {
			if i >= len(header) {
				break
			}
			key := header[i]
			if key == "" {
				continue
			}
			// repeated header: the first non-empty cell wins
			if prev, ok := row[key]; ok && prev != "" {
				continue
			}
			row[key] = core.CleanValue(cell)
		}
		rows = append(rows, row)
	}

	if header == nil {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
