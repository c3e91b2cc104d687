package tabular

import (
	"bytes"
	"fmt"

	"github.com/JonMunkholm/orderdesk/internal/core"
	"github.com/xuri/excelize/v2"
)

// DecodeXLSX decodes the first worksheet of an Office Open XML workbook.
func DecodeXLSX(data []byte) (rows []core.Row, err error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return buildRows(records)
}
