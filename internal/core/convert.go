package core

// convert.go turns loosely-typed spreadsheet cells into the text the catalog stores.
//
// Decoded rows come from several sources with different ideas of a cell:
//   - CSV decoders produce strings only
//   - XLSX decoders may hand back numbers (codes like 1001 stored as numeric cells)
//   - JSON import payloads produce float64, bool and json.Number
//
// Everything is coerced to trimmed text before lookup or comparison.

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// CellText coerces a decoded cell value to trimmed text.
// Floats are formatted without a trailing fraction when they are whole, so a
// numeric code cell 1001.0 becomes "1001". nil becomes "".
func CellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return strings.TrimSpace(val.String())
	case decimal.Decimal:
		return val.String()
	case float64:
		return formatFloat(val, 64)
	case float32:
		return formatFloat(float64(val), 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

func formatFloat(f float64, bits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	if bits == 32 {
		return decimal.NewFromFloat32(float32(f)).String()
	}
	return decimal.NewFromFloat(f).String()
}

// CleanValue trims a data cell and unwraps the Excel text formula ="...".
// Quotes, apostrophes and a bare leading = are part of the value and kept.
func CleanValue(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 3 && strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		inner := s[2 : len(s)-1]
		if !strings.Contains(strings.ReplaceAll(inner, `""`, ""), `"`) {
			s = strings.TrimSpace(strings.ReplaceAll(inner, `""`, `"`))
		}
	}
	return s
}

// CleanCell removes common spreadsheet artifacts from a header cell:
//   - Trims whitespace
//   - Removes Excel formula prefix (="...")
//   - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") && len(s) >= 3 {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// NormalizeHeader trims a header key and puts it in Unicode NFC form.
// Spreadsheets saved on different systems may store "й" as one code point or
// as "и" plus a combining breve; both must match the same alias.
func NormalizeHeader(key string) string {
	return norm.NFC.String(strings.TrimSpace(key))
}
