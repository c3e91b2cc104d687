package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/JonMunkholm/orderdesk/internal/core"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// candidate delimiters in tie-break order
var delimiters = []rune{',', ';', '\t'}

// DecodeCSV decodes delimited text.
//
// A byte order mark selects UTF-8 or UTF-16. Without one, valid UTF-8 is read
// as is and anything else is read as Windows-1251, the code page Excel uses
// for CSV on Russian-locale systems. The delimiter is sniffed from the first
// non-empty line.
func DecodeCSV(data []byte) ([]core.Row, error) {
	text, err := io.ReadAll(textReader(data))
	if err != nil {
		return nil, fmt.Errorf("transcode: %w", err)
	}
	if len(bytes.TrimSpace(text)) == 0 {
		return nil, ErrEmptyFile
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return buildRows(records)
}

func textReader(data []byte) io.Reader {
	fallback := unicode.UTF8.NewDecoder()
	if !utf8.Valid(data) {
		fallback = charmap.Windows1251.NewDecoder()
	}
	return transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(fallback))
}

// sniffDelimiter counts candidate delimiters outside quotes on the first
// non-empty line and returns the most frequent. Comma wins ties and empty input.
func sniffDelimiter(text []byte) rune {
	sc := bufio.NewScanner(bytes.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var line string
	for sc.Scan() {
		if len(bytes.TrimSpace(sc.Bytes())) > 0 {
			line = sc.Text()
			break
		}
	}

	counts := make(map[rune]int, len(delimiters))
	inQuotes := false
	for _, c := range line {
		if c == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[c]++
		}
	}

	best := delimiters[0]
	for _, d := range delimiters[1:] {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}
