package core

import (
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDelimitedText_Shape(t *testing.T) {
	c := NewCatalog()
	l := NewLedger(c)
	p, _ := c.Add("Соль", "S-1", "кг")
	_, _ = l.Record(p.ID, 2, "Анна")
	_, _ = l.Record(p.ID, 5, "Борис")

	text := ToDelimitedText(Summarize(c, l))
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	require.Len(t, lines, 2)
	assert.Equal(t, "Название,Код товара,Единица измерения,Общее количество,Пользователи", lines[0])
	assert.Equal(t, `"Соль","S-1","кг",7,"Анна, Борис"`, lines[1])
}

func TestToDelimitedText_Empty(t *testing.T) {
	text := ToDelimitedText(nil)
	assert.Equal(t, strings.Join(ExportHeader, ",")+"\n", text)
}

func TestToDelimitedText_EscapesForCSVReaders(t *testing.T) {
	rows := []SummaryRow{{
		Product:       Product{Name: `Масло "Крестьянское", 82%`, Code: "M-1", Unit: "шт\nуп"},
		TotalQuantity: 3,
		Orderers:      []string{`Иван "Шеф"`, "Ольга"},
	}}

	records, err := csv.NewReader(strings.NewReader(ToDelimitedText(rows))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{
		`Масло "Крестьянское", 82%`,
		"M-1",
		"шт\nуп",
		"3",
		`Иван "Шеф", Ольга`,
	}, records[1])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteDelimited_PropagatesWriteErrors(t *testing.T) {
	err := WriteDelimited(failingWriter{}, nil)
	assert.EqualError(t, err, "disk full")
}
