package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previewRows() []Row {
	return []Row{
		{"Название": "Мука", "Код": "X-9", "Единица": "кг"},
		{"name": "Flour", "code": "X-9", "unit": "kg"},
		{"Название": "Соль", "Код": "S-1", "Единица": "кг"},
		{"Название": "Без кода", "Единица": "шт"},
		{"Название": "Сахар", "Код": "S-2", "Единица": "кг"},
		{"Название": "Мука 2", "Код": "X-9", "Единица": "кг"},
	}
}

func TestPreviewMerge(t *testing.T) {
	catalog := NewCatalog()
	_, err := catalog.Add("Соль", "S-1", "кг")
	require.NoError(t, err)

	p := PreviewMerge(previewRows(), catalog)

	assert.Equal(t, PreviewSummary{
		TotalRows:          6,
		NewRows:            2,
		DuplicateInCatalog: 1,
		DuplicateInFile:    2,
		IgnoredRows:        1,
	}, p.Summary)

	assert.Equal(t, []RowPreview{
		{Row: 1, Name: "Мука", Code: "X-9", Unit: "кг"},
		{Row: 5, Name: "Сахар", Code: "S-2", Unit: "кг"},
	}, p.NewRowSamples)

	assert.Equal(t, []DuplicatePreview{
		{Code: "X-9", Rows: []int{1, 2, 6}, InCatalog: false},
		{Code: "S-1", Rows: []int{3}, InCatalog: true},
	}, p.DuplicateSamples)

	require.Len(t, p.IgnoredSamples, 1)
	assert.Equal(t, 4, p.IgnoredSamples[0].Row)
	assert.Equal(t, []string{FieldCode}, p.IgnoredSamples[0].Missing)

	assert.Equal(t, 1, catalog.Len(), "preview must not change the catalog")
}

func TestPreviewMerge_MatchesMerge(t *testing.T) {
	catalog := NewCatalog()
	_, err := catalog.Add("Соль", "S-1", "кг")
	require.NoError(t, err)

	preview := PreviewMerge(previewRows(), catalog)
	res := Merge(previewRows(), catalog)

	want := preview.Result()
	assert.Equal(t, want.Added, res.Added)
	assert.Equal(t, want.Skipped, res.Skipped)
	assert.Equal(t, want.Ignored, res.Ignored)
}

func TestPreviewMerge_SamplesCapped(t *testing.T) {
	rows := make([]Row, 0, 40)
	for i := 0; i < 40; i++ {
		rows = append(rows, Row{"name": "x"})
	}

	p := PreviewMerge(rows, nil)
	assert.Equal(t, 40, p.Summary.IgnoredRows)
	assert.Len(t, p.IgnoredSamples, maxIgnoredSamples)
	assert.Equal(t, []string{FieldCode, FieldUnit}, p.IgnoredSamples[0].Missing)
}

func TestSession_PreviewImport(t *testing.T) {
	s := NewSession(SessionOptions{})

	p := s.PreviewImport([]Row{{"name": "Соль", "code": "S-1", "unit": "кг"}})
	assert.Equal(t, 1, p.Summary.NewRows)
	assert.Empty(t, s.Products())
}
