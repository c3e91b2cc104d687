package core

// Sample limits
const (
	maxNewRowSamples    = 10
	maxDuplicateSamples = 10
	maxIgnoredSamples   = 20
)

// CodeChecker reports whether a product code is taken. Satisfied by *Catalog.
type CodeChecker interface {
	HasCode(code string) bool
}

// PreviewSummary contains the counts Merge would produce for the batch.
type PreviewSummary struct {
	TotalRows          int `json:"total_rows"`
	NewRows            int `json:"new_rows"`
	DuplicateInCatalog int `json:"duplicate_in_catalog"`
	DuplicateInFile    int `json:"duplicate_in_file"`
	IgnoredRows        int `json:"ignored_rows"`
}

// RowPreview is a product row that would be added. Row is the 1-based
// position in the decoded batch.
type RowPreview struct {
	Row  int    `json:"row"`
	Name string `json:"name"`
	Code string `json:"code"`
	Unit string `json:"unit"`
}

// DuplicatePreview is a code that would be skipped at least once.
// Rows lists every batch row carrying it; InCatalog is true when the code
// already existed before the import, false when an earlier row claimed it.
type DuplicatePreview struct {
	Code      string `json:"code"`
	Rows      []int  `json:"rows"`
	InCatalog bool   `json:"in_catalog"`
}

// IgnoredPreview is a row that would be ignored for lacking product fields.
type IgnoredPreview struct {
	Row     int               `json:"row"`
	Values  map[string]string `json:"values"`
	Missing []string          `json:"missing"`
}

// ImportPreview describes what Merge would do with a batch.
type ImportPreview struct {
	Summary          PreviewSummary     `json:"summary"`
	Columns          HeaderMatch        `json:"columns"`
	NewRowSamples    []RowPreview       `json:"new_row_samples"`
	DuplicateSamples []DuplicatePreview `json:"duplicate_samples"`
	IgnoredSamples   []IgnoredPreview   `json:"ignored_samples"`
}

// Result converts the preview to the ImportResult Merge would return,
// minus the per-row duplicate list.
func (p ImportPreview) Result() ImportResult {
	return ImportResult{
		Added:   p.Summary.NewRows,
		Skipped: p.Summary.DuplicateInCatalog + p.Summary.DuplicateInFile,
		Ignored: p.Summary.IgnoredRows,
	}
}

// PreviewMerge runs the Merge fold against existing without changing it.
// Counts always match a Merge of the same rows into the same catalog; the
// sample slices are capped.
func PreviewMerge(rows []Row, existing CodeChecker) ImportPreview {
	var (
		p        ImportPreview
		claimed  = make(map[string]bool) // codes added earlier in the batch
		reported = make(map[string]bool)
		codeRows = make(map[string][]int)
		dupCodes []string
	)
	p.Summary.TotalRows = len(rows)
	p.Columns = MatchHeaders(rowHeaders(rows))

	for i, row := range rows {
		rowNum := i + 1
		name, code, unit, missing := resolveProduct(row)

		if len(missing) > 0 {
			p.Summary.IgnoredRows++
			if len(p.IgnoredSamples) < maxIgnoredSamples {
				p.IgnoredSamples = append(p.IgnoredSamples, IgnoredPreview{
					Row:     rowNum,
					Values:  normalizeRow(row),
					Missing: missing,
				})
			}
			continue
		}

		switch {
		case existing != nil && existing.HasCode(code):
			p.Summary.DuplicateInCatalog++
		case claimed[code]:
			p.Summary.DuplicateInFile++
		default:
			claimed[code] = true
			p.Summary.NewRows++
			if len(p.NewRowSamples) < maxNewRowSamples {
				p.NewRowSamples = append(p.NewRowSamples, RowPreview{Row: rowNum, Name: name, Code: code, Unit: unit})
			}
			codeRows[code] = append(codeRows[code], rowNum)
			continue
		}

		if !reported[code] {
			reported[code] = true
			dupCodes = append(dupCodes, code)
		}
		codeRows[code] = append(codeRows[code], rowNum)
	}

	for _, code := range dupCodes {
		if len(p.DuplicateSamples) == maxDuplicateSamples {
			break
		}
		p.DuplicateSamples = append(p.DuplicateSamples, DuplicatePreview{
			Code:      code,
			Rows:      codeRows[code],
			InCatalog: existing != nil && existing.HasCode(code),
		})
	}
	return p
}
