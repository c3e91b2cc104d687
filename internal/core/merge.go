package core

import (
	"errors"
	"maps"
	"slices"
)

// Header spellings accepted for each product field, tried in order.
// The first spelling present with a non-empty value wins.
var (
	NameAliases = []string{"Название", "название", "name"}
	CodeAliases = []string{"Код", "код", "code"}
	UnitAliases = []string{"Единица", "единица", "unit"}
)

// Merge adds the products described by rows to catalog.
//
// Each row must resolve a name, code and unit through the alias lists; rows
// that don't are ignored. A complete row whose code is already in the catalog
// is skipped and its code is reported in Duplicates. Rows are folded in order,
// so a code added by an earlier row in the same batch counts as existing for
// later rows. Merge never fails.
func Merge(rows []Row, catalog *Catalog) ImportResult {
	var res ImportResult

	for _, row := range rows {
		name, code, unit, missing := resolveProduct(row)
		if len(missing) > 0 {
			res.Ignored++
			continue
		}

		if _, err := catalog.Add(name, code, unit); err != nil {
			if errors.Is(err, ErrDuplicateCode) {
				res.Skipped++
				res.Duplicates = append(res.Duplicates, code)
				continue
			}
			// all three fields are non-empty here, so Add can only fail on duplicates
			res.Ignored++
			continue
		}
		res.Added++
	}

	return res
}

// resolveProduct reads the product fields of row through the alias lists.
// missing names the fields that resolved to nothing.
func resolveProduct(row Row) (name, code, unit string, missing []string) {
	fields := normalizeRow(row)
	name = lookupAlias(fields, NameAliases)
	code = lookupAlias(fields, CodeAliases)
	unit = lookupAlias(fields, UnitAliases)

	if name == "" {
		missing = append(missing, FieldName)
	}
	if code == "" {
		missing = append(missing, FieldCode)
	}
	if unit == "" {
		missing = append(missing, FieldUnit)
	}
	return name, code, unit, missing
}

// normalizeRow rekeys a row by NormalizeHeader. When several raw keys
// normalize to the same header, a non-empty value beats an empty one, a key
// already in normal form beats one that needed trimming, and otherwise the
// raw keys are taken in sorted order.
func normalizeRow(row Row) map[string]string {
	type field struct {
		text  string
		exact bool
	}

	fields := make(map[string]field, len(row))
	for _, k := range slices.Sorted(maps.Keys(row)) {
		key := NormalizeHeader(k)
		f := field{text: CellText(row[k]), exact: k == key}

		prev, ok := fields[key]
		switch {
		case !ok:
		case prev.text == "" && f.text != "":
		case f.text != "" && f.exact && !prev.exact:
		default:
			continue
		}
		fields[key] = f
	}

	out := make(map[string]string, len(fields))
	for key, f := range fields {
		out[key] = f.text
	}
	return out
}

func lookupAlias(fields map[string]string, aliases []string) string {
	for _, alias := range aliases {
		if v := fields[alias]; v != "" {
			return v
		}
	}
	return ""
}
