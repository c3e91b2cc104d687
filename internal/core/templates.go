package core

import "sort"

// ImportHeader is the header row of a blank import template.
var ImportHeader = []string{NameAliases[0], CodeAliases[0], UnitAliases[0]}

// HeaderMatch reports which header supplies each product field.
// An empty field means no header matched any of its aliases.
type HeaderMatch struct {
	Name    string   `json:"name"`
	Code    string   `json:"code"`
	Unit    string   `json:"unit"`
	Missing []string `json:"missing,omitempty"`
}

// Complete reports whether every product field has a header.
func (m HeaderMatch) Complete() bool {
	return len(m.Missing) == 0
}

// MatchHeaders maps raw headers onto product fields using the alias lists.
// Headers are compared after NormalizeHeader; when several match, the one
// matching the earliest alias wins and ties go to the first header given.
func MatchHeaders(headers []string) HeaderMatch {
	normalized := make(map[string]string, len(headers))
	for _, h := range headers {
		key := NormalizeHeader(h)
		if _, ok := normalized[key]; !ok {
			normalized[key] = h
		}
	}

	pick := func(aliases []string) string {
		for _, alias := range aliases {
			if raw, ok := normalized[alias]; ok {
				return raw
			}
		}
		return ""
	}

	m := HeaderMatch{
		Name: pick(NameAliases),
		Code: pick(CodeAliases),
		Unit: pick(UnitAliases),
	}
	if m.Name == "" {
		m.Missing = append(m.Missing, FieldName)
	}
	if m.Code == "" {
		m.Missing = append(m.Missing, FieldCode)
	}
	if m.Unit == "" {
		m.Missing = append(m.Missing, FieldUnit)
	}
	return m
}

// rowHeaders returns every key used by rows, sorted.
func rowHeaders(rows []Row) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range rows {
		for k := range row {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				out = append(out, k)
			}
		}
	}
	sort.Strings(out)
	return out
}
