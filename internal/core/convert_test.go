package core

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

type stringerCell struct{}

func (stringerCell) String() string { return " cell " }

func TestCellText(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string trimmed", "  Соль ", "Соль"},
		{"whole float", float64(1001), "1001"},
		{"fractional float", 2.75, "2.75"},
		{"float32", float32(0.5), "0.5"},
		{"zero is text", 0, "0"},
		{"int64", int64(-7), "-7"},
		{"uint", uint(9), "9"},
		{"json number", json.Number("12.50"), "12.50"},
		{"decimal", decimal.RequireFromString("3.10"), "3.1"},
		{"bool", true, "true"},
		{"stringer", stringerCell{}, "cell"},
		{"NaN", math.NaN(), "NaN"},
		{"slice falls back to fmt", []int{1}, "[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CellText(tt.in); got != tt.want {
				t.Errorf("CellText(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Название ", "Название"},
		{`="00123"`, "00123"},
		{"=SUM", "SUM"},
		{`"Код"`, "Код"},
		{`'unit'`, "unit"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CleanCell(tt.in); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Соль ", "Соль"},
		{`="00123"`, "00123"},
		{`="Труба 1/2"""`, `Труба 1/2"`},
		{`Труба 1/2"`, `Труба 1/2"`},
		{`"Код"`, `"Код"`},
		{"'unit'", "'unit'"},
		{"=5 кг", "=5 кг"},
		{`="a"b"`, `="a"b"`},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CleanValue(tt.in); got != tt.want {
				t.Errorf("CleanValue(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
