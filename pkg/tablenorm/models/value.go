// Package models defines data structures for table normalization.
package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which field of a Value is set.
type Kind int

const (
	// KindNull is an absent cell.
	KindNull Kind = iota
	// KindText is a string cell.
	KindText
	// KindNumber is a numeric cell.
	KindNumber
	// KindBool is a boolean cell.
	KindBool
)

// Value is a single cell value as read from the source.
// The zero Value is Null.
type Value struct {
	Kind Kind
	Text string
	Num  float64
	Bool bool
}

// Null returns an absent cell.
func Null() Value { return Value{} }

// Text returns a string cell.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Number returns a numeric cell.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// Bool returns a boolean cell.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// String returns the text representation used for header cells.
// Null becomes the empty string. Numbers switch to exponent form below
// 1e-4 or from 1e16 up.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return formatNumber(v.Num)
	case KindBool:
		if v.Bool {
			return "True"
		}
		return "False"
	default:
		return ""
	}
}

// IsEmpty reports whether the cell is null or blank after trimming.
func (v Value) IsEmpty() bool {
	if v.Kind == KindNull {
		return true
	}
	return strings.TrimSpace(v.String()) == ""
}

// MarshalJSON encodes the value with its native JSON type.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindText:
		return json.Marshal(v.Text)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	default:
		return []byte("null"), nil
	}
}

func formatNumber(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
