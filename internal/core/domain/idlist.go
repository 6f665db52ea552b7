package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// IDList is an ordered list of fragment ids.
// The sheets store it as a list literal such as "[1, 2, 3]".
type IDList []int

// Contains reports whether id is in the list.
func (l IDList) Contains(id int) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// With returns the list with id appended, unless it is already present.
// The receiver is never modified.
func (l IDList) With(id int) IDList {
	out := make(IDList, len(l), len(l)+1)
	copy(out, l)
	if l.Contains(id) {
		return out
	}
	return append(out, id)
}

// String renders the list in the literal form stored in the sheets.
func (l IDList) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ParseIDList parses a stored list literal. An empty cell is an empty list.
// Square brackets and parentheses are both accepted.
func ParseIDList(raw string) (IDList, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return IDList{}, nil
	}
	if (strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")) ||
		(strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")) {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return IDList{}, nil
	}

	fields := strings.Split(s, ",")
	out := make(IDList, 0, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" && i == len(fields)-1 {
			continue // trailing comma
		}
		v, ok := ParseInt(f)
		if !ok {
			return nil, fmt.Errorf("%w: id list %q: element %q is not an integer", ErrInvalidInput, raw, f)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseInt parses a cell holding an integer. Integral floats such as "3.0"
// are accepted because spreadsheets often render numbers that way.
func ParseInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int(f), true
}
