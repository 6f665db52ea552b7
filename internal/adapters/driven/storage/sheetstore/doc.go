// Package sheetstore maps worksheet rows onto typed records.
//
// A Repository pairs a driven.Worksheet with a Codec describing one record
// type. Each operation reads the whole sheet, normalises empty cells to
// absent, coerces the id column to an integer and acts on the first
// matching row. Row numbers are derived from the read and used only for
// the write that follows it: rows shift when others are deleted.
package sheetstore
