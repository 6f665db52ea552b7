package sheetstore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
)

// Codec converts between worksheet rows and records of type T.
type Codec[T any] struct {
	// IDColumn holds the record key.
	IDColumn string

	// ParentColumn holds the owning record's key, or "" if T has no parent.
	ParentColumn string

	// Decode parses a normalised row. Absent cells are missing keys.
	Decode func(row driven.Row) (T, error)

	// Encode renders a record as cells keyed by column.
	Encode func(record T) map[string]string
}

// SiteCodec maps the Site sheet.
func SiteCodec() Codec[domain.Site] {
	return Codec[domain.Site]{
		IDColumn: domain.ColSiteID,
		Decode: func(row driven.Row) (domain.Site, error) {
			id, err := requiredInt(row, domain.ColSiteID)
			if err != nil {
				return domain.Site{}, err
			}
			u, ok := row[domain.ColSiteURL]
			if !ok {
				return domain.Site{}, fmt.Errorf("%s is required", domain.ColSiteURL)
			}
			ids, err := domain.ParseIDList(row[domain.ColTrechosIDs])
			if err != nil {
				return domain.Site{}, err
			}
			return domain.Site{SiteID: id, SiteURL: u, TrechosIDs: ids}, nil
		},
		Encode: func(s domain.Site) map[string]string {
			return map[string]string{
				domain.ColSiteID:     strconv.Itoa(s.SiteID),
				domain.ColSiteURL:    s.SiteURL,
				domain.ColTrechosIDs: s.TrechosIDs.String(),
			}
		},
	}
}

// TrechoCodec maps the fragment sheet. Fragments belong to sites.
func TrechoCodec() Codec[domain.Trecho] {
	return Codec[domain.Trecho]{
		IDColumn:     domain.ColTrechoID,
		ParentColumn: domain.ColSiteID,
		Decode: func(row driven.Row) (domain.Trecho, error) {
			conteudo, ok := row[domain.ColConteudo]
			if !ok {
				return domain.Trecho{}, fmt.Errorf("%s is required", domain.ColConteudo)
			}
			t := domain.Trecho{
				Conteudo:     conteudo,
				TrechoHash:   optionalString(row, domain.ColTrechoHash),
				SnapshotName: optionalString(row, domain.ColSnapshotName),
				VideoURL:     optionalString(row, domain.ColVideoURL),
			}
			var err error
			if t.TrechoID, err = optionalInt(row, domain.ColTrechoID); err != nil {
				return domain.Trecho{}, err
			}
			if t.SiteID, err = optionalInt(row, domain.ColSiteID); err != nil {
				return domain.Trecho{}, err
			}
			if t.InterpreteID, err = optionalInt(row, domain.ColInterpreteID); err != nil {
				return domain.Trecho{}, err
			}
			return t, nil
		},
		Encode: func(t domain.Trecho) map[string]string {
			return map[string]string{
				domain.ColTrechoID:     Stringify(t.TrechoID),
				domain.ColTrechoHash:   Stringify(t.TrechoHash),
				domain.ColConteudo:     t.Conteudo,
				domain.ColSiteID:       Stringify(t.SiteID),
				domain.ColInterpreteID: Stringify(t.InterpreteID),
				domain.ColSnapshotName: Stringify(t.SnapshotName),
				domain.ColVideoURL:     Stringify(t.VideoURL),
			}
		},
	}
}

// InterpreteCodec maps the interpreter sheet.
func InterpreteCodec() Codec[domain.Interprete] {
	return Codec[domain.Interprete]{
		IDColumn: domain.ColInterpreteID,
		Decode: func(row driven.Row) (domain.Interprete, error) {
			id, err := requiredInt(row, domain.ColInterpreteID)
			if err != nil {
				return domain.Interprete{}, err
			}
			ids, err := domain.ParseIDList(row[domain.ColTrechosIDs])
			if err != nil {
				return domain.Interprete{}, err
			}
			return domain.Interprete{InterpreteID: id, TrechosIDs: ids}, nil
		},
		Encode: func(i domain.Interprete) map[string]string {
			return map[string]string{
				domain.ColInterpreteID: strconv.Itoa(i.InterpreteID),
				domain.ColTrechosIDs:   i.TrechosIDs.String(),
			}
		},
	}
}

// Stringify renders a value for a cell. Nil, including typed nil
// pointers, becomes an empty cell.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case int:
		return strconv.Itoa(v)
	case *int:
		if v == nil {
			return ""
		}
		return strconv.Itoa(*v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// normalise drops empty cells so they read as absent.
func normalise(row driven.Row) driven.Row {
	out := make(driven.Row, len(row))
	for k, v := range row {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out[k] = v
	}
	return out
}

func requiredInt(row driven.Row, column string) (int, error) {
	raw, ok := row[column]
	if !ok {
		return 0, fmt.Errorf("%s is required", column)
	}
	v, ok := domain.ParseInt(raw)
	if !ok {
		return 0, fmt.Errorf("%s %q is not an integer", column, raw)
	}
	return v, nil
}

func optionalInt(row driven.Row, column string) (*int, error) {
	if _, ok := row[column]; !ok {
		return nil, nil
	}
	v, err := requiredInt(row, column)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optionalString(row driven.Row, column string) *string {
	v, ok := row[column]
	if !ok {
		return nil
	}
	return &v
}
