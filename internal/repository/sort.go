package repository

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm/clause"
)

// Sort orders a listing by one column
type Sort struct {
	Column string
	Desc   bool
}

func (s Sort) orderBy() clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Name: s.Column}, Desc: s.Desc}
}

// ParseSort turns sort query values of the form "field[,field...][,asc|desc]"
// into column orderings. columns maps JSON field names to column names.
func ParseSort(values []string, columns map[string]string) ([]Sort, error) {
	var sorts []Sort
	for _, value := range values {
		parts := strings.Split(value, ",")

		desc := false
		switch strings.ToLower(strings.TrimSpace(parts[len(parts)-1])) {
		case "desc":
			desc = true
			parts = parts[:len(parts)-1]
		case "asc":
			parts = parts[:len(parts)-1]
		}

		for _, field := range parts {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			column, ok := columns[field]
			if !ok {
				return nil, errors.Wrapf(ErrInvalidSort, "unknown field %q", field)
			}
			sorts = append(sorts, Sort{Column: column, Desc: desc})
		}
	}
	return sorts, nil
}
