package services

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SortOrder is the direction of a directory listing
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// Sort is a validated sort key and direction. Key is always one of the
// tokens of the allow-list it was parsed against.
type Sort struct {
	Key   string
	Order SortOrder
}

// sortKeys maps the sort tokens a client may send to fixed column expressions
type sortKeys struct {
	columns    map[string]string
	defaultKey string
	tieBreaker string
}

var (
	storeSortKeys = sortKeys{
		columns: map[string]string{
			"name":           "stores.name",
			"address":        "stores.address",
			"average_rating": "average_rating",
		},
		defaultKey: "name",
		tieBreaker: "stores.id",
	}

	userSortKeys = sortKeys{
		columns: map[string]string{
			"name":                 "users.name",
			"email":                "users.email",
			"address":              "users.address",
			"role":                 "users.role",
			"average_store_rating": "average_store_rating",
		},
		defaultKey: "name",
		tieBreaker: "users.id",
	}
)

// StoreSortKeys lists the accepted sortBy values for store listings
func StoreSortKeys() []string { return storeSortKeys.keys() }

// UserSortKeys lists the accepted sortBy values for user listings
func UserSortKeys() []string { return userSortKeys.keys() }

func (k sortKeys) keys() []string {
	keys := make([]string, 0, len(k.columns))
	for key := range k.columns {
		keys = append(keys, key)
	}
	return keys
}

// ParseStoreSort validates sortBy/sortOrder for store listings
func ParseStoreSort(by, order string) (Sort, error) {
	return storeSortKeys.parse(by, order)
}

// ParseUserSort validates sortBy/sortOrder for user listings
func ParseUserSort(by, order string) (Sort, error) {
	return userSortKeys.parse(by, order)
}

func (k sortKeys) parse(by, order string) (Sort, error) {
	s := Sort{Key: k.defaultKey, Order: SortAsc}

	if by = strings.TrimSpace(by); by != "" {
		if _, ok := k.columns[by]; !ok {
			return Sort{}, newValidationError("Invalid sort field.", map[string]string{
				"sortBy": fmt.Sprintf("sortBy must be one of: %s", strings.Join(k.sortedKeys(), ", ")),
			})
		}
		s.Key = by
	}

	switch strings.ToUpper(strings.TrimSpace(order)) {
	case "", string(SortAsc):
	case string(SortDesc):
		s.Order = SortDesc
	default:
		return Sort{}, newValidationError("Invalid sort order.", map[string]string{
			"sortOrder": "sortOrder must be ASC or DESC",
		})
	}
	return s, nil
}

func (k sortKeys) sortedKeys() []string {
	keys := k.keys()
	sort.Strings(keys)
	return keys
}

// apply adds the ORDER BY for s. Unknown keys fall back to the default so a
// Sort that was not produced by parse can never reach the query text.
func (k sortKeys) apply(q *gorm.DB, s Sort) *gorm.DB {
	column, ok := k.columns[s.Key]
	if !ok {
		column = k.columns[k.defaultKey]
	}
	return q.Order(clause.OrderByColumn{
		Column: clause.Column{Name: column, Raw: true},
		Desc:   s.Order == SortDesc,
	}).Order(clause.OrderByColumn{
		Column: clause.Column{Name: k.tieBreaker, Raw: true},
	})
}

// likeEscaper escapes LIKE wildcards with '!', which every supported dialect accepts
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a case-insensitive substring pattern for LOWER(col) LIKE ? ESCAPE '!'
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
}

// whereContains adds a case-insensitive substring filter on column when value is not blank
func whereContains(q *gorm.DB, column, value string) *gorm.DB {
	if value = strings.TrimSpace(value); value == "" {
		return q
	}
	return q.Where("LOWER("+column+") LIKE ? ESCAPE '!'", containsPattern(value))
}
