package rowlist

import (
	"fmt"
	"strings"
)

// SortKey selects the ordering applied by Controller.Sort.
type SortKey string

const (
	SortScoreDesc SortKey = "score_desc"
	SortScoreAsc  SortKey = "score_asc"
	SortNameAsc   SortKey = "name_asc"
	SortNameDesc  SortKey = "name_desc"
)

// DefaultSortKey is applied when a controller is created.
const DefaultSortKey = SortScoreDesc

var sortLabels = map[SortKey]string{
	SortScoreDesc: "Score (high to low)",
	SortScoreAsc:  "Score (low to high)",
	SortNameAsc:   "Name (A-Z)",
	SortNameDesc:  "Name (Z-A)",
}

// SortKeys returns the supported keys in menu order.
func SortKeys() []SortKey {
	return []SortKey{SortScoreDesc, SortScoreAsc, SortNameAsc, SortNameDesc}
}

// IsValid reports whether k is one of the supported keys.
func (k SortKey) IsValid() bool {
	_, ok := sortLabels[k]
	return ok
}

// Label returns a human readable description of the key.
func (k SortKey) Label() string {
	if l, ok := sortLabels[k]; ok {
		return l
	}
	return string(k)
}

// Next returns the key after k in menu order, wrapping around.
func (k SortKey) Next() SortKey {
	keys := SortKeys()
	for i, key := range keys {
		if key == k {
			return keys[(i+1)%len(keys)]
		}
	}
	return DefaultSortKey
}

// ParseSortKey converts user input such as "name_asc" or "name-asc" into a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !k.IsValid() {
		return "", fmt.Errorf("unknown sort key %q", s)
	}
	return k, nil
}
