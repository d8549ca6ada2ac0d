package fields

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// List is an ordered set of short labels stored as a JSON array column.
type List []string

// Clean trims every entry and drops blanks and repeats, keeping first occurrences.
func (l List) Clean() List {
	out := make(List, 0, len(l))
	seen := make(map[string]bool, len(l))
	for _, v := range l {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Scan implements sql.Scanner.
func (l *List) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = List{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan list: unsupported type %T", src)
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("scan list: %w", err)
	}
	if items == nil {
		items = []string{}
	}
	*l = items
	return nil
}

// Value implements driver.Valuer. A nil list is stored as an empty array.
func (l List) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}
