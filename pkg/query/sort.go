package query

import "strings"

// SortField names a view field and its sort direction.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// ParseSortFields parses a comma-separated sort expression such as "name,-updated_at".
// A leading "-" sorts descending. Empty segments are skipped.
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	var fields []SortField
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		desc := false
		if strings.HasPrefix(part, "-") {
			desc = true
			part = part[1:]
		}

		if part == "" {
			continue
		}

		fields = append(fields, SortField{Field: snakeToPascal(part), Descending: desc})
	}
	return fields
}

func snakeToPascal(s string) string {
	parts := strings.Split(s, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}
