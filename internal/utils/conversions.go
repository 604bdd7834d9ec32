package utils

import "strings"

// ToStringSlice keeps the string members of a decoded JSON array. Objects carrying
// a "name" field contribute that name, which is how permission lists are sometimes encoded.
func ToStringSlice(slice []any) []string {
	stringSlice := make([]string, 0)
	for _, v := range slice {
		switch s := v.(type) {
		case string:
			stringSlice = append(stringSlice, s)
		case map[string]any:
			if name, ok := s["name"].(string); ok {
				stringSlice = append(stringSlice, name)
			}
		}
	}
	return stringSlice
}

// SplitList splits a comma-joined list, dropping empty members
func SplitList(list string) []string {
	if strings.TrimSpace(list) == "" {
		return []string{}
	}
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FirstNonEmpty returns the first non-blank value
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
