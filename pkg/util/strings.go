package util

import "strings"

// NormaliseText trims whitespace and blanks out the "nan" placeholder spreadsheets tend to leave in empty cells
func NormaliseText(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") {
		return ""
	}

	return s
}

func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}
