package util

// BoolToString converts a boolean to its string representation.
func BoolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// FirstNonEmpty returns the first non-empty string, or "" if all are empty.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
