package utils

import "strings"

// TruncateDate mantém apenas o dia de um timestamp: tudo antes do primeiro 'T' ou espaço.
// "2024-03-01T10:15:00+03:00" vira "2024-03-01".
func TruncateDate(value string) string {
	value = strings.TrimSpace(value)
	if i := strings.IndexAny(value, "T "); i >= 0 {
		return value[:i]
	}
	return value
}
