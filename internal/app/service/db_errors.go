package service

import "strings"

// isUniqueViolation detects unique-index violations from both the
// Postgres and SQLite drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}
