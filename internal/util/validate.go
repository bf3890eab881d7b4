package util

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsValidEmail 与前端问卷一致的宽松邮箱校验
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// NormalizeName trims whitespace; an empty result means the field is missing.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}
