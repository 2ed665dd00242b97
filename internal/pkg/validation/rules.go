package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Invite codes are 8 uppercase alphanumerics
	InviteCodePattern = `^[A-Z0-9]{8}$`

	// Password min length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email      *regexp.Regexp
	InviteCode *regexp.Regexp
}{
	Email:      regexp.MustCompile(EmailPattern),
	InviteCode: regexp.MustCompile(InviteCodePattern),
}
