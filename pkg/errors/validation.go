package errors

import (
	"regexp"
	"strings"
)

// MaxUsernameLength is GitHub's limit on login names.
const MaxUsernameLength = 39

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-[A-Za-z0-9])*$`)

// ValidateUsername checks name against GitHub's login rules: 1 to 39
// alphanumeric characters or single hyphens, not starting or ending with a
// hyphen.
func ValidateUsername(name string) error {
	if name == "" {
		return New(ErrCodeInvalidUsername, "username cannot be empty")
	}
	if len(name) > MaxUsernameLength {
		return New(ErrCodeInvalidUsername, "username too long (max %d characters)", MaxUsernameLength)
	}
	if !usernameRegex.MatchString(name) {
		return New(ErrCodeInvalidUsername, "invalid GitHub username: %q", name)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	return nil
}
