package errors

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	maxRecordName = 128
	maxObjectPath = 500
)

// recordName admits names that are safe as cache keys, S3 keys and URL path
// segments without escaping.
var recordName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateRecordName checks the name of a stored record, e.g. "NC_001416.1".
func ValidateRecordName(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidName, "record name cannot be empty")
	case len(name) > maxRecordName:
		return New(ErrCodeInvalidName, "record name too long (max %d characters)", maxRecordName)
	case !recordName.MatchString(name):
		return New(ErrCodeInvalidName, "invalid record name %q: use letters, digits, '.', '_' and '-'", name)
	case strings.Contains(name, ".."):
		return New(ErrCodeInvalidName, "record name %q contains \"..\"", name)
	}
	return nil
}

// ValidatePath checks a relative object path such as an upload prefix. The
// empty path is the bucket root.
func ValidatePath(path string) error {
	if len(path) > maxObjectPath {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxObjectPath)
	}
	if strings.IndexFunc(path, unicode.IsControl) >= 0 {
		return New(ErrCodeInvalidInput, "path contains control characters")
	}
	switch {
	case strings.HasPrefix(path, "/"):
		return New(ErrCodeInvalidInput, "path %q must be relative", path)
	case strings.Contains(path, ".."):
		return New(ErrCodeInvalidInput, "path %q contains \"..\"", path)
	case strings.Contains(path, `\`):
		return New(ErrCodeInvalidInput, "path %q contains a backslash", path)
	}
	return nil
}
