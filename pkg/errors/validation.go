package errors

import (
	"regexp"
	"unicode"
)

// identifierRegex matches layer identifiers and node-local suffixes.
// Both take part in the "<layer>.<local>" display form, so neither may
// contain the separator.
var identifierRegex = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ValidateLayerID validates a layer identifier.
//
// Layer identifiers are non-empty and alphanumeric; they form the prefix of
// every node identifier in the layer.
func ValidateLayerID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "layer identifier cannot be empty")
	}
	if !identifierRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid layer identifier: %q", id)
	}
	return nil
}

// ValidateLocalID validates the locally-unique suffix of a node identifier.
func ValidateLocalID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node identifier cannot be empty")
	}
	if !identifierRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid node identifier: %q", id)
	}
	return nil
}

// ValidatePassageID validates a passage identifier.
// Passage identifiers are free-form but must be printable and at most 256
// characters long.
func ValidatePassageID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "passage identifier cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "passage identifier too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "passage identifier contains invalid control characters")
		}
	}
	return nil
}

// ValidateTag validates an edge or action tag.
//
// Tags are compared by value against the tag vocabulary, so whitespace
// inside a tag would make it unreadable in action scripts.
func ValidateTag(tag string) error {
	if tag == "" {
		return New(ErrCodeInvalidInput, "tag cannot be empty")
	}
	if len(tag) > 64 {
		return New(ErrCodeInvalidInput, "tag too long (max 64 characters)")
	}
	for _, r := range tag {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "tag %q contains whitespace or control characters", tag)
		}
	}
	return nil
}
