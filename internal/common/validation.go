package common

import (
	"strings"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 5000
)

func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return NewValidationError("title is required")
	}

	if len(title) > maxTitleLen {
		return NewValidationError("title must be at most 200 characters")
	}

	return nil
}

func ValidateDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return NewValidationError("description is required")
	}

	if len(description) > maxDescriptionLen {
		return NewValidationError("description is too long")
	}

	return nil
}

func ValidateContentType(contentType string) error {
	if contentType == "" {
		return NewValidationError("content type is required")
	}

	if !ContentType(contentType).IsValid() {
		return NewValidationError("unknown content type: " + contentType)
	}

	return nil
}
