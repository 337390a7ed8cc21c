package errors

import (
	"strings"
	"unicode"
)

// ValidateDatasetFilename validates an uploaded dataset filename for safety.
// It ensures the filename is a simple .csv basename without path components.
func ValidateDatasetFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidDataset, "dataset filename cannot be empty")
	}

	if len(filename) > 256 {
		return New(ErrCodeInvalidDataset, "dataset filename too long (max 256 characters)")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidDataset, "dataset filename cannot contain path separators")
	}

	for _, r := range filename {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "dataset filename contains invalid characters")
		}
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidDataset, "dataset filename cannot be a hidden file")
	}

	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return New(ErrCodeInvalidDataset, "dataset must be a .csv file")
	}

	return nil
}

// ValidateColumnName validates a CSV column header for safety and correctness.
// It rejects empty names, control characters, and unreasonable lengths.
func ValidateColumnName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDataset, "column name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidDataset, "column name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "column name contains invalid control characters")
		}
	}

	return nil
}

// ValidateRegionName validates a canvas region name.
// Region names are identifiers used in configuration and layout results.
func ValidateRegionName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidCanvas, "region name cannot be empty")
	}

	for _, r := range name {
		if !unicode.IsLower(r) && !unicode.IsDigit(r) && r != '_' {
			return New(ErrCodeInvalidCanvas, "region name must be lower_snake_case: %q", name)
		}
	}

	return nil
}
