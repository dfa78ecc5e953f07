package feeders

import (
	"errors"
	"fmt"
)

// Document errors
var (
	ErrNameNotScalar        = errors.New("name must be a scalar")
	ErrDocumentInvalid      = errors.New("specification document is invalid")
	ErrSchemaViolation      = errors.New("specification document does not match schema")
	ErrUnsupportedExtension = errors.New("unsupported document extension")
	ErrUnknownKeys          = errors.New("unknown keys in document")
)

// Env feeder errors
var (
	ErrEnvInvalidStructure     = errors.New("env: invalid structure")
	ErrEnvEmptyPrefixAndSuffix = errors.New("env: prefix or suffix cannot be empty")
	ErrEnvFieldCannotBeSet     = errors.New("env: field cannot be set")
)

func wrapReadError(fileType, path string, err error) error {
	return fmt.Errorf("failed to read %s file %s: %w", fileType, path, err)
}

func wrapParseError(fileType, path string, err error) error {
	return fmt.Errorf("failed to parse %s file %s: %w", fileType, path, err)
}
