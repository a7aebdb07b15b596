package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации
	ErrValidationFailed      = errors.New("validation failed")
	ErrDuplicateCompetitor   = errors.New("competitor is listed more than once")
	ErrUnsupportedFormat     = errors.New("unsupported bracket type")
	ErrInvalidFormatSettings = errors.New("invalid format settings")
	ErrByeMatch              = errors.New("bye matches are not rated")

	ErrSnapshotStoreDisabled = errors.New("layout snapshot store is not configured")
)
