package domain

import "errors"

var (
	ErrEmptyRequirements = errors.New("requirements must not be empty")
	ErrInvalidFilename   = errors.New("invalid filename")
	ErrFileNotFound      = errors.New("file not found")
)
