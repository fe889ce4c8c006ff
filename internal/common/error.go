// Package common defines shared constants and sentinel errors used across
// the journal's codec and storage layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrNotFound = errors.New("not found")

	// Catalog-resolution errors. Never defaulted: an unresolvable slug is
	// fatal to the decode in progress.
	ErrNoSuchDistortion = errors.New("no such distortion")

	// Shape-validation errors.
	ErrUnsupportedDateFormat = errors.New("unsupported date format")
	ErrBadVersion            = errors.New("unexpected schema version")
	ErrTimeOrder             = errors.New("updatedAt precedes createdAt")

	// Archive string codec stage errors, one per pipeline stage.
	ErrArchivePrefix      = errors.New("archive: missing prefix delimiter")
	ErrArchiveSuffix      = errors.New("archive: missing suffix delimiter")
	ErrArchiveBase64      = errors.New("archive: invalid base64 payload")
	ErrArchiveCompression = errors.New("archive: invalid compressed payload")
	ErrArchiveJSON        = errors.New("archive: invalid json")
	ErrArchiveShape       = errors.New("archive: value does not match archive shape")
)
