package domain

import "errors"

// ErrValidation is an error thrown when the upload request is malformed
var ErrValidation = errors.New("validation error")

// ErrMissingFilename is an error thrown when the original filename is empty
var ErrMissingFilename = errors.New("original filename is missing")

// ErrMissingExtension is an error thrown when the filename has no extension
var ErrMissingExtension = errors.New("file extension is missing")

// ErrInvalidUsageCategory is an error thrown when the usage category is unknown
var ErrInvalidUsageCategory = errors.New("invalid usage category")

// ErrInappropriateContent is an error thrown when moderation rejects the content
var ErrInappropriateContent = errors.New("file contains inappropriate content")

// ErrTranscoding is an error thrown when the video encoder fails
var ErrTranscoding = errors.New("transcoding error")

// ErrTranscodingTimeout is an error thrown when the encoder exceeds its deadline
var ErrTranscodingTimeout = errors.New("transcoding timed out")

// ErrEmptyOutput is an error thrown when the encoder produced no output
var ErrEmptyOutput = errors.New("output file was not created or is empty")

// ErrModeration is an error thrown when the moderation service does not succeed
var ErrModeration = errors.New("moderation error")

// ErrModerationTimeout is an error thrown when a moderation job never reaches a terminal state
var ErrModerationTimeout = errors.New("moderation job timed out")

// ErrStorage is an error thrown when the object store rejects an operation
var ErrStorage = errors.New("storage error")

// ErrExternalServiceUnavailable is an error thrown when a collaborator cannot be reached
var ErrExternalServiceUnavailable = errors.New("external service unavailable")

// ErrUnexpected is an error thrown for any failure outside the taxonomy
var ErrUnexpected = errors.New("unexpected error")

// ErrUploadRecordNotFound is an error thrown when no ledger row matches
var ErrUploadRecordNotFound = errors.New("upload record not found")

// ErrorKind names a failure class reported to callers
type ErrorKind string

const (
	KindValidation            ErrorKind = "ValidationError"
	KindInappropriateContent  ErrorKind = "InappropriateContentError"
	KindTranscoding           ErrorKind = "TranscodingError"
	KindModeration            ErrorKind = "ModerationError"
	KindStorage               ErrorKind = "StorageError"
	KindExternalServiceFailed ErrorKind = "ExternalServiceUnavailable"
	KindUnexpected            ErrorKind = "UnexpectedError"
)

// KindOf classifies err into the failure taxonomy
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrInappropriateContent):
		return KindInappropriateContent
	case errors.Is(err, ErrTranscoding):
		return KindTranscoding
	case errors.Is(err, ErrModeration):
		return KindModeration
	case errors.Is(err, ErrStorage):
		return KindStorage
	case errors.Is(err, ErrExternalServiceUnavailable):
		return KindExternalServiceFailed
	default:
		return KindUnexpected
	}
}

// IsClassified reports whether err already belongs to a known failure class
func IsClassified(err error) bool {
	return KindOf(err) != KindUnexpected || errors.Is(err, ErrUnexpected)
}

// ErrUploadRecordExists is an error thrown when a ledger row with the same id already exists
var ErrUploadRecordExists = errors.New("upload record already exists")
