package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyID           = errors.New("id is required")
	ErrEmptyTitle        = errors.New("title is required")
	ErrEmptyLabel        = errors.New("label is required")
	ErrInvalidFieldType  = errors.New("invalid field type")
	ErrDuplicateFieldID  = errors.New("duplicate field id")
	ErrInvalidOptions    = errors.New("invalid select options")
	ErrEmptyLogin        = errors.New("login is required")
	ErrEmptyPassword     = errors.New("password is required")
	ErrPasswordTooLong   = errors.New("password is longer than 72 bytes")
	ErrEmptyFormID       = errors.New("form id is required")
	ErrEmptyUserID       = errors.New("user id is required")
	ErrInvalidAnswerType = errors.New("answer has the wrong type for its field")
	ErrMarkup            = errors.New("text must not contain markup")
)
