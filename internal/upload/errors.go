package upload

import "fmt"

// Code is a machine-readable validation failure kind.
type Code string

const (
	CodeRequired      Code = "required"
	CodeContradiction Code = "contradiction"
	CodeInvalid       Code = "invalid"
	CodeMaxLength     Code = "max_length"
	CodeEmpty         Code = "empty"
	CodeInvalidImage  Code = "invalid_image"
)

var messages = map[Code]string{
	CodeRequired:      "This field is required.",
	CodeContradiction: "Please either submit a file or check the clear checkbox, not both.",
	CodeInvalid:       "No file was submitted. Check the encoding type on the form.",
	CodeMaxLength:     "Ensure this filename has at most %d characters (it has %d).",
	CodeEmpty:         "The submitted file is empty.",
	CodeInvalidImage:  "Upload a valid image. The file you uploaded was either not an image or a corrupted image.",
}

// ValidationError is returned by Adapter.Validate. It aborts a save before any storage write.
type ValidationError struct {
	Code    Code
	Message string
	Params  map[string]any
	// Err is the underlying cause, when there is one (decode or fetch failure).
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func newError(code Code, cause error) *ValidationError {
	return &ValidationError{Code: code, Message: messages[code], Err: cause}
}

func maxLengthError(max, length int) *ValidationError {
	return &ValidationError{
		Code:    CodeMaxLength,
		Message: fmt.Sprintf(messages[CodeMaxLength], max, length),
		Params:  map[string]any{"max": max, "length": length},
	}
}
