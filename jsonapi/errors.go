package jsonapi

import (
	"context"
	"errors"
	"fmt"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeInvalidDocumentStructure indicates the document root is malformed.
	ErrCodeInvalidDocumentStructure ErrorCode = "INVALID_DOCUMENT_STRUCTURE"
	// ErrCodeInvalidResourceStructure indicates a resource representation is not an object.
	ErrCodeInvalidResourceStructure ErrorCode = "INVALID_RESOURCE_STRUCTURE"
	// ErrCodeResourceTypeMissing indicates a resource representation without a type.
	ErrCodeResourceTypeMissing ErrorCode = "RESOURCE_TYPE_MISSING"
	// ErrCodeResourceIDMissing indicates a resource representation without an id.
	ErrCodeResourceIDMissing ErrorCode = "RESOURCE_ID_MISSING"
	// ErrCodeInvalidURL indicates a link value that is not a parsable URL.
	ErrCodeInvalidURL ErrorCode = "INVALID_URL"
	// ErrCodeTransformFailed indicates an attribute value the transformer directory rejected.
	ErrCodeTransformFailed ErrorCode = "TRANSFORM_FAILED"
	// ErrCodeUnknownResourceType indicates a type the factory cannot construct.
	ErrCodeUnknownResourceType ErrorCode = "UNKNOWN_RESOURCE_TYPE"
	// ErrCodeContextCanceled indicates the context was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
	// ErrCodeDeserializeError indicates a general deserialization error.
	ErrCodeDeserializeError ErrorCode = "DESERIALIZE_ERROR"
)

var (
	// ErrInvalidDocumentStructure indicates the document root is malformed.
	ErrInvalidDocumentStructure = errors.New("jsonapi: invalid document structure")
	// ErrInvalidResourceStructure indicates a resource representation is not an object.
	ErrInvalidResourceStructure = errors.New("jsonapi: resource representation is not an object")
	// ErrResourceTypeMissing indicates a resource representation without a string type.
	ErrResourceTypeMissing = errors.New("jsonapi: resource type missing")
	// ErrResourceIDMissing indicates a resource representation without a string id.
	ErrResourceIDMissing = errors.New("jsonapi: resource id missing")
	// ErrInvalidURL indicates a link value that is not a parsable URL.
	ErrInvalidURL = errors.New("jsonapi: invalid URL")
	// ErrTransformFailed indicates an attribute value the transformer directory rejected.
	ErrTransformFailed = errors.New("jsonapi: attribute transform failed")
	// ErrUnknownResourceType indicates a type the factory cannot construct.
	ErrUnknownResourceType = errors.New("jsonapi: unknown resource type")
)

// Code returns the error code for an error, or ErrCodeDeserializeError if
// unknown. Returns empty string for nil errors.
func Code(err error) ErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrInvalidDocumentStructure):
		return ErrCodeInvalidDocumentStructure
	case errors.Is(err, ErrInvalidResourceStructure):
		return ErrCodeInvalidResourceStructure
	case errors.Is(err, ErrResourceTypeMissing):
		return ErrCodeResourceTypeMissing
	case errors.Is(err, ErrResourceIDMissing):
		return ErrCodeResourceIDMissing
	case errors.Is(err, ErrInvalidURL):
		return ErrCodeInvalidURL
	case errors.Is(err, ErrTransformFailed):
		return ErrCodeTransformFailed
	case errors.Is(err, ErrUnknownResourceType):
		return ErrCodeUnknownResourceType
	}

	var desErr *DeserializeError
	if errors.As(err, &desErr) {
		underlyingCode := Code(desErr.Err)
		if underlyingCode != ErrCodeDeserializeError && underlyingCode != "" {
			return underlyingCode
		}
		return ErrCodeDeserializeError
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ErrCodeContextCanceled
	}

	return ErrCodeDeserializeError
}

// DeserializeError provides structured context for deserialization failures.
type DeserializeError struct {
	Pointer string // Slash-separated location within the document ("/data/3")
	Err     error  // Underlying error
}

func (e *DeserializeError) Error() string {
	if e.Pointer != "" {
		return fmt.Sprintf("%s: %s", e.Pointer, e.Err.Error())
	}
	return e.Err.Error()
}

func (e *DeserializeError) Unwrap() error { return e.Err }

// wrapDeserializeError adds document-pointer context to an error. Nested
// wrapping composes pointers, so "/data/0" around "attributes/title" yields
// "/data/0/attributes/title".
func wrapDeserializeError(pointer string, err error) error {
	if err == nil {
		return nil
	}
	var desErr *DeserializeError
	if errors.As(err, &desErr) {
		if desErr.Pointer != "" {
			pointer = pointer + "/" + desErr.Pointer
		}
		return &DeserializeError{Pointer: pointer, Err: desErr.Err}
	}
	return &DeserializeError{Pointer: pointer, Err: err}
}
