package jsonapi

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestCodeClassification(t *testing.T) {
	cases := []struct {
		err  error
		code ErrorCode
	}{
		{nil, ""},
		{ErrInvalidDocumentStructure, ErrCodeInvalidDocumentStructure},
		{ErrInvalidResourceStructure, ErrCodeInvalidResourceStructure},
		{ErrResourceTypeMissing, ErrCodeResourceTypeMissing},
		{ErrResourceIDMissing, ErrCodeResourceIDMissing},
		{ErrInvalidURL, ErrCodeInvalidURL},
		{ErrTransformFailed, ErrCodeTransformFailed},
		{ErrUnknownResourceType, ErrCodeUnknownResourceType},
		{context.Canceled, ErrCodeContextCanceled},
		{context.DeadlineExceeded, ErrCodeContextCanceled},
		{errors.New("something else"), ErrCodeDeserializeError},
	}
	for _, tc := range cases {
		if got := Code(tc.err); got != tc.code {
			t.Fatalf("Code(%v) = %s, want %s", tc.err, got, tc.code)
		}
	}
}

func TestCodeUnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("%w: resource 3", ErrResourceIDMissing)
	if Code(err) != ErrCodeResourceIDMissing {
		t.Fatalf("expected RESOURCE_ID_MISSING, got %s", Code(err))
	}

	wrapped := wrapDeserializeError("/data/3", err)
	if Code(wrapped) != ErrCodeResourceIDMissing {
		t.Fatalf("expected RESOURCE_ID_MISSING through DeserializeError, got %s", Code(wrapped))
	}
	if !errors.Is(wrapped, ErrResourceIDMissing) {
		t.Fatal("expected errors.Is to see the sentinel through the wrapper")
	}
}

func TestDeserializeErrorMessage(t *testing.T) {
	err := wrapDeserializeError("/data/0", ErrResourceTypeMissing)
	want := "/data/0: jsonapi: resource type missing"
	if err.Error() != want {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestWrapComposesPointers(t *testing.T) {
	inner := wrapDeserializeError("attributes/title", ErrTransformFailed)
	outer := wrapDeserializeError("/data/0", inner)
	var desErr *DeserializeError
	if !errors.As(outer, &desErr) {
		t.Fatal("expected DeserializeError")
	}
	if desErr.Pointer != "/data/0/attributes/title" {
		t.Fatalf("unexpected pointer: %s", desErr.Pointer)
	}
	if Code(outer) != ErrCodeTransformFailed {
		t.Fatalf("expected TRANSFORM_FAILED, got %s", Code(outer))
	}
}

func TestWrapNil(t *testing.T) {
	if wrapDeserializeError("/data", nil) != nil {
		t.Fatal("expected nil")
	}
}
