package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMatchingByCode(t *testing.T) {
	base := New(CodeItemNotFound, "item not found")
	wrapped := fmt.Errorf("lookup: %w", base)

	if !errors.Is(wrapped, New(CodeItemNotFound, "different message")) {
		t.Fatal("expected match by code regardless of message")
	}
	if errors.Is(wrapped, New(CodeCartEmpty, "item not found")) {
		t.Fatal("expected no match across codes")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodeStorageFailure, "persist cart", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if err.Error() != "persist cart" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWithMetadata(t *testing.T) {
	err := WithMetadata(CodeStateVersion, "unsupported version", map[string]string{"section": "cart"})
	if err.Metadata["section"] != "cart" {
		t.Fatalf("unexpected metadata: %v", err.Metadata)
	}

	var domainErr *Error
	if !errors.As(error(err), &domainErr) || domainErr.Code != CodeStateVersion {
		t.Fatal("expected code preserved through errors.As")
	}
}

func TestCodeKinds(t *testing.T) {
	tests := []struct {
		code Code
		want Kind
	}{
		{CodeItemIDEmpty, KindInvalidArgument},
		{CodeInvalidFilter, KindInvalidArgument},
		{CodeInvalidStatus, KindInvalidArgument},
		{CodeCartEmpty, KindFailedPrecondition},
		{CodeItemDuplicate, KindFailedPrecondition},
		{CodeStateVersion, KindFailedPrecondition},
		{CodeStateDecode, KindFailedPrecondition},
		{CodeItemNotFound, KindNotFound},
		{CodeOrderNotFound, KindNotFound},
		{CodeStorageFailure, KindUnavailable},
		{CodeUnknown, KindInternal},
		{Code("SOMETHING_ELSE"), KindInternal},
	}
	for _, tt := range tests {
		if got := tt.code.Kind(); got != tt.want {
			t.Fatalf("code %s: expected kind %d, got %d", tt.code, tt.want, got)
		}
	}
}
