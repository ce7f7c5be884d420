package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestCacheErrorUnwrap(t *testing.T) {
	err := NewCacheError("GetSubscription", "impu:sip:alice@example.com", ErrNotFound)

	if !errors.Is(err, ErrNotFound) {
		t.Errorf("errors.Is(err, ErrNotFound) = false, want true")
	}

	var cacheErr *CacheError
	if !errors.As(err, &cacheErr) {
		t.Fatal("errors.As failed for *CacheError")
	}
	if cacheErr.Operation != "GetSubscription" {
		t.Errorf("Operation = %q, want %q", cacheErr.Operation, "GetSubscription")
	}
}

func TestCacheErrorMessage(t *testing.T) {
	err := NewCacheError("PutSubscription", "impu:sip:bob@example.com", ErrBackendUnavailable)
	want := "cache error: operation=PutSubscription, key=impu:sip:bob@example.com, cause=backend unavailable"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestHSSErrorUnwrap(t *testing.T) {
	err := NewHSSError("SAR", 5001, ErrUpstreamReject)

	if !errors.Is(err, ErrUpstreamReject) {
		t.Errorf("errors.Is(err, ErrUpstreamReject) = false, want true")
	}

	var hssErr *HSSError
	if !errors.As(err, &hssErr) {
		t.Fatal("errors.As failed for *HSSError")
	}
	if hssErr.ResultCode != 5001 {
		t.Errorf("ResultCode = %d, want 5001", hssErr.ResultCode)
	}
}

func TestHSSErrorWrappedTwice(t *testing.T) {
	inner := NewHSSError("MAR", 0, ErrTimeout)
	outer := fmt.Errorf("sending request: %w", inner)

	if !errors.Is(outer, ErrTimeout) {
		t.Errorf("errors.Is(outer, ErrTimeout) = false, want true")
	}
}
