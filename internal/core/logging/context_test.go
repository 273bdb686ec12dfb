package logging

import (
	"context"
	"testing"
)

func TestWithRequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "req-123"

	ctx = WithRequestID(ctx, requestID)
	got := GetRequestID(ctx)

	if got != requestID {
		t.Errorf("GetRequestID() = %q, want %q", got, requestID)
	}
}

func TestWithViewID(t *testing.T) {
	ctx := context.Background()
	viewID := "view-456"

	ctx = WithViewID(ctx, viewID)
	got := GetViewID(ctx)

	if got != viewID {
		t.Errorf("GetViewID() = %q, want %q", got, viewID)
	}
}

func TestGetRequestID_NotPresent(t *testing.T) {
	ctx := context.Background()
	got := GetRequestID(ctx)

	if got != "" {
		t.Errorf("GetRequestID() = %q, want empty string", got)
	}
}
