package reqctx

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("RequestID(empty) = %q, want empty", got)
	}
	ctx := WithRequestID(context.Background(), "rid-7")
	if got := RequestID(ctx); got != "rid-7" {
		t.Fatalf("RequestID = %q, want rid-7", got)
	}
}
