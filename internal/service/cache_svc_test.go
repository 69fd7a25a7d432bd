package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCacheService_DisabledIsNoOp(t *testing.T) {
	c := NewCacheService("")
	ctx := context.Background()

	hitsBefore := testutil.ToFloat64(cacheHits)
	missesBefore := testutil.ToFloat64(cacheMisses)

	data, err := c.GetChannels(ctx, "user1")
	if data != nil || err != nil {
		t.Errorf("GetChannels on disabled cache = (%v, %v), want (nil, nil)", data, err)
	}
	data, err = c.GetSummary(ctx, "user1", "28d")
	if data != nil || err != nil {
		t.Errorf("GetSummary on disabled cache = (%v, %v), want (nil, nil)", data, err)
	}
	if err := c.SetChannels(ctx, "user1", "payload"); err != nil {
		t.Errorf("SetChannels on disabled cache = %v, want nil", err)
	}
	if err := c.InvalidateUser(ctx, "user1"); err != nil {
		t.Errorf("InvalidateUser on disabled cache = %v, want nil", err)
	}

	// A disabled cache is neither a hit nor a miss.
	if got := testutil.ToFloat64(cacheHits); got != hitsBefore {
		t.Errorf("cacheHits moved from %v to %v on disabled cache", hitsBefore, got)
	}
	if got := testutil.ToFloat64(cacheMisses); got != missesBefore {
		t.Errorf("cacheMisses moved from %v to %v on disabled cache", missesBefore, got)
	}
}

func TestCacheService_InvalidURLDisablesCache(t *testing.T) {
	c := NewCacheService("not a url")
	if c.Client() != nil {
		t.Error("invalid redis URL should leave the cache disabled")
	}
}

func TestCacheKeys(t *testing.T) {
	if got := channelsKey("abc123"); got != "channels:abc123" {
		t.Errorf("channelsKey = %q", got)
	}
	if got := summaryKey("abc123", "28d"); got != "summary:abc123:28d" {
		t.Errorf("summaryKey = %q", got)
	}
	// InvalidateUser matches summaries by prefix scan
	if got := summaryKey("abc123", "*"); got != "summary:abc123:*" {
		t.Errorf("summary scan pattern = %q", got)
	}
}
