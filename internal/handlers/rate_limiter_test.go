package handlers

import (
	"testing"
	"time"
)

func TestUploadLimiterExhaustsWindow(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	l := newUploadLimiter(2, time.Minute, func() time.Time { return now })

	if !l.Allow("203.0.113.7") || !l.Allow("203.0.113.7") {
		t.Fatal("first two uploads should be admitted")
	}
	if l.Allow("203.0.113.7") {
		t.Fatal("third upload inside the window should be rejected")
	}
	if !l.Allow("198.51.100.9") {
		t.Fatal("a different client has its own window")
	}
}

func TestUploadLimiterWindowReset(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	l := newUploadLimiter(1, time.Minute, func() time.Time { return now })

	if !l.Allow("203.0.113.7") {
		t.Fatal("first upload should be admitted")
	}
	if l.Allow("203.0.113.7") {
		t.Fatal("second upload inside the window should be rejected")
	}

	now = now.Add(time.Minute + time.Second)
	if !l.Allow("203.0.113.7") {
		t.Fatal("upload after the window elapsed should be admitted")
	}
}

func TestUploadLimiterBlankClientShared(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	l := newUploadLimiter(1, time.Minute, func() time.Time { return now })

	if !l.Allow("") {
		t.Fatal("first anonymous upload should be admitted")
	}
	if l.Allow("   ") {
		t.Fatal("blank clients share one bucket")
	}
}

func TestUploadLimiterDisabled(t *testing.T) {
	if l := newUploadLimiter(0, time.Minute, nil); l != nil {
		t.Fatal("zero limit should disable the limiter")
	}
	if l := newUploadLimiter(10, 0, nil); l != nil {
		t.Fatal("zero window should disable the limiter")
	}
}
