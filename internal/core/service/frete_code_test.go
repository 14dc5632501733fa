package service

import (
	"fmt"
	"regexp"
	"testing"
	"time"
)

func TestGenerateFreteCode_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^FR\d{11}$`)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	stamp := fmt.Sprintf("%08d", now.UnixMilli()%100_000_000)

	for i := 0; i < 50; i++ {
		code := generateFreteCode(now)
		if !pattern.MatchString(code) {
			t.Fatalf("unexpected code format: %s", code)
		}
		if code[2:10] != stamp {
			t.Fatalf("expected time digits %s, got %s", stamp, code[2:10])
		}
	}
}
