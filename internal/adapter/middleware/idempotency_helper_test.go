package middleware

import (
	"strings"
	"testing"
)

func TestValidReqID(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{strings.Repeat("a", 32), true},                      // hex32
		{"  " + strings.Repeat("a", 32) + "  ", true},        // trimmed
		{strings.ToUpper(strings.Repeat("a", 32)), true},     // lowered first
		{"9b2d7c3e-1f4a-4c8b-9a1e-2f3b4c5d6e7f", true},       // uuid v4
		{"9b2d7c3e-1f4a-6c8b-9a1e-2f3b4c5d6e7f", false},      // bad uuid version
		{strings.Repeat("a", 31), false},                     // too short
		{strings.Repeat("g", 32), false},                     // not hex
		{"", false},
	}
	for _, tc := range cases {
		if got := validReqID(tc.in); got != tc.want {
			t.Errorf("validReqID(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestValidUserID(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"42", true},
		{"0", false},  // ids start at 1
		{"01", false}, // no leading zeros
		{"-1", false},
		{"abc", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := validUserID(tc.in); got != tc.want {
			t.Errorf("validUserID(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestBuildKey(t *testing.T) {
	got := buildKey("POST", "/write-offs/:id/pdf", "1", "req123")
	want := "idemp:wopdf:post:/write-offs/:id/pdf:1:req123"
	if got != want {
		t.Fatalf("buildKey = %q, want %q", got, want)
	}
}

func TestBodyHash_StableAndDistinct(t *testing.T) {
	a := bodyHash([]byte(`{"created_by_id":1}`))
	b := bodyHash([]byte(`{"created_by_id":1}`))
	c := bodyHash([]byte(`{"created_by_id":2}`))
	if a != b {
		t.Fatalf("same body hashed differently")
	}
	if a == c {
		t.Fatalf("different bodies collided")
	}
	if len(a) != 64 {
		t.Fatalf("hash length = %d, want 64 hex chars", len(a))
	}
}
