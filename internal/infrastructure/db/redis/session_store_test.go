package redis

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/habitaly/portal/internal/core/domain"
)

func TestDecodeSnapshot_RoundTrip(t *testing.T) {
	snap := domain.SessionSnapshot{
		Token: "tok-1",
		User: domain.User{
			ID:    "u-1",
			Name:  "Alice",
			Email: "alice@example.com",
			Role:  domain.RoleAgent,
		},
		IssuedAt: time.Unix(1700000000, 0).UTC(),
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	decoded, err := decodeSnapshot(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if *decoded != snap {
		t.Fatalf("round trip differs: %+v vs %+v", *decoded, snap)
	}
}

func TestDecodeSnapshot_Malformed(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"garbage", "not-json-at-all"},
		{"truncated", `{"token":"tok-1","user":{"id":`},
		{"wrong shape", `[1,2,3]`},
		{"missing token", `{"user":{"id":"u-1"}}`},
		{"missing user", `{"token":"tok-1","user":{}}`},
		{"empty", ``},
	}

	for _, tc := range cases {
		if _, err := decodeSnapshot([]byte(tc.payload)); err == nil {
			t.Fatalf("%s: expected decode to fail", tc.name)
		}
	}
}

func TestSessionKeys(t *testing.T) {
	if sessionKey("tok-1") != "session:token:tok-1" {
		t.Fatalf("unexpected session key: %s", sessionKey("tok-1"))
	}
	if epochKey("u-1") != "session:epoch:u-1" {
		t.Fatalf("unexpected epoch key: %s", epochKey("u-1"))
	}
}
