package ratelimit

import (
	"context"
	"testing"
)

func TestToInt64(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int64
		ok   bool
	}{
		{int64(7), 7, true},
		{int(3), 3, true},
		{float64(5), 5, true},
		{"nope", 0, false},
	}
	for _, tc := range cases {
		got, ok := toInt64(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("toInt64(%v) = (%d,%v) want (%d,%v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRedisStoreWithoutClient(t *testing.T) {
	store := NewRedisStore(nil)
	if _, _, err := store.Incr(context.Background(), "k", 0); err == nil {
		t.Fatalf("nil client should error")
	}
}
