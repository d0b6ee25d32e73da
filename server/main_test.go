package main

import "testing"

func TestAtoiDef(t *testing.T) {
	if got := atoiDef("", 7); got != 7 {
		t.Fatalf("empty = %d", got)
	}
	if got := atoiDef("12", 7); got != 12 {
		t.Fatalf("12 = %d", got)
	}
	if got := atoiDef("garbage", 7); got != 7 {
		t.Fatalf("garbage = %d", got)
	}
}

func TestAsBool(t *testing.T) {
	for _, s := range []string{"1", "true", "YES", " on "} {
		if !asBool(s) {
			t.Errorf("asBool(%q) = false", s)
		}
	}
	for _, s := range []string{"", "0", "false", "off", "nope"} {
		if asBool(s) {
			t.Errorf("asBool(%q) = true", s)
		}
	}
}

func TestGetenvDefault(t *testing.T) {
	t.Setenv("POKER_TEST_ENV", "")
	if got := getenv("POKER_TEST_ENV", "fallback"); got != "fallback" {
		t.Fatalf("got %q", got)
	}
	t.Setenv("POKER_TEST_ENV", "set")
	if got := getenv("POKER_TEST_ENV", "fallback"); got != "set" {
		t.Fatalf("got %q", got)
	}
}
