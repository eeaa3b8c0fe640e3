package utils

import "testing"

func TestSafeEnv(t *testing.T) {
	t.Setenv("ASSISTANT_TEST_STR", "set")
	if got := SafeEnv("ASSISTANT_TEST_STR", "fallback"); got != "set" {
		t.Errorf("SafeEnv() = %q", got)
	}
	if got := SafeEnv("ASSISTANT_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("SafeEnv() = %q, want fallback", got)
	}
}

func TestSafeEnvInt(t *testing.T) {
	t.Setenv("ASSISTANT_TEST_INT", "42")
	if got := SafeEnvInt("ASSISTANT_TEST_INT", 7); got != 42 {
		t.Errorf("SafeEnvInt() = %d", got)
	}
	t.Setenv("ASSISTANT_TEST_INT", "not-a-number")
	if got := SafeEnvInt("ASSISTANT_TEST_INT", 7); got != 7 {
		t.Errorf("SafeEnvInt() = %d, want fallback on parse error", got)
	}
}

func TestSafeEnvBool(t *testing.T) {
	t.Setenv("ASSISTANT_TEST_BOOL", "true")
	if !SafeEnvBool("ASSISTANT_TEST_BOOL", false) {
		t.Error("SafeEnvBool() = false")
	}
	t.Setenv("ASSISTANT_TEST_BOOL", "maybe")
	if SafeEnvBool("ASSISTANT_TEST_BOOL", false) {
		t.Error("SafeEnvBool() = true on garbage")
	}
}
