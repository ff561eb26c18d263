package utils

import "testing"

var intFromStringTests = []struct {
	value        string
	defaultValue int
	expected     int
}{
	{"15", 5, 15},
	{"", 5, 5},
	{"not a number", 5, 5},
	{"-3", 5, -3},
}

func TestIntFromString(t *testing.T) {
	for _, tt := range intFromStringTests {
		t.Run(tt.value, func(t *testing.T) {
			got := IntFromString(tt.value, tt.defaultValue)
			if got != tt.expected {
				t.Errorf("got %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestStringFromEnv(t *testing.T) {
	if got := StringFromEnv("", "fallback"); got != "fallback" {
		t.Errorf("got %q, want fallback", got)
	}
	if got := StringFromEnv("value", "fallback"); got != "value" {
		t.Errorf("got %q, want value", got)
	}
}

func TestToJson(t *testing.T) {
	got := string(ToJson(map[string]int{"a": 1}))
	if got != `{"a":1}` {
		t.Errorf("got %q", got)
	}
}
