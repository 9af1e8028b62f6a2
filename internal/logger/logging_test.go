package logger

import (
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{" WARN ", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"chatty", log.InfoLevel},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := ParseLevel(tc.in, log.InfoLevel); got != tc.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNewUsesGlobalLevel(t *testing.T) {
	prev := log.GetLevel()
	defer log.SetLevel(prev)

	log.SetLevel(log.ErrorLevel)
	if got := New("test").GetLevel(); got != log.ErrorLevel {
		t.Errorf("level = %v, want %v", got, log.ErrorLevel)
	}
}

func TestNewWithConfig(t *testing.T) {
	l := NewWithConfig("srv", log.DebugLevel, true, false, log.JSONFormatter)
	if got := l.GetLevel(); got != log.DebugLevel {
		t.Errorf("level = %v, want %v", got, log.DebugLevel)
	}
	if got := l.GetPrefix(); got != "srv" {
		t.Errorf("prefix = %q, want %q", got, "srv")
	}
}
