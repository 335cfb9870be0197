package speakmeaning

import (
	"regexp"
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	v := Version()
	if v == "" {
		t.Fatalf("Version() returned empty string")
	}
	if !regexp.MustCompile(`^\d+\.\d+\.\d+$`).MatchString(v) {
		t.Fatalf("Version() = %q, want MAJOR.MINOR.PATCH", v)
	}
}

func TestUserAgent(t *testing.T) {
	if ua := UserAgent(); !strings.HasSuffix(ua, "/"+Version()) {
		t.Fatalf("UserAgent() = %q, want it to end in the version", ua)
	}
}
