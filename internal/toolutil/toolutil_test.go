package toolutil

import (
	"errors"
	"strings"
	"testing"
)

func TestRequireQuery(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"  golang  ", "golang", false},
		{"", "", true},
		{"   ", "", true},
		{strings.Repeat("я", MaxQueryLen), strings.Repeat("я", MaxQueryLen), false},
		{strings.Repeat("a", MaxQueryLen+1), "", true},
	}
	for _, tt := range tests {
		got, err := RequireQuery(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("RequireQuery(%.20q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrInvalidInput) {
			t.Errorf("RequireQuery(%.20q) error not ErrInvalidInput: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("RequireQuery(%.20q) = %.20q", tt.in, got)
		}
	}
}

func TestRequireURL(t *testing.T) {
	good := []string{"https://example.com", " http://example.com/a?b=c "}
	bad := []string{"", "example.com", "ftp://example.com", "https://", "/path"}
	for _, u := range good {
		if _, err := RequireURL(u); err != nil {
			t.Errorf("RequireURL(%q) error = %v", u, err)
		}
	}
	for _, u := range bad {
		if _, err := RequireURL(u); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("RequireURL(%q) error = %v, want ErrInvalidInput", u, err)
		}
	}
}

func TestClampWait(t *testing.T) {
	if got := ClampWait(-5, 100); got != 0 {
		t.Errorf("ClampWait(-5) = %d", got)
	}
	if got := ClampWait(500, 100); got != 100 {
		t.Errorf("ClampWait(500) = %d", got)
	}
	if got := ClampWait(50, 100); got != 50 {
		t.Errorf("ClampWait(50) = %d", got)
	}
}
