package receipt

import (
	"testing"
)

func TestNamespace(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"interview@raseed.ai", "interview_at_raseed_dot_ai"},
		{"a.b@c.d", "a_dot_b_at_c_dot_d"},
		{"plain", "plain"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := Namespace(tt.email); got != tt.want {
				t.Errorf("Namespace(%q) = %q, want %q", tt.email, got, tt.want)
			}
		})
	}
}

func TestNamespaceStableAndDistinct(t *testing.T) {
	if Namespace("user1@mail.com") != Namespace("user1@mail.com") {
		t.Error("same email must always map to the same namespace")
	}
	if Namespace("user1@mail.com") == Namespace("user2@mail.com") {
		t.Error("distinct emails must map to distinct namespaces")
	}
}

func TestValidNamespace(t *testing.T) {
	tests := []struct {
		ns   string
		want bool
	}{
		{"user_at_mail_dot_com", true},
		{"User123", true},
		{"", false},
		{"user; DROP TABLE users", false},
		{"user-name", false},
		{`user"quoted`, false},
	}

	for _, tt := range tests {
		if got := ValidNamespace(tt.ns); got != tt.want {
			t.Errorf("ValidNamespace(%q) = %v, want %v", tt.ns, got, tt.want)
		}
	}
}
