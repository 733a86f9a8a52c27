package validator

import "testing"

func TestIsValidEmailFormat(t *testing.T) {
	valid := []string{"alice@example.com", "a.b+c@sub.domain.org", "x@y.zz"}
	for _, email := range valid {
		if !IsValidEmailFormat(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}

	invalid := []string{"", "plain", "no@tld", "two@@example.com", "spa ce@example.com"}
	for _, email := range invalid {
		if IsValidEmailFormat(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestIsDisposableEmail(t *testing.T) {
	disposable := []string{
		"user@mailinator.com",
		"USER@YOPMAIL.COM",
		"x@10minutemail.com",
	}
	for _, email := range disposable {
		if !IsDisposableEmail(email) {
			t.Errorf("expected %q to be flagged as disposable", email)
		}
	}

	if IsDisposableEmail("alice@gmail.com") {
		t.Error("expected a regular provider to pass")
	}
	// Malformed addresses are not this check's concern.
	if IsDisposableEmail("not-an-email") {
		t.Error("expected malformed input to pass through")
	}
}
