package credentials

import (
	"regexp"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Str0ng!Pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "Str0ng!Pass" || hash == "" {
		t.Fatalf("hash looks wrong: %q", hash)
	}

	ok, err := VerifyPassword("Str0ng!Pass", hash)
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}
	ok, err = VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("mismatch must not error: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if _, err := VerifyPassword("whatever", "not-a-bcrypt-hash"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
}

func TestIsStrongPassword(t *testing.T) {
	cases := []struct {
		pw   string
		want bool
	}{
		{"Str0ng!Pass", true},
		{"TestPharmacy123!", true},
		{"short1!A", true},   // exactly 8 characters
		{"Sh0rt!a", false},   // 7 characters
		{"alllower1!", false}, // no uppercase
		{"ALLUPPER1!", false}, // no lowercase
		{"NoDigits!!", false},
		{"NoSymbol123", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsStrongPassword(c.pw); got != c.want {
			t.Errorf("IsStrongPassword(%q) = %v, want %v", c.pw, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"abc@ex.com", "first.last@sub.domain.org", "x@y.co"}
	invalid := []string{"", "plain", "missing@tld", "no at.example.com", "two@@ex.com", "spaces in@ex.com"}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("expected %q valid", e)
		}
	}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("expected %q invalid", e)
		}
	}
}

func TestSecureID_UniqueAndWellFormed(t *testing.T) {
	re := regexp.MustCompile(`^[0-9a-f]{24}$`)
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := SecureID()
		if !re.MatchString(id) {
			t.Fatalf("unexpected id format: %q", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("collision after %d ids: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}
