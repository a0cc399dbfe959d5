package utils

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		def  int
		want int
	}{
		{"", 1, 1},
		{"3", 1, 3},
		{"abc", 10, 10},
		{"0", 10, 10},
		{"-4", 1, 1},
	}
	for _, tt := range tests {
		if got := ParseInt(tt.in, tt.def); got != tt.want {
			t.Errorf("ParseInt(%q, %d) = %d, want %d", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestParseFloatPtr(t *testing.T) {
	if ParseFloatPtr("") != nil || ParseFloatPtr("murah") != nil {
		t.Fatal("blank or malformed input should give nil")
	}
	if v := ParseFloatPtr(" 150000.5 "); v == nil || *v != 150000.5 {
		t.Fatalf("ParseFloatPtr = %v", v)
	}
}

func TestCalculateTotalPages(t *testing.T) {
	if got := CalculateTotalPages(21, 10); got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
	if got := CalculateTotalPages(0, 10); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

type sample struct {
	Email  string `json:"email" validate:"required,email"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Status string `json:"status" validate:"omitempty,oneof=pending confirmed"`
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	errs := ValidateStruct(sample{Email: "bukan-email", Rating: 9, Status: "done"})

	want := map[string]string{
		"email":  "Invalid email format",
		"rating": "Maximum is 5",
		"status": "Must be one of: pending, confirmed",
	}
	if len(errs) != len(want) {
		t.Fatalf("errors = %v", errs)
	}
	for field, msg := range want {
		if errs[field] != msg {
			t.Errorf("%s = %q, want %q", field, errs[field], msg)
		}
	}

	if errs := ValidateStruct(sample{Email: "a@b.co", Rating: 4}); errs != nil {
		t.Fatalf("valid struct gave %v", errs)
	}
}

func TestFormatValidationErrorsSorted(t *testing.T) {
	got := FormatValidationErrors(map[string]string{"b": "two", "a": "one"})
	if got != "a: one; b: two" {
		t.Fatalf("got %q", got)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	p := Principal{ID: uuid.New(), Role: RoleAdmin}
	token, err := GenerateToken("secret", p, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	got, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if got != p {
		t.Fatalf("principal = %+v, want %+v", got, p)
	}

	if _, err := ParseToken("lain", token); err == nil {
		t.Fatal("token signed with another secret was accepted")
	}
}

func TestGetPrincipalChecksRole(t *testing.T) {
	p := Principal{ID: uuid.New(), Role: RoleUser}
	ctx := SetPrincipal(context.Background(), p)

	if got, ok := GetPrincipal(ctx, RoleUser); !ok || got != p {
		t.Fatalf("GetPrincipal(user) = %+v, %v", got, ok)
	}
	if _, ok := GetPrincipal(ctx, RoleOwner); ok {
		t.Fatal("user principal returned for owner role")
	}
	if _, ok := GetPrincipal(context.Background(), RoleUser); ok {
		t.Fatal("empty context returned a principal")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "rahasia123") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "salah") {
		t.Fatal("wrong password accepted")
	}
}
