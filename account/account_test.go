package account

import (
	"errors"
	"strings"
	"testing"

	"overtrack/storage"
	"overtrack/worklog"
)

func TestRegister_AndAuthenticate(t *testing.T) {
	t.Parallel()

	svc := NewService(storage.NewMemoryStore())
	profile, err := svc.Register(RegisterInput{Name: " Jane Smith ", Email: "jane.smith@example.com", Password: "demo123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if profile.ID == "" || profile.Name != "Jane Smith" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	got, err := svc.Authenticate("jane.smith@example.com", "demo123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got != profile {
		t.Fatalf("expected %+v, got %+v", profile, got)
	}

	if _, err := svc.Authenticate("jane.smith@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate("nobody@example.com", "demo123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := NewService(storage.NewMemoryStore())
	if _, err := svc.Register(RegisterInput{Name: "John Doe", Email: "john.doe@example.com", Password: "demo123"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register(RegisterInput{Name: "John Again", Email: "john.doe@example.com", Password: "secret1"})
	var conflict *worklog.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  RegisterInput
		field  string
		reason string
	}{
		{name: "short name", input: RegisterInput{Name: "J", Email: "j@example.com", Password: "demo123"}, field: "name", reason: "must be at least 2 characters long"},
		{name: "long name", input: RegisterInput{Name: strings.Repeat("n", 101), Email: "j@example.com", Password: "demo123"}, field: "name", reason: "must be at most 100 characters long"},
		{name: "missing name", input: RegisterInput{Email: "j@example.com", Password: "demo123"}, field: "name", reason: "is required"},
		{name: "bad email", input: RegisterInput{Name: "John", Email: "john-at-example", Password: "demo123"}, field: "email", reason: "must be a valid email address"},
		{name: "short password", input: RegisterInput{Name: "John", Email: "j@example.com", Password: "12345"}, field: "password", reason: "must be at least 6 characters long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(storage.NewMemoryStore())
			_, err := svc.Register(tt.input)
			var validationErr *worklog.ValidationError
			if !errors.As(err, &validationErr) || validationErr.Field != tt.field {
				t.Fatalf("expected validation error on %s, got %v", tt.field, err)
			}
			if validationErr.Reason != tt.reason {
				t.Fatalf("expected reason %q, got %q", tt.reason, validationErr.Reason)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	svc := NewService(storage.NewMemoryStore())
	profile, err := svc.Register(RegisterInput{Name: "John Doe", Email: "john.doe@example.com", Password: "demo123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := svc.Lookup(profile.ID)
	if err != nil || got.Email != "john.doe@example.com" {
		t.Fatalf("lookup: %+v err=%v", got, err)
	}
	if _, err := svc.Lookup("missing"); !errors.Is(err, worklog.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	all, err := svc.List()
	if err != nil || len(all) != 1 {
		t.Fatalf("list: %+v err=%v", all, err)
	}
}
