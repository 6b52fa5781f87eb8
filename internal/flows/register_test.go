package flows

import (
	"context"
	"errors"
	"testing"
)

var (
	errTestNotReady    = errors.New("not ready")
	errTestValidation  = errors.New("validation")
	errTestDuplicate   = errors.New("duplicate")
	errTestRateLimited = errors.New("rate limited")
)

func registerDeps(t *testing.T) RegisterDeps {
	t.Helper()
	return RegisterDeps{
		HashPassword: func(pwd string) (string, error) { return "hash:" + pwd, nil },
		NewUserID:    func() string { return "uid-1" },
		CreateUser: func(_ context.Context, id, username, hash string, admin bool) (UserRecord, error) {
			return UserRecord{ID: id, Username: username, PasswordHash: hash, Admin: admin}, nil
		},
		Errors: RegisterErrors{
			NotReady:    errTestNotReady,
			Validation:  errTestValidation,
			Duplicate:   errTestDuplicate,
			RateLimited: errTestRateLimited,
		},
	}
}

func TestRunRegisterSuccess(t *testing.T) {
	deps := registerDeps(t)

	res, err := RunRegister(context.Background(), "alice_01", "Passw0rd!", false, deps)
	if err != nil {
		t.Fatalf("RunRegister: %v", err)
	}
	if res.UserID != "uid-1" || res.Username != "alice_01" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRunRegisterRejectsBadFormat(t *testing.T) {
	deps := registerDeps(t)
	deps.HashPassword = func(string) (string, error) {
		t.Fatal("hash must not run for invalid input")
		return "", nil
	}

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"short username", "ab", "Passw0rd!"},
		{"long username", "abcdefghijklmnopqrstu", "Passw0rd!"},
		{"bad characters", "alice-01", "Passw0rd!"},
		{"short password", "alice_01", "Pw0rd!"},
		{"no uppercase", "alice_01", "passw0rd!"},
		{"no lowercase", "alice_01", "PASSW0RD!"},
		{"no digit", "alice_01", "Password!"},
	}
	for _, tc := range cases {
		if _, err := RunRegister(context.Background(), tc.username, tc.password, false, deps); !errors.Is(err, errTestValidation) {
			t.Errorf("%s: got %v, want validation error", tc.name, err)
		}
	}
}

func TestRunRegisterDuplicate(t *testing.T) {
	deps := registerDeps(t)
	deps.CreateUser = func(context.Context, string, string, string, bool) (UserRecord, error) {
		return UserRecord{}, errTestDuplicate
	}

	if _, err := RunRegister(context.Background(), "alice_01", "Passw0rd!", false, deps); !errors.Is(err, errTestDuplicate) {
		t.Fatalf("got %v, want duplicate error", err)
	}
}

func TestRunRegisterRateLimited(t *testing.T) {
	deps := registerDeps(t)
	deps.AllowRate = func(context.Context, string) error { return errTestRateLimited }

	if _, err := RunRegister(context.Background(), "alice_01", "Passw0rd!", false, deps); !errors.Is(err, errTestRateLimited) {
		t.Fatalf("got %v, want rate limit error", err)
	}
}

func TestRunRegisterMissingDeps(t *testing.T) {
	deps := registerDeps(t)
	deps.CreateUser = nil

	if _, err := RunRegister(context.Background(), "alice_01", "Passw0rd!", false, deps); !errors.Is(err, errTestNotReady) {
		t.Fatalf("got %v, want not-ready error", err)
	}
}

func TestRunRegisterPassesAdminFlag(t *testing.T) {
	deps := registerDeps(t)
	var gotAdmin bool
	deps.CreateUser = func(_ context.Context, id, username, hash string, admin bool) (UserRecord, error) {
		gotAdmin = admin
		return UserRecord{ID: id, Username: username}, nil
	}

	if _, err := RunRegister(context.Background(), "root_user", "Adm1nPass", true, deps); err != nil {
		t.Fatalf("RunRegister: %v", err)
	}
	if !gotAdmin {
		t.Fatal("admin flag not propagated to CreateUser")
	}
}
