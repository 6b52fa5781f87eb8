package flows

import (
	"context"
	"errors"
	"testing"
)

func TestRunLogoutDeletesToken(t *testing.T) {
	var deleted string
	deps := LogoutDeps{
		DeleteToken: func(_ context.Context, token string) error {
			deleted = token
			return nil
		},
	}

	if err := RunLogout(context.Background(), "tok-1", deps); err != nil {
		t.Fatalf("RunLogout: %v", err)
	}
	if deleted != "tok-1" {
		t.Fatalf("deleted %q, want tok-1", deleted)
	}
}

func TestRunLogoutEmptyTokenIsNoOp(t *testing.T) {
	deps := LogoutDeps{
		DeleteToken: func(context.Context, string) error {
			t.Fatal("delete must not run for an empty token")
			return nil
		},
	}

	if err := RunLogout(context.Background(), "", deps); err != nil {
		t.Fatalf("RunLogout: %v", err)
	}
}

func TestRunLogoutSurfacesStoreFailure(t *testing.T) {
	errStore := errors.New("store down")
	deps := LogoutDeps{
		DeleteToken: func(context.Context, string) error { return errStore },
	}

	if err := RunLogout(context.Background(), "tok-1", deps); !errors.Is(err, errStore) {
		t.Fatalf("got %v, want store error", err)
	}
}

func TestRunLogoutMissingDeps(t *testing.T) {
	deps := LogoutDeps{Errors: LogoutErrors{NotReady: errTestNotReady}}

	if err := RunLogout(context.Background(), "tok-1", deps); !errors.Is(err, errTestNotReady) {
		t.Fatalf("got %v, want not-ready error", err)
	}
}
