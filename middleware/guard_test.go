package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	authgate "github.com/MrEthical07/authgate"
)

type stubAuthenticator struct {
	identity authgate.Identity
	err      error
	gotToken string
}

func (s *stubAuthenticator) AuthenticateAccess(token string) (authgate.Identity, error) {
	s.gotToken = token
	if s.err != nil {
		return authgate.Identity{}, s.err
	}
	return s.identity, nil
}

func guardedRequest(t *testing.T, auth authgate.TokenAuthenticator, header string) (*httptest.ResponseRecorder, *authgate.Identity) {
	t.Helper()

	var seen *authgate.Identity
	handler := Guard(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := IdentityFromContext(r.Context()); ok {
			seen = &identity
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec, seen
}

func TestGuardPassesValidToken(t *testing.T) {
	auth := &stubAuthenticator{identity: authgate.Identity{UserID: "uid-1", Username: "alice_01", Admin: true}}

	rec, seen := guardedRequest(t, auth, "Bearer good-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if auth.gotToken != "good-token" {
		t.Fatalf("token passed to authenticator = %q", auth.gotToken)
	}
	if seen == nil || seen.UserID != "uid-1" || !seen.Admin {
		t.Fatalf("identity in context: %+v", seen)
	}
}

func TestGuardRejectsMissingHeader(t *testing.T) {
	auth := &stubAuthenticator{}

	cases := []string{"", "Basic abc", "Bearer ", "good-token"}
	for _, header := range cases {
		rec, seen := guardedRequest(t, auth, header)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rec.Code)
		}
		if seen != nil {
			t.Errorf("header %q: handler ran", header)
		}
	}
}

func TestGuardStatusPerErrorKind(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"expired", authgate.ErrTokenExpired, http.StatusUnauthorized},
		{"invalid", authgate.ErrTokenInvalid, http.StatusForbidden},
	}
	for _, tc := range cases {
		rec, seen := guardedRequest(t, &stubAuthenticator{err: tc.err}, "Bearer some-token")
		if rec.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, rec.Code, tc.want)
		}
		if seen != nil {
			t.Errorf("%s: handler ran", tc.name)
		}
	}
}

func TestGuardNilAuthenticator(t *testing.T) {
	rec, _ := guardedRequest(t, nil, "Bearer some-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}
