package jwt

import (
	"errors"
	"testing"
	"time"
)

func testManager(t *testing.T, accessTTL, refreshTTL time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		AccessSecret:  []byte("access-secret-0123456789abcdef01"),
		RefreshSecret: []byte("refresh-secret-0123456789abcdef0"),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
		Issuer:        "authgate",
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestNewManagerRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"empty access secret", Config{
			RefreshSecret: []byte("b"), AccessTTL: time.Minute, RefreshTTL: time.Hour,
		}},
		{"empty refresh secret", Config{
			AccessSecret: []byte("a"), AccessTTL: time.Minute, RefreshTTL: time.Hour,
		}},
		{"equal secrets", Config{
			AccessSecret: []byte("same"), RefreshSecret: []byte("same"),
			AccessTTL: time.Minute, RefreshTTL: time.Hour,
		}},
		{"zero access TTL", Config{
			AccessSecret: []byte("a"), RefreshSecret: []byte("b"), RefreshTTL: time.Hour,
		}},
		{"excessive leeway", Config{
			AccessSecret: []byte("a"), RefreshSecret: []byte("b"),
			AccessTTL: time.Minute, RefreshTTL: time.Hour, Leeway: time.Hour,
		}},
	}
	for _, tc := range cases {
		if _, err := NewManager(tc.cfg); err == nil {
			t.Errorf("%s: NewManager succeeded", tc.name)
		}
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testManager(t, 15*time.Minute, 7*24*time.Hour)

	token, err := m.IssueAccess("uid-1", "alice_01", true)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	claims, err := m.ParseAccess(token)
	if err != nil {
		t.Fatalf("ParseAccess: %v", err)
	}
	if claims.UID != "uid-1" || claims.Username != "alice_01" || !claims.Admin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != "authgate" {
		t.Fatalf("issuer = %q", claims.Issuer)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("missing registered claims")
	}
	if ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time); ttl != 15*time.Minute {
		t.Fatalf("access TTL = %v", ttl)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := testManager(t, 15*time.Minute, 7*24*time.Hour)

	token, expiresAt, err := m.IssueRefresh("uid-1")
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}
	if until := time.Until(expiresAt); until < 7*24*time.Hour-time.Minute {
		t.Fatalf("expiry too close: %v", until)
	}

	claims, err := m.ParseRefresh(token)
	if err != nil {
		t.Fatalf("ParseRefresh: %v", err)
	}
	if claims.UID != "uid-1" {
		t.Fatalf("uid = %q", claims.UID)
	}
}

func TestSecretsAreNotInterchangeable(t *testing.T) {
	m := testManager(t, 15*time.Minute, 7*24*time.Hour)

	access, err := m.IssueAccess("uid-1", "alice_01", false)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	refresh, _, err := m.IssueRefresh("uid-1")
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}

	if _, err := m.ParseRefresh(access); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("access parsed as refresh: %v", err)
	}
	if _, err := m.ParseAccess(refresh); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("refresh parsed as access: %v", err)
	}
}

func TestWrongSecretIsSignatureError(t *testing.T) {
	m := testManager(t, 15*time.Minute, 7*24*time.Hour)
	other, err := NewManager(Config{
		AccessSecret:  []byte("different-access-secret-01234567"),
		RefreshSecret: []byte("different-refresh-secret-0123456"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		Issuer:        "authgate",
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	token, err := other.IssueAccess("uid-1", "alice_01", false)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if _, err := m.ParseAccess(token); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("got %v, want signature error", err)
	}
}

func TestExpiredTokenIsExpiredError(t *testing.T) {
	m := testManager(t, time.Millisecond, time.Hour)

	token, err := m.IssueAccess("uid-1", "alice_01", false)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := m.ParseAccess(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("got %v, want expiry error", err)
	}
}

func TestMalformedTokenIsMalformedError(t *testing.T) {
	m := testManager(t, 15*time.Minute, 7*24*time.Hour)

	for _, tok := range []string{"garbage", "a.b", "a.b.c.d", ""} {
		if _, err := m.ParseAccess(tok); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("%q: got %v, want malformed error", tok, err)
		}
	}
}

func TestAccessVerifier(t *testing.T) {
	m := testManager(t, 15*time.Minute, 7*24*time.Hour)

	v, err := NewAccessVerifier([]byte("access-secret-0123456789abcdef01"), "authgate", 0)
	if err != nil {
		t.Fatalf("NewAccessVerifier: %v", err)
	}

	token, err := m.IssueAccess("uid-1", "alice_01", true)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	claims, err := v.ParseAccess(token)
	if err != nil {
		t.Fatalf("ParseAccess: %v", err)
	}
	if claims.UID != "uid-1" || !claims.Admin {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	refresh, _, err := m.IssueRefresh("uid-1")
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}
	if _, err := v.ParseAccess(refresh); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("refresh token verified: %v", err)
	}
}
