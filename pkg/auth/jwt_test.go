package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestJWTService(t *testing.T, secret string) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     secret,
		Issuer:     "installments-test",
		Expiration: 15 * time.Minute,
	})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(t, "test-secret-key-for-unit-tests")
	userID := uuid.New()
	accountID := uuid.New()
	roles := []string{RoleAdmin, RoleOperator}

	tokenString, err := svc.GenerateToken(userID, accountID, roles)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if tokenString == "" {
		t.Fatal("GenerateToken() returned empty token")
	}

	claims, err := svc.ValidateToken(tokenString)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.AccountID != accountID {
		t.Errorf("AccountID = %v, want %v", claims.AccountID, accountID)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != RoleAdmin || claims.Roles[1] != RoleOperator {
		t.Errorf("Roles = %v, want [%s %s]", claims.Roles, RoleAdmin, RoleOperator)
	}
	if claims.Issuer != "installments-test" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "installments-test")
	}
	if claims.Subject != userID.String() {
		t.Errorf("Subject = %q, want %q", claims.Subject, userID.String())
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "installments-test",
		Expiration: -1 * time.Hour, // already expired
	})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}

	tokenString, err := svc.GenerateToken(uuid.New(), uuid.New(), []string{RoleCardholder})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := svc.ValidateToken(tokenString); err == nil {
		t.Fatal("ValidateToken() expected error for expired token, got nil")
	}
}

func TestValidateToken_InvalidSignature(t *testing.T) {
	svc1 := newTestJWTService(t, "secret-one")
	svc2 := newTestJWTService(t, "secret-two")

	tokenString, err := svc1.GenerateToken(uuid.New(), uuid.New(), []string{RoleCardholder})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := svc2.ValidateToken(tokenString); err == nil {
		t.Fatal("ValidateToken() expected error for invalid signature, got nil")
	}
}

func TestValidateToken_RSAValidationOnly(t *testing.T) {
	privPEM, pubPEM, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}

	issuer, err := NewJWTService(JWTConfig{
		PrivateKeyPEM: string(privPEM),
		Issuer:        "installments-test",
		Expiration:    15 * time.Minute,
	})
	if err != nil {
		t.Fatalf("NewJWTService(issuer) error = %v", err)
	}

	validator, err := NewJWTService(JWTConfig{
		PublicKeyPEM: string(pubPEM),
		Issuer:       "installments-test",
	})
	if err != nil {
		t.Fatalf("NewJWTService(validator) error = %v", err)
	}

	userID := uuid.New()
	tokenString, err := issuer.GenerateToken(userID, uuid.New(), []string{RoleAPIClient})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := validator.ValidateToken(tokenString)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}

	// Validation-only mode must refuse to sign.
	if _, err := validator.GenerateToken(uuid.New(), uuid.New(), nil); err == nil {
		t.Fatal("GenerateToken() expected error in validation-only mode, got nil")
	}
}

func TestHasRole(t *testing.T) {
	claims := Claims{
		Roles: []string{RoleAdmin, RoleOperator},
	}

	if !claims.HasRole(RoleAdmin) {
		t.Error("HasRole(RoleAdmin) = false, want true")
	}
	if !claims.HasRole(RoleOperator) {
		t.Error("HasRole(RoleOperator) = false, want true")
	}
	if claims.HasRole(RoleCardholder) {
		t.Error("HasRole(RoleCardholder) = true, want false")
	}
	if claims.HasRole("nonexistent") {
		t.Error("HasRole(nonexistent) = true, want false")
	}
}

func TestClaimsFromContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := ClaimsFromContext(ctx); ok {
		t.Error("ClaimsFromContext() ok = true for empty context, want false")
	}

	expected := &Claims{
		UserID: uuid.New(),
		Roles:  []string{RoleOperator},
	}
	ctx = ContextWithClaims(ctx, expected)
	got, ok := ClaimsFromContext(ctx)
	if !ok {
		t.Fatal("ClaimsFromContext() ok = false, want true")
	}
	if got.UserID != expected.UserID {
		t.Errorf("ClaimsFromContext().UserID = %v, want %v", got.UserID, expected.UserID)
	}
	if len(got.Roles) != 1 || got.Roles[0] != RoleOperator {
		t.Errorf("ClaimsFromContext().Roles = %v, want [%s]", got.Roles, RoleOperator)
	}
}
