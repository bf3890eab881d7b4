package util

import (
	"inbalance_quiz_backend/internal/model"
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.AdminUser{
		Name:  "Admin",
		Email: "admin@inbalance.app",
		Role:  model.Admin,
	}
	user.ID = 7

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.Role != model.Admin {
		t.Errorf("Role = %s, want admin", claims.Role)
	}
	if claims.Email != user.Email {
		t.Errorf("Email = %s, want %s", claims.Email, user.Email)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	user := &model.AdminUser{Email: "admin@inbalance.app", Role: model.Admin}
	token, err := GenerateJWT(user, "secret-a", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, "secret-b"); err == nil {
		t.Fatal("ParseJWT accepted token signed with a different secret")
	}
}

func TestParseJWTExpired(t *testing.T) {
	user := &model.AdminUser{Email: "admin@inbalance.app", Role: model.Admin}
	token, err := GenerateJWT(user, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, "secret"); err == nil {
		t.Fatal("ParseJWT accepted expired token")
	}
}
