package jwt

import (
	"testing"
	"time"
)

func TestGenerateTokenPair(t *testing.T) {
	service := NewService("test-secret-key", time.Hour, 24*time.Hour)

	tokenPair, err := service.GenerateTokenPair(12345, "device-123")
	if err != nil {
		t.Fatalf("Failed to generate token pair: %v", err)
	}

	if tokenPair.AccessToken == "" {
		t.Error("Access token should not be empty")
	}
	if tokenPair.RefreshToken == "" {
		t.Error("Refresh token should not be empty")
	}
	if tokenPair.ExpiresAt <= time.Now().Unix() {
		t.Error("ExpiresAt should be in the future")
	}
}

func TestValidateAccessToken_Valid(t *testing.T) {
	service := NewService("test-secret-key", time.Hour, 24*time.Hour)

	tokenPair, err := service.GenerateTokenPair(12345, "device-123")
	if err != nil {
		t.Fatalf("Failed to generate token pair: %v", err)
	}

	claims, err := service.ValidateAccessToken(tokenPair.AccessToken)
	if err != nil {
		t.Fatalf("Failed to validate access token: %v", err)
	}

	if claims.UserID != 12345 {
		t.Errorf("Expected UserID 12345, got %d", claims.UserID)
	}
	if claims.DeviceID != "device-123" {
		t.Errorf("Expected DeviceID device-123, got %s", claims.DeviceID)
	}
	if claims.Issuer != "score-api" {
		t.Errorf("Expected issuer score-api, got %s", claims.Issuer)
	}
}

func TestValidateAccessToken_Invalid(t *testing.T) {
	service := NewService("test-secret-key", time.Hour, 24*time.Hour)

	if _, err := service.ValidateAccessToken("invalid-token"); err != ErrTokenInvalid {
		t.Errorf("Expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateAccessToken_RefreshTokenRejected(t *testing.T) {
	service := NewService("test-secret-key", time.Hour, 24*time.Hour)

	tokenPair, err := service.GenerateTokenPair(12345, "device-123")
	if err != nil {
		t.Fatalf("Failed to generate token pair: %v", err)
	}

	// Refresh Token 不能当作 Access Token 使用
	if _, err := service.ValidateAccessToken(tokenPair.RefreshToken); err != ErrTokenInvalid {
		t.Errorf("Expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateAccessToken_Expired(t *testing.T) {
	service := NewService("test-secret-key", -time.Hour, 24*time.Hour)

	tokenPair, err := service.GenerateTokenPair(12345, "device-123")
	if err != nil {
		t.Fatalf("Failed to generate token pair: %v", err)
	}

	if _, err := service.ValidateAccessToken(tokenPair.AccessToken); err != ErrTokenExpired {
		t.Errorf("Expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateAccessToken_WrongSecretKey(t *testing.T) {
	service1 := NewService("secret-key-1", time.Hour, 24*time.Hour)
	service2 := NewService("secret-key-2", time.Hour, 24*time.Hour)

	tokenPair, err := service1.GenerateTokenPair(12345, "device-123")
	if err != nil {
		t.Fatalf("Failed to generate token pair: %v", err)
	}

	if _, err := service2.ValidateAccessToken(tokenPair.AccessToken); err != ErrTokenInvalid {
		t.Errorf("Expected ErrTokenInvalid, got %v", err)
	}
}
