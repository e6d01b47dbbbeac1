package jwt

import (
	"testing"
	"time"

	"staffrota/backend/config"
)

func newTestManager(accessTTL, refreshTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:       "unit-test-secret-0123456789",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	})
}

func TestManager_GenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager(15*time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "王敏", "admin", "org-1")
	if err != nil {
		t.Fatalf("生成 Access Token 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("期望 user_id=user-1，实际=%s", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("期望 role=admin，实际=%s", claims.Role)
	}
	if claims.OrgID != "org-1" {
		t.Errorf("期望 org_id=org-1，实际=%s", claims.OrgID)
	}
	if claims.TokenType != "access" {
		t.Errorf("期望 token_type=access，实际=%s", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("JWT ID (jti) 不应为空")
	}
}

func TestManager_RefreshTokenType(t *testing.T) {
	m := newTestManager(15*time.Minute, 24*time.Hour)

	token, err := m.GenerateRefreshToken("user-1", "王敏", "user", "org-1")
	if err != nil {
		t.Fatalf("生成 Refresh Token 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("期望 token_type=refresh，实际=%s", claims.TokenType)
	}
}

func TestManager_ExpiredToken(t *testing.T) {
	m := newTestManager(-1*time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "王敏", "user", "org-1")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	if _, err := m.ParseToken(token); err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestManager_TamperedToken(t *testing.T) {
	m := newTestManager(15*time.Minute, 24*time.Hour)
	other := newTestManager(15*time.Minute, 24*time.Hour)
	other.secret = []byte("another-secret-9876543210")

	token, err := other.GenerateAccessToken("user-1", "王敏", "user", "org-1")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	if _, err := m.ParseToken(token); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}
