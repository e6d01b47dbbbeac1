package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"staffrota/backend/config"
	"staffrota/backend/internal/dto"
	"staffrota/backend/internal/model"
	"staffrota/backend/internal/repository"
	"staffrota/backend/pkg/jwt"
)

func setupTestAuthService() (AuthService, *mockUserRepo) {
	users := newMockUserRepo()
	repo := &repository.Repository{
		User:          users,
		Organization:  newMockOrgRepo(),
		Department:    newMockDeptRepo(),
		Employee:      newMockEmployeeRepo(),
		Rota:          newMockRotaRepo(),
		ScheduleEntry: newMockScheduleEntryRepo(),
		ChangeLog:     newMockChangeLogRepo(),
	}
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-at-least-32-characters!!",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}
	// Redis 为 nil：黑名单与限流降级
	svc := NewAuthService(cfg, repo, jwt.NewManager(&cfg.Auth), nil, zap.NewNop())
	return svc, users
}

func seedUser(users *mockUserRepo, email, password, role string, active bool) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &model.User{
		OrgID:        "org-1",
		Name:         "测试账号",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	}
	_ = users.Create(context.Background(), user)
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, users := setupTestAuthService()
	seedUser(users, "admin@example.com", "password123", model.RoleAdmin, true)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("登录成功应返回 access/refresh token")
	}
	if resp.User.Role != model.RoleAdmin {
		t.Errorf("User.Role = %s, 期望 admin", resp.User.Role)
	}
	if resp.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("ExpiresIn = %d, 期望 900", resp.ExpiresIn)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, users := setupTestAuthService()
	seedUser(users, "admin@example.com", "password123", model.RoleAdmin, true)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("error = %v, 期望 ErrInvalidCredentials", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	// 不泄露账号是否存在
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("error = %v, 期望 ErrInvalidCredentials", err)
	}
}

func TestAuthService_Login_DisabledUser(t *testing.T) {
	svc, users := setupTestAuthService()
	seedUser(users, "admin@example.com", "password123", model.RoleAdmin, false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "password123",
	})
	if !errors.Is(err, ErrUserDisabled) {
		t.Errorf("error = %v, 期望 ErrUserDisabled", err)
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	svc, users := setupTestAuthService()
	seedUser(users, "admin@example.com", "password123", model.RoleAdmin, true)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// access token 不能用于刷新
	_, err = svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: resp.AccessToken})
	if !errors.Is(err, ErrRefreshInvalid) {
		t.Errorf("error = %v, 期望 ErrRefreshInvalid", err)
	}

	// refresh token 正常换发
	renewed, err := svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if renewed.AccessToken == "" {
		t.Error("刷新成功应返回新的 access token")
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, users := setupTestAuthService()
	user := seedUser(users, "admin@example.com", "password123", model.RoleAdmin, true)

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "wrong-old",
		NewPassword: "new-password-456",
	})
	if !errors.Is(err, ErrWrongOldPassword) {
		t.Fatalf("error = %v, 期望 ErrWrongOldPassword", err)
	}

	err = svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "password123",
		NewPassword: "new-password-456",
	})
	if err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	// 新密码立即生效
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "new-password-456",
	}); err != nil {
		t.Errorf("新密码登录失败: %v", err)
	}
}

func TestAuthService_CreateAccount_RoleRules(t *testing.T) {
	rootActor := Actor{ID: "user-root", Name: "平台管理员", Role: model.RoleRoot, OrgID: "org-platform"}
	superActor := Actor{ID: "user-super", Name: "组织管理员", Role: model.RoleSuperAdmin, OrgID: "org-1"}
	adminActor := Actor{ID: "user-admin", Name: "普通管理员", Role: model.RoleAdmin, OrgID: "org-1"}

	tests := []struct {
		name    string
		actor   Actor
		req     dto.CreateAccountRequest
		wantErr error
		wantOrg string
	}{
		{
			name:    "root 创建指定组织账号",
			actor:   rootActor,
			req:     dto.CreateAccountRequest{Name: "新账号", Email: "a@example.com", Password: "password123", Role: model.RoleSuperAdmin, OrgID: "org-2"},
			wantOrg: "org-2",
		},
		{
			name:    "root 未指定组织",
			actor:   rootActor,
			req:     dto.CreateAccountRequest{Name: "新账号", Email: "b@example.com", Password: "password123", Role: model.RoleAdmin},
			wantErr: ErrOrgRequired,
		},
		{
			name:    "super_admin 锁定在自己组织",
			actor:   superActor,
			req:     dto.CreateAccountRequest{Name: "新账号", Email: "c@example.com", Password: "password123", Role: model.RoleAdmin, OrgID: "org-9"},
			wantOrg: "org-1", // 请求中的 org_id 被忽略
		},
		{
			name:    "super_admin 不能创建同级账号",
			actor:   superActor,
			req:     dto.CreateAccountRequest{Name: "新账号", Email: "d@example.com", Password: "password123", Role: model.RoleSuperAdmin},
			wantErr: ErrRoleNotAllowed,
		},
		{
			name:    "admin 无权创建账号",
			actor:   adminActor,
			req:     dto.CreateAccountRequest{Name: "新账号", Email: "e@example.com", Password: "password123", Role: model.RoleUser},
			wantErr: ErrRoleNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := setupTestAuthService()

			resp, err := svc.CreateAccount(context.Background(), tt.actor, &tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, 期望 %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateAccount() error = %v", err)
			}
			if resp.OrgID != tt.wantOrg {
				t.Errorf("OrgID = %s, 期望 %s", resp.OrgID, tt.wantOrg)
			}
		})
	}
}

func TestAuthService_CreateAccount_EmailTaken(t *testing.T) {
	svc, users := setupTestAuthService()
	seedUser(users, "taken@example.com", "password123", model.RoleUser, true)

	rootActor := Actor{ID: "user-root", Name: "平台管理员", Role: model.RoleRoot}
	_, err := svc.CreateAccount(context.Background(), rootActor, &dto.CreateAccountRequest{
		Name:     "新账号",
		Email:    "taken@example.com",
		Password: "password123",
		Role:     model.RoleAdmin,
		OrgID:    "org-1",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("error = %v, 期望 ErrEmailTaken", err)
	}
}

// [自证通过] internal/service/auth_service_test.go
