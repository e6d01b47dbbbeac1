package handler

import (
	"github.com/gin-gonic/gin"

	"staffrota/backend/internal/model"
	"staffrota/backend/internal/service"
	"staffrota/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	return mustGetString(c, "user_id")
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	return mustGetString(c, "role")
}

func mustGetString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// mustResolveOrgID 解析本次请求生效的组织
// root 可通过 ?org_id= 跨组织操作；其余角色锁定在 Token 中的组织
func mustResolveOrgID(c *gin.Context) (string, bool) {
	role, ok := MustGetRole(c)
	if !ok {
		return "", false
	}

	if role == model.RoleRoot {
		if override := c.Query("org_id"); override != "" {
			return override, true
		}
	}

	orgID, ok := mustGetString(c, "org_id")
	if !ok {
		return "", false
	}
	return orgID, true
}

// mustGetActor 从上下文构造写操作审计主体
func mustGetActor(c *gin.Context) (service.Actor, bool) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return service.Actor{}, false
	}
	role, ok := MustGetRole(c)
	if !ok {
		return service.Actor{}, false
	}

	name, _ := c.Get("user_name")
	orgID, _ := c.Get("org_id")
	nameStr, _ := name.(string)
	orgStr, _ := orgID.(string)

	return service.Actor{
		ID:        userID,
		Name:      nameStr,
		Role:      role,
		OrgID:     orgStr,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}, true
}
