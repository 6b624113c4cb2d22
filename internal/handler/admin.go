package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"dakabot/internal/model/dto"
	"dakabot/internal/service"
	"dakabot/pkg/response"
)

// AdminHandler 内部管理接口，部署时应由反向代理限制来源
type AdminHandler struct {
	users *service.UserService
}

func NewAdminHandler(users *service.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers GET /api/users
func (h *AdminHandler) ListUsers(ctx context.Context, c *app.RequestContext) {
	users, err := h.users.ListUsers(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.SuccessWithMeta(ctx, c, users, map[string]interface{}{
		"total": len(users),
	})
}

// ListAttendance GET /api/attendance
func (h *AdminHandler) ListAttendance(ctx context.Context, c *app.RequestContext) {
	query := dto.AttendanceQuery{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		UserID:    c.Query("userId"),
	}

	records, err := h.users.ListAttendance(ctx, query)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.SuccessWithMeta(ctx, c, records, map[string]interface{}{
		"total": len(records),
	})
}
