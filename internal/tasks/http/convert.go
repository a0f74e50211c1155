package http

import (
	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
)

func toUserResponse(u domain.User) tasksdk.UserResponse {
	return tasksdk.UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		ProfilePic: u.ProfilePic,
		CreatedAt:  u.CreatedAt,
	}
}

func toTaskResponse(t domain.Task) tasksdk.TaskResponse {
	return tasksdk.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
