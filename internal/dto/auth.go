package dto

import (
	"time"

	"bazaar/internal/domain"
)

type GoogleAuthRequest struct {
	AccessToken string `json:"accessToken"`
}

type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type UserDTO struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	ProfileImage *string   `json:"profileImage,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

type UpdateProfileRequest struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role"`
}

type UpdateUserStatusRequest struct {
	IsActive bool    `json:"isActive"`
	Reason   *string `json:"reason,omitempty"`
}

type UsersResponse struct {
	Users []UserDTO `json:"users"`
}

func FromUser(u *domain.User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         string(u.Role),
		ProfileImage: u.ProfileImage,
		Phone:        u.Phone,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

func FromUsers(users []domain.User) UsersResponse {
	out := make([]UserDTO, len(users))
	for i := range users {
		out[i] = FromUser(&users[i])
	}
	return UsersResponse{Users: out}
}
