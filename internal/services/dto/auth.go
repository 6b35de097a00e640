package dto

import "promolink_backend/internal/models"

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,is-user-role"`

	// Для брендов и агентств
	CompanyName string `json:"company_name,omitempty"`

	// Для инфлюенсеров
	DisplayName string   `json:"display_name,omitempty"`
	Platforms   []string `json:"platforms,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
