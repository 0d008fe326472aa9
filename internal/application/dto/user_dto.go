package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=6"`
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Role        string   `json:"role" validate:"omitempty,oneof=admin analyst viewer"` // viewer por defecto
	Permissions []string `json:"permissions"`
	IsActive    *bool    `json:"is_active"` // true por defecto
}

// UpdateUserRequest entrada para actualizar un usuario; solo se aplican los campos presentes.
type UpdateUserRequest struct {
	Email       *string   `json:"email"`
	Password    *string   `json:"password"`
	Name        *string   `json:"name"`
	Role        *string   `json:"role"`
	Permissions *[]string `json:"permissions"`
	IsActive    *bool     `json:"is_active"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
