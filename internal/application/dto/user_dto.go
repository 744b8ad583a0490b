package dto

import "time"

// RegisterRequest entrada para registro: username, email, password y rol.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // farm_manager | employee (por defecto employee)
	ImageURL string `json:"image_url"`
}

// UpdateUserRequest actualización parcial de un usuario.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
	ImageURL *string `json:"image_url"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ImageURL  string    `json:"image_url,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida con el access token. El refresh token viaja en cookie.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// TokenPair uso interno: el handler pone RefreshToken en la cookie.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	User         UserResponse
}

// RefreshResponse salida de /auth/refresh.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// FarmManagerExistsResponse salida de la verificación de farm manager.
type FarmManagerExistsResponse struct {
	Exists bool `json:"exists"`
}
