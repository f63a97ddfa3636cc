package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

// tokenRequest accepts the OAuth2 password form (username is the email)
// or the same fields as JSON.
type tokenRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// --- Users ---

// "me" is taken by GET /users/me.
type createUserRequest struct {
	ID       string `json:"id"       validate:"omitempty,max=64,ne=me"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=1"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- Items ---

type createItemRequest struct {
	ID          string  `json:"id"          validate:"omitempty,max=64"`
	Name        string  `json:"name"        validate:"required,min=2,max=50"`
	Description *string `json:"description" validate:"omitempty,min=3,max=500"`
	Price       float64 `json:"price"       validate:"gte=0,lte=100000000"`
	Stock       int     `json:"stock"       validate:"gte=0,lte=10000"`
}

type updateItemRequest struct {
	Name        *string  `json:"name"        validate:"omitempty,min=2,max=50"`
	Description *string  `json:"description" validate:"omitempty,min=3,max=500"`
	Price       *float64 `json:"price"       validate:"omitempty,gte=0,lte=100000000"`
	Stock       *int     `json:"stock"       validate:"omitempty,gte=0,lte=10000"`
}

type itemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}
