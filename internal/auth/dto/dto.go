package dto

type RegisterDTO struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email"    validate:"required,email"`
	FullName string `json:"fullName" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginDTO accepts either username or email as the account identifier.
type LoginDTO struct {
	Username string `json:"username" validate:"required_without=Email"`
	Email    string `json:"email"    validate:"required_without=Username"`
	Password string `json:"password" validate:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutDTO struct {
	// AccessToken is optional: when present its jti is denylisted so the
	// token stops working before its natural expiry.
	AccessToken string `json:"access_token"`
}

type ValidateDTO struct {
	AccessToken string `json:"access_token" validate:"required"`
}
