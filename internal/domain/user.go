package domain

import "time"

type User struct {
	UserID       string     `json:"id" dynamodbav:"user_id"`
	Mobile       string     `json:"mobile" dynamodbav:"mobile"`
	Email        string     `json:"email,omitempty" dynamodbav:"email"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	Role         string     `json:"role" dynamodbav:"role"`
	FirstName    string     `json:"first_name" dynamodbav:"first_name"`
	LastName     string     `json:"last_name" dynamodbav:"last_name"`
	Gender       string     `json:"gender,omitempty" dynamodbav:"gender"`
	AvatarURL    string     `json:"avatar,omitempty" dynamodbav:"avatar_url"`
	Verified     bool       `json:"is_verified" dynamodbav:"is_verified"`
	Active       bool       `json:"is_active" dynamodbav:"is_active"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt    time.Time  `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" dynamodbav:"updated_at"`
}

// FullName returns "First Last", or the mobile number for accounts that have
// no profile fields yet (implicitly provisioned ones).
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Mobile
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type CreateUserRequest struct {
	Mobile    string `json:"mobile" validate:"required,mobile"`
	Role      string `json:"role" validate:"required,oneof=user operator business_coach superuser"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Gender    *string `json:"gender" validate:"omitempty,oneof=man woman"`
	Role      *string `json:"role" validate:"omitempty,oneof=user operator business_coach superuser"`
	Active    *bool   `json:"is_active"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Gender    *string `json:"gender" validate:"omitempty,oneof=man woman"`
}
