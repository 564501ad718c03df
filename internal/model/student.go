package model

import "time"

// Student is a practicing user account.
type Student struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	Grade        string    `json:"grade"`
	CreatedAt    time.Time `json:"created_at"`
}

// StudentSignupRequest is the payload for creating a student account.
type StudentSignupRequest struct {
	Email       string `json:"email" binding:"required,email,max=120"`
	Password    string `json:"password" binding:"required,min=6,max=72"`
	DisplayName string `json:"display_name" binding:"required,min=1,max=80"`
	Grade       string `json:"grade" binding:"required,max=4"`
}

// StudentLoginRequest is the payload for student login.
type StudentLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
