package models

import "time"

// Admin: организатор лиг. Аккаунт активен только после подтверждения email кодом (OTP).
type Admin struct {
	ID             string     `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	Email          string     `json:"email" db:"email"`
	PasswordHash   string     `json:"-" db:"password_hash"`
	OTP            *string    `json:"-" db:"otp"`
	OTPGeneratedAt *time.Time `json:"-" db:"otp_generated_at"`
	Verified       bool       `json:"verified" db:"verified"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// Principal identifies the authenticated admin making a request.
type Principal struct {
	AdminID string
	Email   string
}
