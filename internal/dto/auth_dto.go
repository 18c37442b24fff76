package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

const (
	LoginSucceeded = "Successfully logged in"
	LoginMismatch  = "Credentials do not match"
)
