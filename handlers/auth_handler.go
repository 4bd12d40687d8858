package handlers

import (
	"net/http"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/middleware"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type resendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Signup godoc
// @Summary Register a league admin
// @Tags auth
// @Accept json
// @Produce json
// @Param input body services.SignupInput true "Admin details"
// @Success 201 {object} map[string]interface{}
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input services.SignupInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	admin, err := h.authService.Signup(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, jsonResponse{
		"message": "signup successful, check your email for the verification code",
		"admin":   admin,
	})
}

func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var input resendOTPRequest
	if !decodeAndValidate(w, r, &input) {
		return
	}
	if err := h.authService.ResendOTP(r.Context(), input.Email); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"message": "verification code sent"})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var input services.VerifyOTPInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	alreadyVerified, err := h.authService.VerifyOTP(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	message := "email verified successfully"
	if alreadyVerified {
		message = "email is already verified"
	}
	respond(w, r, http.StatusOK, jsonResponse{"message": message})
}

// Login godoc
// @Summary Log in and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param input body services.LoginInput true "Credentials"
// @Success 200 {object} services.LoginResult
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	result, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.GetTokenFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "missing token")
		return
	}
	if err := h.authService.Logout(r.Context(), token); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"message": "logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	admin, err := h.authService.Me(r.Context(), principal)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"admin": admin})
}

func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	if err := h.authService.DeleteAccount(r.Context(), principal); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
