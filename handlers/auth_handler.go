package handlers

import (
	"encoding/json"
	"net/http"

	"beneficiarydesk/auth"
	"beneficiarydesk/models"
	"beneficiarydesk/repository"

	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	Repo      repository.UserRepository
	JWTSecret []byte
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

type loginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Login verifies credentials and mints a session token. Unknown email and
// wrong password get the same response, timing aside.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	user, err := h.Repo.GetUserByEmail(creds.Email)
	if err != nil {
		writeRepoError(w, err, "")
		return
	}
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, ApiResponse{
			Success: false,
			Message: "Invalid email or password",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		writeJSON(w, http.StatusUnauthorized, ApiResponse{
			Success: false,
			Message: "Invalid email or password",
		})
		return
	}

	token, err := auth.GenerateToken(user, h.JWTSecret, auth.TokenValidity)
	if err != nil {
		writeRepoError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User: loginUser{
			ID:    user.ID,
			Email: user.Email,
			Role:  models.NormalizeRole(user.Role),
		},
	})
}

// Signup creates a user account. The route is admin-gated; the plaintext
// password is hashed by the repository and never logged.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var user models.AppUser
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	if user.Name == "" || user.Email == "" || user.Role == "" || user.Password == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Name, email, password, and role are required",
		})
		return
	}

	user.Role = models.NormalizeRole(user.Role)
	if !models.ValidRole(user.Role) {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Role must be admin, receptionist, or staff",
		})
		return
	}

	if err := h.Repo.CreateUser(&user); err != nil {
		writeRepoError(w, err, "User already exists")
		return
	}

	user.Password = "" // hide password hash

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "User created successfully",
		Data:    user,
	})
}
