package handlers

import (
	"encoding/json"
	"net/http"

	"beneficiarydesk/auth"
	"beneficiarydesk/models"
	"beneficiarydesk/repository"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	Repo repository.UserRepository
}

// CreateUser handles the admin user-management create. Same persistence path
// as signup, different route.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
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

	user.Password = ""

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "User created successfully",
		Data:    user,
	})
}

// ListUsers returns every account except the requesting admin's own.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.GetIdentity(r.Context())

	excludeID := ""
	if id != nil {
		excludeID = id.UserID
	}

	users, err := h.Repo.ListUsers(excludeID)
	if err != nil {
		writeRepoError(w, err, "")
		return
	}
	if users == nil {
		users = []*models.AppUser{}
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    users,
	})
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	var body struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
		Role  *string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	if body.Role != nil {
		normalized := models.NormalizeRole(*body.Role)
		if !models.ValidRole(normalized) {
			writeJSON(w, http.StatusBadRequest, ApiResponse{
				Success: false,
				Message: "Role must be admin, receptionist, or staff",
			})
			return
		}
		body.Role = &normalized
	}

	user, err := h.Repo.UpdateUser(userID, repository.UserUpdate{
		Name:  body.Name,
		Email: body.Email,
		Role:  body.Role,
	})
	if err != nil {
		writeRepoError(w, err, "Email already in use")
		return
	}

	user.Password = ""

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "User updated",
		Data:    user,
	})
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	if err := h.Repo.DeleteUser(userID); err != nil {
		writeRepoError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "User deleted successfully",
	})
}
