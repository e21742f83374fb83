package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lindo/claim-system-api/internal/domain"
	"github.com/lindo/claim-system-api/internal/service"
)

type UserHandler struct {
	authService *service.AuthService
}

func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

type CreateUserRequest struct {
	Username      string   `json:"userName" validate:"required"`
	Email         string   `json:"email" validate:"required,email"`
	Password      string   `json:"password" validate:"required"`
	FirstName     string   `json:"firstName" validate:"required"`
	LastName      string   `json:"lastName" validate:"required"`
	ContactNumber string   `json:"contactNumber"`
	Address       string   `json:"address"`
	Faculty       *string  `json:"faculty"`
	HourlyRate    *float64 `json:"hourlyRate"`
	MaxHours      *int     `json:"maxHours"`
	RoleIDs       []uint   `json:"roleIds"`
}

type UpdateUserRequest struct {
	UserID        uint     `json:"userId"`
	Username      string   `json:"userName" validate:"required"`
	Email         string   `json:"email" validate:"required,email"`
	FirstName     string   `json:"firstName" validate:"required"`
	LastName      string   `json:"lastName" validate:"required"`
	ContactNumber string   `json:"contactNumber"`
	Address       string   `json:"address"`
	Faculty       *string  `json:"faculty"`
	HourlyRate    *float64 `json:"hourlyRate"`
	MaxHours      *int     `json:"maxHours"`
	IsActive      bool     `json:"isActive"`
	RoleIDs       []uint   `json:"roleIds"`
}

type ChangePasswordRequest struct {
	UserID          uint   `json:"userId"`
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, service.AuthResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, service.AuthResponse{Success: false, Message: "All fields are required"})
		return
	}

	if len(req.RoleIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, service.AuthResponse{Success: false, Message: "At least one role must be assigned"})
		return
	}

	resp, err := h.authService.CreateUser(r.Context(), service.CreateUserInput{
		Username:      req.Username,
		Email:         req.Email,
		Password:      req.Password,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		Faculty:       req.Faculty,
		HourlyRate:    req.HourlyRate,
		MaxHours:      req.MaxHours,
		RoleIDs:       req.RoleIDs,
	})
	if err != nil {
		log.Printf("ERROR [UserHandler.Create] %v", err)
		writeJSON(w, http.StatusInternalServerError, service.AuthResponse{Success: false, Message: "An error occurred while creating the user"})
		return
	}

	if !resp.Success {
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, service.AuthResponse{Success: false, Message: "Invalid user ID"})
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, service.AuthResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if uint(id) != req.UserID {
		writeJSON(w, http.StatusBadRequest, service.AuthResponse{Success: false, Message: "User ID mismatch"})
		return
	}

	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, service.AuthResponse{Success: false, Message: "All fields are required"})
		return
	}

	resp, err := h.authService.UpdateUser(r.Context(), service.UpdateUserInput{
		UserID:        req.UserID,
		Username:      req.Username,
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		Faculty:       req.Faculty,
		HourlyRate:    req.HourlyRate,
		MaxHours:      req.MaxHours,
		IsActive:      req.IsActive,
		RoleIDs:       req.RoleIDs,
	})
	if err != nil {
		log.Printf("ERROR [UserHandler.Update] %v", err)
		writeJSON(w, http.StatusInternalServerError, service.AuthResponse{Success: false, Message: "An error occurred while updating the user"})
		return
	}

	if !resp.Success {
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, service.AuthResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeJSON(w, http.StatusBadRequest, service.AuthResponse{Success: false, Message: "Current and new passwords are required"})
		return
	}

	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, service.AuthResponse{Success: false, Message: "New password must be at least 6 characters long"})
		return
	}

	resp, err := h.authService.ChangePassword(r.Context(), service.ChangePasswordInput{
		UserID:          req.UserID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		log.Printf("ERROR [UserHandler.ChangePassword] %v", err)
		writeJSON(w, http.StatusInternalServerError, service.AuthResponse{Success: false, Message: "An error occurred while changing the password"})
		return
	}

	if !resp.Success {
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		log.Printf("ERROR [UserHandler.List] %v", err)
		writeMessage(w, http.StatusInternalServerError, "An error occurred while retrieving users")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("ERROR [UserHandler.Get] %v", err)
		writeMessage(w, http.StatusInternalServerError, "An error occurred while retrieving the user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.authService.ListRoles(r.Context())
	if err != nil {
		log.Printf("ERROR [UserHandler.ListRoles] %v", err)
		writeMessage(w, http.StatusInternalServerError, "An error occurred while retrieving roles")
		return
	}

	writeJSON(w, http.StatusOK, roles)
}
