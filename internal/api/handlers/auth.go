package handlers

import (
	"encoding/json"
	"log"
	"net"
	"net/http"

	"github.com/lindo/claim-system-api/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Username string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SessionRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, service.AuthResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, service.AuthResponse{Success: false, Message: "Username and password are required"})
		return
	}

	resp, err := h.authService.Login(r.Context(), service.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		log.Printf("ERROR [AuthHandler.Login] %v", err)
		writeJSON(w, http.StatusInternalServerError, service.AuthResponse{Success: false, Message: "An error occurred during login"})
		return
	}

	if !resp.Success {
		writeJSON(w, http.StatusUnauthorized, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) ValidateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, service.AuthResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, service.AuthResponse{Success: false, Message: "Session ID is required"})
		return
	}

	resp, err := h.authService.ValidateSession(r.Context(), req.SessionID)
	if err != nil {
		log.Printf("ERROR [AuthHandler.ValidateSession] %v", err)
		writeJSON(w, http.StatusInternalServerError, service.AuthResponse{Success: false, Message: "An error occurred during session validation"})
		return
	}

	if !resp.Success {
		writeJSON(w, http.StatusUnauthorized, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	ok, err := h.authService.Logout(r.Context(), req.SessionID)
	if err != nil {
		log.Printf("ERROR [AuthHandler.Logout] %v", err)
		writeMessage(w, http.StatusInternalServerError, "An error occurred during logout")
		return
	}

	if !ok {
		writeMessage(w, http.StatusBadRequest, "Logout failed")
		return
	}

	writeMessage(w, http.StatusOK, "Logout successful")
}
