package rest

import (
	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/contracts"
	"brokerage-service/internal/core/port"
	"brokerage-service/internal/core/port/usecases_port"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AuthHandlers - вход администратора и управление учетными записями
type AuthHandlers struct {
	loginUC      usecases_port.LoginUserUseCasePort
	createUserUC usecases_port.CreateUserUseCasePort
	getUserUC    usecases_port.GetUserUseCasePort
}

func NewAuthHandlers(loginUC usecases_port.LoginUserUseCasePort,
	createUserUC usecases_port.CreateUserUseCasePort,
	getUserUC usecases_port.GetUserUseCasePort) *AuthHandlers {
	return &AuthHandlers{
		loginUC:      loginUC,
		createUserUC: createUserUC,
		getUserUC:    getUserUC,
	}
}

// Login обрабатывает POST /auth/login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Login"})

	var req LoginRequest
	if err := decodeValidated(r, contracts.Login, &req); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	// пароль в лог не пишем
	handlerLogger := logger.WithFields(port.Fields{"username": req.Username})
	handlerLogger.Info("Processing login request", nil)

	user, token, err := h.loginUC.Execute(r.Context(), req.Username, req.Password)
	if err != nil {
		writeUseCaseError(w, handlerLogger, err)
		return
	}

	handlerLogger.Info("User logged in successfully", port.Fields{"user_id": user.ID})
	RespondWithJSON(w, http.StatusOK, AuthResponse{Token: token, User: newUserResponse(user)})
}

// CreateUser обрабатывает POST /admin/users
func (h *AuthHandlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateUser"})

	var req CreateUserRequest
	if err := decodeValidated(r, contracts.UserCreate, &req); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"username": req.Username})
	user, err := h.createUserUC.Execute(r.Context(), req.Username, req.Password)
	if err != nil {
		writeUseCaseError(w, handlerLogger, err)
		return
	}

	handlerLogger.Info("User created", port.Fields{"user_id": user.ID})
	RespondWithJSON(w, http.StatusCreated, newUserResponse(user))
}

// GetUser обрабатывает GET /admin/users/{userID}
func (h *AuthHandlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "GetUser",
		"user_id": id,
	})

	user, err := h.getUserUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, newUserResponse(user))
}

// Me обрабатывает GET /admin/me: профиль владельца токена
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Me"})

	claims := contextkeys.ClaimsFromContext(r.Context())
	if claims == nil {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.getUserUC.Execute(r.Context(), claims.UserID)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, newUserResponse(user))
}
