package admin_login

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/PPB-BookingService/internal/api/handlers"
	"github.com/m04kA/PPB-BookingService/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCredentials = "неверные имя пользователя или пароль"
)

// Handler выдает админский JWT по паре логин/пароль из конфигурации
// Администратор в этом домене ровно один, поэтому проверка — сравнение
// с константой, а не поиск в таблице пользователей
type Handler struct {
	username string
	password string
	secret   string
	tokenTTL time.Duration
	logger   Logger
}

func NewHandler(username, password, secret string, tokenTTL time.Duration, logger Logger) *Handler {
	return &Handler{
		username: username,
		password: password,
		secret:   secret,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Handle POST /api/admin/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if !h.credentialsMatch(req.Username, req.Password) {
		h.logger.Warn("POST /admin/login - Invalid credentials for username=%q", req.Username)
		handlers.RespondUnauthorized(w, msgInvalidCredentials)
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  req.Username,
		"role": middleware.AdminRole,
		"iat":  now.Unix(),
		"exp":  now.Add(h.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.secret))
	if err != nil {
		h.logger.Error("POST /admin/login - Failed to sign token: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/login - Admin logged in: username=%s", req.Username)
	handlers.RespondJSON(w, http.StatusOK, LoginResponse{Token: token})
}

func (h *Handler) credentialsMatch(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.password)) == 1
	return userOK && passOK
}
