package delivery_http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"blogboard/internal/logger"
	"blogboard/internal/model"
	auth_service "blogboard/internal/service/auth"
)

type AuthHandler struct {
	auth     auth_service.Service
	validate *validator.Validate
	log      *logger.Logger
}

func NewAuthHandler(auth auth_service.Service, validate *validator.Validate, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		validate: validate,
		log:      log,
	}
}

type SessionResponse struct {
	Identity *model.Identity `json:"identity"`
	Token    string          `json:"token,omitempty"`
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req model.SignUpDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.log.Debug("Sign-up validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and a password of at least 8 characters are required"})
		return
	}

	identity, token, err := h.auth.SignUp(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to sign up, please try again")
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{Identity: identity, Token: token})
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	identity, token, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err, "Failed to sign in, please try again")
		return
	}

	c.JSON(http.StatusOK, SessionResponse{Identity: identity, Token: token})
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
		return
	}

	if err := h.auth.SignOut(c.Request.Context(), token); err != nil {
		respondError(c, h.log, err, "Failed to sign out, please try again")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Session reports the identity behind the presented token, or an
// anonymous identity when there is none. Clients seed their user state
// from this at startup.
func (h *AuthHandler) Session(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusOK, SessionResponse{Identity: &model.Identity{}})
		return
	}

	identity, err := h.auth.GetSession(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusOK, SessionResponse{Identity: &model.Identity{}})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{Identity: identity})
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
