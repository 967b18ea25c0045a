package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/j-ir11/videojuegos/internal/auth"
	"github.com/j-ir11/videojuegos/internal/middleware"
	"github.com/j-ir11/videojuegos/internal/models"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type userResponse struct {
	ID        string           `json:"id"`
	Email     string           `json:"email"`
	Name      string           `json:"name"`
	Addresses []models.Address `json:"addresses"`
}

func toUserResponse(user models.User) userResponse {
	addresses := user.Addresses
	if addresses == nil {
		addresses = []models.Address{}
	}
	return userResponse{
		ID:        user.ID.Hex(),
		Email:     user.Email,
		Name:      user.Name,
		Addresses: addresses,
	}
}

func Register(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/register"
		defer handlePanic(c, route)

		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, route, err)
			return
		}

		user, tokens, fields, err := svc.SignUp(c.Request.Context(), auth.SignUpInput{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
		})
		if fields != nil {
			respondValidationError(c, route, fields)
			return
		}
		if errors.Is(err, auth.ErrEmailTaken) {
			respondWithError(c, http.StatusConflict, route, "el correo ya está registrado")
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] register failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "registration failed")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"user":   toUserResponse(user),
			"tokens": tokens,
		})
	}
}

func Login(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/login"
		defer handlePanic(c, route)

		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, route, err)
			return
		}

		user, tokens, err := svc.SignIn(c.Request.Context(), req.Email, req.Password)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondWithError(c, http.StatusUnauthorized, route, "correo o contraseña incorrectos")
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] login failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "login failed")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user":   toUserResponse(user),
			"tokens": tokens,
		})
	}
}

func Refresh(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/refresh"
		defer handlePanic(c, route)

		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, route, err)
			return
		}

		user, tokens, err := svc.Refresh(c.Request.Context(), req.RefreshToken)
		if errors.Is(err, auth.ErrInvalidRefresh) {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "refresh failed")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user":   toUserResponse(user),
			"tokens": tokens,
		})
	}
}

func Logout(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/logout"
		defer handlePanic(c, route)

		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, route, err)
			return
		}

		if err := svc.SignOut(c.Request.Context(), req.RefreshToken); err != nil {
			if errors.Is(err, auth.ErrInvalidRefresh) {
				respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "logout failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func GetMe(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /auth/me"
		defer handlePanic(c, route)

		userID, ok := middleware.UserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		user, err := svc.GetUser(c.Request.Context(), userID)
		if errors.Is(err, auth.ErrUserNotFound) {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "lookup failed")
			return
		}

		c.JSON(http.StatusOK, toUserResponse(user))
	}
}
