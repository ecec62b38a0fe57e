package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pizzaria-dev/pizzaria/db"
	"github.com/pizzaria-dev/pizzaria/internal/auth"
	"github.com/pizzaria-dev/pizzaria/internal/config"
	"github.com/pizzaria-dev/pizzaria/internal/types"
	"github.com/pizzaria-dev/pizzaria/internal/users"
	"github.com/pizzaria-dev/pizzaria/internal/utils"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Active   *bool  `json:"active"`
	Admin    bool   `json:"admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginFormRequest matches the OAuth2 password flow form fields, so tooling
// that speaks that convention can authenticate directly.
type LoginFormRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func Register(ctx *gin.Context) {
	var body RegisterRequest

	if err := ctx.BindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	active := true

	if body.Active != nil {
		active = *body.Active
	}

	store := users.NewStore(db.DB)

	user, err := store.Create(body.Name, body.Email, body.Password, active, body.Admin)

	if err != nil {
		if errors.Is(err, users.ErrDuplicateEmail) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}
		log.Printf("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"user": types.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Admin: user.Admin,
		},
	})
}

func Login(maker *auth.TokenMaker, cfg *config.Config) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var body LoginRequest

		if err := ctx.BindJSON(&body); err != nil {
			log.Printf("Failed to bind JSON: %v", err)
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		store := users.NewStore(db.DB)

		user, err := store.Authenticate(body.Email, body.Password)

		if err != nil {
			log.Printf("Database error during login: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		if user == nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
			return
		}

		accessToken, err := maker.Issue(user.ID, cfg.AccessTokenExpire)

		if err != nil {
			log.Printf("Failed to issue access token: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		refreshToken, err := maker.Issue(user.ID, cfg.RefreshTokenExpire)

		if err != nil {
			log.Printf("Failed to issue refresh token: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
			"token_type":    "Bearer",
		})
	}
}

func LoginForm(maker *auth.TokenMaker, cfg *config.Config) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var body LoginFormRequest

		if err := ctx.Bind(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		store := users.NewStore(db.DB)

		user, err := store.Authenticate(body.Username, body.Password)

		if err != nil {
			log.Printf("Database error during login: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		if user == nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
			return
		}

		accessToken, err := maker.Issue(user.ID, cfg.AccessTokenExpire)

		if err != nil {
			log.Printf("Failed to issue access token: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"access_token": accessToken,
			"token_type":   "Bearer",
		})
	}
}

// Refresh mints a fresh access token for the already-authenticated caller.
func Refresh(maker *auth.TokenMaker, cfg *config.Config) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		currentUser, err := utils.GetCurrentUser(ctx)

		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		accessToken, err := maker.Issue(currentUser.ID, cfg.AccessTokenExpire)

		if err != nil {
			log.Printf("Failed to issue access token: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"access_token": accessToken,
			"token_type":   "Bearer",
		})
	}
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:    currentUser.ID,
			Name:  currentUser.Name,
			Email: currentUser.Email,
			Admin: currentUser.Admin,
		},
	})
}
