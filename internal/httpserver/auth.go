package httpserver

import (
	"errors"
	"log"
	"net/http"

	"grocerystore/internal/domain"
	authsvc "grocerystore/internal/service/auth"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func signupHandler(logger *log.Logger, svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req authsvc.SignupInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "All fields are required")
			return
		}
		if req.Name == "" || req.Email == "" || req.Password == "" || req.Address == "" {
			badRequest(c, "All fields are required")
			return
		}

		user, token, err := svc.Signup(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				badRequest(c, "User already exists")
				return
			}
			serverError(c, logger, "signup", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"token":   token,
			"user":    user,
		})
	}
}

func loginHandler(logger *log.Logger, svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
			badRequest(c, "Email and password are required")
			return
		}

		user, token, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, authsvc.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
				return
			}
			serverError(c, logger, "login", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"token":   token,
			"user":    user,
		})
	}
}

func adminLoginHandler(logger *log.Logger, svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
			badRequest(c, "Email and password are required")
			return
		}

		admin, token, err := svc.AdminLogin(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, authsvc.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
				return
			}
			serverError(c, logger, "admin login", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"token":   token,
			"admin":   admin,
		})
	}
}
