package handlers

import (
	"net/http"

	"github.com/farellandr/dealhub/internal/helpers"
	"github.com/farellandr/dealhub/internal/middleware"
	"github.com/farellandr/dealhub/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	PhoneNumber string `json:"phone_number"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register signs up a subscriber.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	services := servicesOrAbort(c)
	if services == nil {
		return
	}

	ctx := c.Request.Context()
	existingUser, err := services.Accounts.FindUserByEmail(ctx, req.Email)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to check existing user.")
		return
	}
	if existingUser != nil {
		helpers.RespondWithError(c, http.StatusConflict, "User already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to hash the password.")
		return
	}

	user := models.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hashedPassword),
		PhoneNumber: req.PhoneNumber,
	}

	if err := services.Accounts.CreateUser(ctx, &user); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create user.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully."})
}

// Login issues a subscriber token.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	services := servicesOrAbort(c)
	if services == nil {
		return
	}

	user, err := services.Accounts.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil || user == nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	respondWithToken(c, services, user.ID, user.Email, models.RoleSubscriber)
}

// StaffLogin issues a token carrying the staff member's role.
func StaffLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	services := servicesOrAbort(c)
	if services == nil {
		return
	}

	staff, err := services.Accounts.FindStaffByEmail(c.Request.Context(), req.Email)
	if err != nil || staff == nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(req.Password)); err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	respondWithToken(c, services, staff.ID, staff.Email, staff.Role.Name)
}

func respondWithToken(c *gin.Context, services *middleware.Services, id uint, email, role string) {
	if services.Auth.Secret == "" {
		helpers.RespondWithError(c, http.StatusInternalServerError, "JWT secret not configured.")
		return
	}

	tokenString, err := middleware.IssueToken(services.Auth.Secret, id, role, services.Auth.TokenTTL)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user": gin.H{
			"id":    id,
			"email": email,
			"role":  role,
		},
	})
}
