package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ethanbaker/interview/internal/stores/user"
	"github.com/ethanbaker/interview/pkg/sdk"
)

// Signup handles POST requests to register a new user
func Signup(c *gin.Context) {
	// Parse request body
	var req sdk.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err.Error()).AsGinResponse())
		return
	}

	// Register the user in the directory
	err := users.Add(c.Request.Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, user.ErrWeakPassword) {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Password does not meet the policy", err.Error()).AsGinResponse())
		return
	}
	if errors.Is(err, user.ErrExists) {
		c.JSON(sdk.NewErrorResponse(http.StatusConflict, "Email is already registered", err.Error()).AsGinResponse())
		return
	}
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to register user", err.Error()).AsGinResponse())
		return
	}

	resp := sdk.UserResponse{Name: req.Name, Email: req.Email}
	c.JSON(sdk.NewCreatedResponse("User registered successfully", resp).AsGinResponse())
}

// Login handles POST requests to verify a user's credentials
func Login(c *gin.Context) {
	// Parse request body
	var req sdk.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err.Error()).AsGinResponse())
		return
	}

	// Unknown email and wrong password are indistinguishable to the caller
	u, err := users.Verify(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, user.ErrNotFound) {
		c.JSON(sdk.NewErrorResponse(http.StatusUnauthorized, "Invalid email or password", nil).AsGinResponse())
		return
	}
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to verify credentials", err.Error()).AsGinResponse())
		return
	}

	resp := sdk.UserResponse{Name: u.Name, Email: u.Email}
	c.JSON(sdk.NewSuccessResponse("Login successful", resp).AsGinResponse())
}
