package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quicknotes/internal/middleware"
	"quicknotes/internal/models"
	"quicknotes/internal/services"
)

type AuthHandler struct {
	otp      *services.OTPService
	auth     services.AuthService
	sessions services.SessionService
	avatars  services.AvatarService
	cookie   CookieSettings
}

func NewAuthHandler(
	otp *services.OTPService,
	auth services.AuthService,
	sessions services.SessionService,
	avatars services.AvatarService,
	cookie CookieSettings,
) *AuthHandler {
	return &AuthHandler{otp: otp, auth: auth, sessions: sessions, avatars: avatars, cookie: cookie}
}

type userResponse struct {
	ID     string        `json:"_id"`
	Name   string        `json:"name"`
	Email  string        `json:"email"`
	Avatar models.Avatar `json:"avatar"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
}

// startSession выпускает токен и кладёт его в cookie.
func (h *AuthHandler) startSession(c *gin.Context, user *models.User) bool {
	token, expiresAt, err := h.sessions.Issue(user.ID)
	if err != nil {
		log.Printf("[auth][session] issue failed user_id=%s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": serverErrorMessage})
		return false
	}
	h.cookie.set(c, token, expiresAt)
	log.Printf("[auth][session] issued user_id=%s exp_in=%s", user.ID, time.Until(expiresAt).Truncate(time.Second))
	return true
}

// @Summary      Request an OTP
// @Description  Sends a 6-digit code to the email. Works for both registration and login.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.RegisterRequest  true  "Name and email"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide name and email"})
		return
	}

	res, err := h.otp.Issue(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		respondError(c, "[auth][register]", err)
		return
	}

	message := "OTP sent for registration"
	if res.ExistingUser {
		message = "User already exists, OTP sent for login"
	}
	body := gin.H{
		"message": message,
		"data":    gin.H{"name": res.Name, "email": res.Email},
	}
	if !res.Delivered {
		body["warning"] = "We could not deliver the email, please request a new code"
	}
	c.JSON(http.StatusOK, body)
}

// @Summary      Verify an OTP
// @Description  Creates the account on first verification and sets the session cookie.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.VerifyOTPRequest  true  "Name, email and code"
// @Success      200   {object}  map[string]interface{}
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Router       /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide all fields"})
		return
	}

	res, err := h.otp.Verify(c.Request.Context(), req.Name, req.Email, req.OTP)
	if err != nil {
		respondError(c, "[auth][verify-otp]", err)
		return
	}
	if !h.startSession(c, res.User) {
		return
	}

	if res.Created {
		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully",
			"data":    toUserResponse(res.User),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User already exists, logged in successfully",
		"data":    toUserResponse(res.User),
	})
}

// @Summary      Login with Google
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.GoogleLoginRequest  true  "Google ID token"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/google [post]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req models.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Google token is required"})
		return
	}

	user, _, err := h.auth.ExternalLogin(c.Request.Context(), req.Token)
	if err != nil {
		respondError(c, "[auth][google]", err)
		return
	}
	if !h.startSession(c, user) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    toUserResponse(user),
	})
}

// @Summary  Logout
// @Tags     Auth
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookie.clear(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// @Summary  Current user
// @Tags     Auth
// @Produce  json
// @Success  200  {object}  map[string]interface{}
// @Router   /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

// @Summary  Presigned avatar upload URL
// @Tags     Auth
// @Produce  json
// @Success  200  {object}  map[string]interface{}
// @Failure  401  {object}  map[string]string
// @Failure  503  {object}  map[string]string
// @Router   /auth/avatar/upload-url [post]
func (h *AuthHandler) AvatarUploadURL(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
		return
	}
	upload, err := h.avatars.PresignUpload(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, "[auth][avatar-url]", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": upload})
}

// @Summary  Set avatar from an uploaded object
// @Tags     Auth
// @Accept   json
// @Produce  json
// @Param    body  body      models.AvatarConfirmRequest  true  "Uploaded object key"
// @Success  200   {object}  map[string]interface{}
// @Failure  400   {object}  map[string]string
// @Router   /auth/avatar [put]
func (h *AuthHandler) ConfirmAvatar(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
		return
	}
	var req models.AvatarConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "public_id is required"})
		return
	}
	updated, err := h.avatars.Confirm(c.Request.Context(), user.ID, req.PublicID)
	if err != nil {
		respondError(c, "[auth][avatar]", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toUserResponse(updated)})
}
