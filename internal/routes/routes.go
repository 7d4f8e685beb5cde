package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"quicknotes/internal/handlers"
	"quicknotes/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	noteHandler *handlers.NoteHandler,
	auth middleware.Authenticator,
	cookieName string,
) *gin.Engine {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireAuth := middleware.AuthMiddleware(auth, cookieName)

	api := r.Group("/api")

	// ---- auth
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/verify-otp", authHandler.VerifyOTP)
		authGroup.POST("/google", authHandler.GoogleLogin)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/me", middleware.OptionalAuth(auth, cookieName), authHandler.Me)

		authGroup.POST("/avatar/upload-url", requireAuth, authHandler.AvatarUploadURL)
		authGroup.PUT("/avatar", requireAuth, authHandler.ConfirmAvatar)
	}

	// ---- notes (JWT)
	notes := api.Group("/notes", requireAuth)
	{
		notes.GET("", noteHandler.List)
		notes.POST("", noteHandler.Create)
		notes.GET("/export.pdf", noteHandler.Export)
		notes.PUT("/:id", noteHandler.Update)
		notes.DELETE("/:id", noteHandler.Delete)
	}

	return r
}
