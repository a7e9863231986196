package http

import (
	"github.com/gin-gonic/gin"

	"github.com/devconnect/devconnect-api/pkg/auth"
	"github.com/devconnect/devconnect-api/pkg/logger"
)

// NewRouter assembles the full route table. Kept out of main so the handler
// tests drive the exact same router the server runs.
func NewRouter(authHandler *AuthHandler, profileHandler *ProfileHandler, jwtSvc *auth.JWTService, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ErrorMiddleware(log))

	authMW := AuthMiddleware(jwtSvc)

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		p := api.Group("/profile")
		{
			p.GET("", profileHandler.ListProfiles)
			p.GET("/me", authMW, profileHandler.GetMyProfile)
			p.POST("", authMW, profileHandler.UpsertProfile)
			p.DELETE("", authMW, profileHandler.DeleteAccount)
			p.DELETE("/me", authMW, profileHandler.DeleteAccount)
			p.GET("/user/:user_id", profileHandler.GetProfileByUser)
			p.PUT("/experience", authMW, profileHandler.AddExperience)
			p.DELETE("/experience/:exp_id", authMW, profileHandler.RemoveExperience)
			p.PUT("/education", authMW, profileHandler.AddEducation)
			p.DELETE("/education/:edu_id", authMW, profileHandler.RemoveEducation)
			p.GET("/github/:username", profileHandler.GithubRepos)
		}
	}

	return router
}
