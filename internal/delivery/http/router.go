package delivery_http

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"blogboard/internal/infrastructure/metrics"
	"blogboard/internal/logger"
	auth_service "blogboard/internal/service/auth"
	post_service "blogboard/internal/service/post"
)

var validate = validator.New()

// NewRouter wires the full HTTP surface: the post CRUD API and the
// auth collaborator endpoints.
func NewRouter(
	posts post_service.Service,
	auth auth_service.Service,
	pageSize int,
	log *logger.Logger,
	provider metrics.Provider,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(PrometheusMiddleware(provider))
	router.Use(AuthMiddleware(auth))

	postHandler := NewPostHandler(posts, validate, pageSize, log)
	authHandler := NewAuthHandler(auth, validate, log)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", authHandler.SignUp)
		authGroup.POST("/signin", authHandler.SignIn)
		authGroup.POST("/signout", authHandler.SignOut)
		authGroup.GET("/session", authHandler.Session)
	}

	api := router.Group("/api/v1")
	{
		api.GET("/posts", postHandler.ListPosts)
		api.GET("/posts/:id", postHandler.GetPost)

		protected := api.Group("")
		protected.Use(RequireAuth())
		{
			protected.POST("/posts", postHandler.CreatePost)
			protected.PATCH("/posts/:id", postHandler.UpdatePost)
			protected.DELETE("/posts/:id", postHandler.DeletePost)
		}
	}

	return router
}
