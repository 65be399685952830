package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"villa-backend/controllers"
	"villa-backend/middleware"
	"villa-backend/utils"
)

const AdminRole = "admin"

// SupportedVersions are the accepted values of the :version path segment.
var SupportedVersions = []string{"v1", "v2"}

type Controllers struct {
	Users        *controllers.UserController
	Villas       *controllers.VillaController
	VillaNumbers *controllers.VillaNumberController
}

// SetupRouter wires every API route. Reads are open; anything that
// changes a villa or a villa number needs an admin bearer token.
func SetupRouter(
	ctrls Controllers,
	tokens middleware.TokenValidator,
	corsOrigins []string,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(logger), middleware.Recovery(logger))

	allowCredentials := true
	for _, origin := range corsOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "X-Pagination", "Location", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	adminOnly := middleware.RequireRole(tokens, logger, AdminRole)

	api := r.Group("/api/:version", middleware.APIVersion(SupportedVersions...))
	{
		auth := api.Group("/UserAuth")
		{
			auth.POST("/Login", ctrls.Users.Login)
			auth.POST("/Register", ctrls.Users.Register)
		}

		villas := api.Group("/VillaAPI")
		{
			villas.GET("", ctrls.Villas.GetVillas)
			// static segment, must not be taken for an :id
			villas.GET("/export", adminOnly, ctrls.Villas.ExportVillas)
			villas.GET("/:id", ctrls.Villas.GetVilla)
			villas.POST("", adminOnly, ctrls.Villas.CreateVilla)
			villas.PUT("/:id", adminOnly, ctrls.Villas.UpdateVilla)
			villas.PATCH("/:id", adminOnly, ctrls.Villas.UpdatePartialVilla)
			villas.DELETE("/:id", adminOnly, ctrls.Villas.DeleteVilla)
		}

		numbers := api.Group("/VillaNumberAPI")
		{
			numbers.GET("", ctrls.VillaNumbers.GetVillaNumbers)
			numbers.GET("/:id", ctrls.VillaNumbers.GetVillaNumber)
			numbers.POST("", adminOnly, ctrls.VillaNumbers.CreateVillaNumber)
			numbers.PUT("/:id", adminOnly, ctrls.VillaNumbers.UpdateVillaNumber)
			numbers.DELETE("/:id", adminOnly, ctrls.VillaNumbers.DeleteVillaNumber)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		utils.JSONError(c, http.StatusNotFound, "Route not found")
	})

	return r
}
