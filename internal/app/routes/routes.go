package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/creditbridge/internal/app/controllers"
	"github.com/yigit/creditbridge/internal/app/models"
	"github.com/yigit/creditbridge/internal/middleware"
	"github.com/yigit/creditbridge/internal/pkg/websocket"
)

// SetupRouter configures all application routes. feedHandler may be nil when
// the live feed is disabled.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	transferRequestController *controllers.TransferRequestController,
	pendingRequestController *controllers.PendingRequestController,
	catalogController *controllers.CatalogController,
	feedHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes: the transfer credit form and its lookups ---
	v1.POST("/transfer-requests", transferRequestController.Submit)
	v1.GET("/schools", catalogController.ListSchools)
	v1.GET("/schools/:id/courses", catalogController.ListSchoolCourses)
	v1.GET("/home-courses", catalogController.ListHomeCourses)

	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Administrator routes ---
	admin := v1.Group("")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(string(models.RoleAdmin)))
	{
		pending := admin.Group("/pending-requests")
		{
			if feedHandler != nil {
				pending.GET("/feed", feedHandler.HandleConnection)
			}
			pending.GET("", pendingRequestController.ListPending)
			pending.GET("/:id", pendingRequestController.GetPending)
			pending.POST("/:id/approve", pendingRequestController.Approve)
			pending.POST("/:id/disapprove", pendingRequestController.Disapprove)
		}

		admin.GET("/precedents", pendingRequestController.ListPrecedents)

		admin.POST("/schools", catalogController.CreateSchool)
		admin.POST("/schools/:id/courses", catalogController.CreateCourse)
	}
}
