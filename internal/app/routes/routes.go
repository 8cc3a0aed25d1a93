package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/clubhub/internal/app/controllers"
	"github.com/yigit/clubhub/internal/app/models/dto"
	"github.com/yigit/clubhub/internal/middleware"
)

// Controllers groups every HTTP handler set
type Controllers struct {
	Auth       *controllers.AuthController
	User       *controllers.UserController
	Club       *controllers.ClubController
	Membership *controllers.MembershipController
	Event      *controllers.EventController
	Message    *controllers.MessageController
	Search     *controllers.SearchController
	Admin      *controllers.AdminController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl *Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewMessageResponse("ok"))
	})

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.RefreshToken)
		auth.POST("/logout", ctrl.Auth.Logout)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	users := authenticated.Group("/users")
	{
		users.GET("/me", ctrl.User.GetProfile)
		users.PUT("/me", ctrl.User.UpdateProfile)
		users.PUT("/me/picture", ctrl.User.UpdateProfilePicture)
		users.GET("/:id", ctrl.User.GetUser)
		users.GET("/:id/leader", ctrl.User.LeaderDetails)
		users.POST("/:id/promote", ctrl.User.PromoteToAdmin)
	}

	// Role checks happen in the services against the stored role
	clubs := authenticated.Group("/clubs")
	{
		clubs.GET("", ctrl.Club.List)
		clubs.POST("", ctrl.Club.Create)
		clubs.GET("/pending", ctrl.Club.ListPending)
		clubs.GET("/:id", ctrl.Club.Detail)
		clubs.PUT("/:id", ctrl.Club.Update)
		clubs.PUT("/:id/logo", ctrl.Club.UpdateLogo)
		clubs.POST("/:id/approve", ctrl.Club.Approve)
		clubs.POST("/:id/reject", ctrl.Club.Reject)

		clubs.GET("/:id/members", ctrl.Membership.ListMembers)
		clubs.GET("/:id/membership", ctrl.Membership.Status)
		clubs.POST("/:id/leave", ctrl.Membership.Leave)
		clubs.POST("/:id/members/:userId/leader", ctrl.Membership.PromoteMember)
		clubs.GET("/:id/join-requests", ctrl.Membership.ListJoinRequests)
		clubs.POST("/:id/join-requests", ctrl.Membership.SubmitJoinRequest)

		clubs.GET("/:id/events", ctrl.Event.ListClubEvents)
		clubs.POST("/:id/events", ctrl.Event.Create)

		clubs.GET("/:id/messages", ctrl.Message.List)
		clubs.POST("/:id/messages", ctrl.Message.Post)
	}

	joinRequests := authenticated.Group("/join-requests")
	{
		joinRequests.POST("/:id/approve", ctrl.Membership.ApproveJoinRequest)
		joinRequests.POST("/:id/reject", ctrl.Membership.RejectJoinRequest)
	}

	events := authenticated.Group("/events")
	{
		events.GET("/upcoming", ctrl.Event.Upcoming)
		events.GET("/search", ctrl.Event.Search)
		events.GET("/:id", ctrl.Event.Detail)
		events.PUT("/:id", ctrl.Event.Update)
		events.DELETE("/:id", ctrl.Event.Delete)
		events.PUT("/:id/image", ctrl.Event.UpdateImage)
		events.POST("/:id/register", ctrl.Event.Register)
		events.DELETE("/:id/register", ctrl.Event.Unregister)
		events.POST("/:id/teams", ctrl.Event.CreateTeam)
	}

	authenticated.DELETE("/messages/:id", ctrl.Message.Delete)
	authenticated.GET("/search", ctrl.Search.Search)

	admin := authenticated.Group("/admin")
	{
		admin.GET("/dashboard", ctrl.Admin.Dashboard)
		admin.GET("/leaders", ctrl.Admin.Leaders)
		admin.GET("/leaders/snapshot", ctrl.Admin.LatestSnapshot)
	}

	router.NoRoute(func(c *gin.Context) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found")
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
	})
}
