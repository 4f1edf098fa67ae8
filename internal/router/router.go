package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/client"
	"kanban-board-api/internal/events"
	"kanban-board-api/internal/handler"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/middleware"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	S3Client    client.S3ClientInterface
	Tokens      *service.TokenManager
	Hub         *events.Hub
	BasePath    string
	CORSOrigins []string
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check route
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)
	r.GET("/health", healthHandler.Health)

	// Initialize repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	kanbanRepo := repository.NewKanbanRepository(cfg.DB)
	columnRepo := repository.NewColumnRepository(cfg.DB)
	cardRepo := repository.NewCardRepository(cfg.DB)
	labelRepo := repository.NewLabelRepository(cfg.DB)
	checklistRepo := repository.NewChecklistRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)
	attachmentRepo := repository.NewAttachmentRepository(cfg.DB)
	invitationRepo := repository.NewInvitationRepository(cfg.DB)

	// Card and column mutations fan out to websocket subscribers via Redis
	publisher := events.NewRedisPublisher(cfg.Redis, cfg.Logger)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.Tokens, cfg.Redis, cfg.Logger)
	userService := service.NewUserService(userRepo, cfg.Logger)
	kanbanService := service.NewKanbanService(kanbanRepo, attachmentRepo, cfg.S3Client, cfg.Metrics, cfg.Logger)
	columnService := service.NewColumnService(columnRepo, kanbanRepo, publisher, cfg.Logger)
	cardService := service.NewCardService(cardRepo, columnRepo, kanbanRepo, labelRepo, attachmentRepo, publisher, cfg.Metrics, cfg.Logger)
	labelService := service.NewLabelService(labelRepo, kanbanRepo, cfg.Logger)
	checklistService := service.NewChecklistService(checklistRepo, cardRepo, columnRepo, kanbanRepo, cfg.Logger)
	commentService := service.NewCommentService(commentRepo, cardRepo, columnRepo, kanbanRepo, attachmentRepo, cfg.Logger)
	attachmentService := service.NewAttachmentService(attachmentRepo, cfg.S3Client, cfg.Metrics, cfg.Logger)
	invitationService := service.NewInvitationService(invitationRepo, kanbanRepo, userRepo, cfg.Tokens, cfg.Metrics, cfg.Logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	kanbanHandler := handler.NewKanbanHandler(kanbanService, invitationService)
	columnHandler := handler.NewColumnHandler(columnService)
	cardHandler := handler.NewCardHandler(cardService)
	labelHandler := handler.NewLabelHandler(labelService)
	checklistHandler := handler.NewChecklistHandler(checklistService)
	commentHandler := handler.NewCommentHandler(commentService)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService)
	invitationHandler := handler.NewInvitationHandler(invitationService)
	wsHandler := handler.NewWSHandler(cfg.Hub, cfg.Tokens, kanbanService, cfg.Logger)

	// API routes group
	api := r.Group(cfg.BasePath)

	// Ingress strips nothing, so probes also reach these under the base path
	if cfg.BasePath != "" {
		api.GET("/metrics", gin.WrapH(promhttp.Handler()))
		api.GET("/health", healthHandler.Health)
	}

	// ============================================================
	// Public routes
	// ============================================================
	api.POST("/auth/login", authHandler.Login)
	api.POST("/invitations/accept", invitationHandler.AcceptInvitation)

	// Websocket subscription authenticates via query token
	api.GET("/ws/kanbans/:kanbanId", wsHandler.Subscribe)

	// ============================================================
	// Authenticated routes
	// ============================================================
	authMiddleware := middleware.Auth(cfg.Tokens, authService)

	authed := api.Group("")
	authed.Use(authMiddleware)
	{
		authed.POST("/auth/logout", authHandler.Logout)

		// ============================================================
		// User routes
		// ============================================================
		users := authed.Group("/users")
		{
			users.GET("/me", userHandler.GetMe)
			users.PUT("/me", userHandler.UpdateMe)
			users.PUT("/me/password", userHandler.ChangePassword)
			users.GET("", userHandler.ListUsers)
			users.DELETE("/:userId", userHandler.DeleteUser)
		}

		// ============================================================
		// Kanban routes
		// ============================================================
		kanbans := authed.Group("/kanbans")
		{
			kanbans.POST("", kanbanHandler.CreateKanban)
			kanbans.GET("", kanbanHandler.ListKanbans)
			kanbans.GET("/:kanbanId", kanbanHandler.GetKanban)
			kanbans.PUT("/:kanbanId", kanbanHandler.UpdateKanban)
			kanbans.DELETE("/:kanbanId", kanbanHandler.DeleteKanban)

			// Members
			kanbans.GET("/:kanbanId/members", kanbanHandler.ListMembers)
			kanbans.DELETE("/:kanbanId/members/:userId", kanbanHandler.RemoveMember)

			// Pending invitations
			kanbans.GET("/:kanbanId/invitations", kanbanHandler.ListInvitations)
		}

		// ============================================================
		// Column routes
		// ============================================================
		columns := authed.Group("/columns")
		{
			columns.POST("", columnHandler.CreateColumn)
			columns.PUT("/reorder", columnHandler.ReorderColumns)
			columns.GET("/:columnId", columnHandler.GetColumn)
			columns.PUT("/:columnId", columnHandler.UpdateColumn)
			columns.DELETE("/:columnId", columnHandler.DeleteColumn)
		}

		// ============================================================
		// Card routes
		// ============================================================
		cards := authed.Group("/cards")
		{
			cards.POST("", cardHandler.CreateCard)
			cards.PUT("/reorder", cardHandler.ReorderCards)
			cards.GET("/:cardId", cardHandler.GetCard)
			cards.PUT("/:cardId", cardHandler.UpdateCard)
			cards.DELETE("/:cardId", cardHandler.DeleteCard)
			cards.PUT("/:cardId/move", cardHandler.MoveCard)

			// Assignees
			cards.POST("/:cardId/assignees", cardHandler.AddAssignee)
			cards.DELETE("/:cardId/assignees/:userId", cardHandler.RemoveAssignee)

			// Labels
			cards.POST("/:cardId/labels", cardHandler.AttachLabel)
			cards.DELETE("/:cardId/labels/:labelId", cardHandler.DetachLabel)
		}

		// ============================================================
		// Label routes
		// ============================================================
		labels := authed.Group("/labels")
		{
			labels.POST("", labelHandler.CreateLabel)
			labels.GET("/kanban/:kanbanId", labelHandler.ListLabels)
			labels.PUT("/:labelId", labelHandler.UpdateLabel)
			labels.DELETE("/:labelId", labelHandler.DeleteLabel)
		}

		// ============================================================
		// Checklist routes
		// ============================================================
		checklistItems := authed.Group("/checklist-items")
		{
			checklistItems.POST("", checklistHandler.CreateItem)
			checklistItems.PUT("/:itemId", checklistHandler.UpdateItem)
			checklistItems.PUT("/:itemId/toggle", checklistHandler.ToggleItem)
			checklistItems.DELETE("/:itemId", checklistHandler.DeleteItem)
		}

		// ============================================================
		// Comment routes
		// ============================================================
		comments := authed.Group("/comments")
		{
			comments.POST("", commentHandler.CreateComment)
			comments.GET("/card/:cardId", commentHandler.ListComments)
			comments.PUT("/:commentId", commentHandler.UpdateComment)
			comments.DELETE("/:commentId", commentHandler.DeleteComment)
		}

		// ============================================================
		// Attachment routes
		// ============================================================
		attachments := authed.Group("/attachments")
		{
			attachments.POST("/upload", attachmentHandler.Upload)
			attachments.GET("/:attachmentId/url", attachmentHandler.GetDownloadURL)
			attachments.DELETE("/:attachmentId", attachmentHandler.DeleteAttachment)
		}

		// ============================================================
		// Invitation routes
		// ============================================================
		authed.POST("/invitations", invitationHandler.IssueInvitation)
	}

	return r
}
