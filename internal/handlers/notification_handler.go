package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"projecthub_backend/internal/middleware"
	"projecthub_backend/internal/repositories"
	"projecthub_backend/internal/services"
	"projecthub_backend/internal/services/dto"
	"projecthub_backend/pkg/apperrors"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
	digestService       services.DigestService
	userRepo            repositories.UserRepository
}

func NewNotificationHandler(
	base *BaseHandler,
	notificationService services.NotificationService,
	digestService services.DigestService,
	userRepo repositories.UserRepository,
) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
		digestService:       digestService,
		userRepo:            userRepo,
	}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", h.GetUserNotifications)
		notifications.PATCH("/:notificationId/read", h.MarkAsRead)
		notifications.PUT("/read-all", h.MarkAllAsRead)
		notifications.GET("/unread-count", h.GetUnreadCount)
		notifications.POST("/morning", h.RunMorningGeneration)
		notifications.POST("/types", h.CreateTypedNotification)
		notifications.POST("/schedules", h.CreateSchedule)
	}
}

func (h *NotificationHandler) GetUserNotifications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var criteria repositories.NotificationCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	response, err := h.notificationService.GetUserNotifications(userID, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	notificationID, err := uuid.Parse(c.Param("notificationId"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid notification ID"))
		return
	}

	if err := h.notificationService.MarkAsRead(userID, notificationID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllAsRead(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.GetUnreadCount(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}

// RunMorningGeneration runs the morning digest for the session user
// synchronously, outside the daily schedule.
func (h *NotificationHandler) RunMorningGeneration(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.digestService.GenerateMorning(c.Request.Context(), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *NotificationHandler) CreateTypedNotification(c *gin.Context) {
	sessionUserID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTypedNotificationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	targetID := sessionUserID
	if req.UserID != "" {
		parsed, err := uuid.Parse(req.UserID)
		if err != nil {
			apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid user_id"))
			return
		}
		targetID = parsed
	}

	if _, err := h.userRepo.FindByID(targetID); err != nil {
		h.HandleServiceError(c, apperrors.ErrNotFound(err))
		return
	}

	if err := h.notificationService.CreateFromRequest(c.Request.Context(), targetID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (h *NotificationHandler) CreateSchedule(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateScheduleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	schedule, err := h.notificationService.CreateSchedule(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, schedule)
}
