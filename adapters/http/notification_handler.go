package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/application/usecase/notifications"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/apperror"
)

type NotificationHandler struct {
	syncUseCase        *notifications.SyncUseCase
	markReadUseCase    *notifications.MarkReadUseCase
	resolveUseCase     *notifications.ResolveUseCase
	deleteUseCase      *notifications.DeleteUseCase
	contactUseCase     *notifications.ContactUseCase
	startRatingUseCase *notifications.StartRatingUseCase
	hireUseCase        *notifications.HireUseCase
	feedUseCase        *notifications.FeedUseCase
}

func NewNotificationHandler(
	syncUC *notifications.SyncUseCase,
	markReadUC *notifications.MarkReadUseCase,
	resolveUC *notifications.ResolveUseCase,
	deleteUC *notifications.DeleteUseCase,
	contactUC *notifications.ContactUseCase,
	startRatingUC *notifications.StartRatingUseCase,
	hireUC *notifications.HireUseCase,
	feedUC *notifications.FeedUseCase,
) *NotificationHandler {
	return &NotificationHandler{
		syncUseCase:        syncUC,
		markReadUseCase:    markReadUC,
		resolveUseCase:     resolveUC,
		deleteUseCase:      deleteUC,
		contactUseCase:     contactUC,
		startRatingUseCase: startRatingUC,
		hireUseCase:        hireUC,
		feedUseCase:        feedUC,
	}
}

// List refreshes the caller's notifications from the backend and returns
// them with the unread count. A backend failure still answers with an empty
// list so the client renders an empty state, plus a notice saying the
// refresh failed.
func (h *NotificationHandler) List(c *gin.Context) {
	sess, ok := GetSessionFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("session not found in context"))
		return
	}

	out, err := h.syncUseCase.Execute(c.Request.Context(), sess)
	if err != nil {
		dto := ToNotificationListDTO(out.Contracts, 0, sess.Role)
		dto.Error = syncErrorMessage(err)
		c.JSON(http.StatusOK, dto)
		return
	}
	c.JSON(http.StatusOK, ToNotificationListDTO(out.Contracts, out.Unseen, sess.Role))
}

func syncErrorMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "Could not refresh your notifications, please try again"
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	sess, ok := GetSessionFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("session not found in context"))
		return
	}

	out := h.markReadUseCase.Execute(c.Request.Context(), sess)
	c.JSON(http.StatusOK, ToNotificationListDTO(out.Contracts, out.Unseen, sess.Role))
}

func (h *NotificationHandler) Accept(c *gin.Context) {
	h.resolve(c, true)
}

func (h *NotificationHandler) Reject(c *gin.Context) {
	h.resolve(c, false)
}

func (h *NotificationHandler) resolve(c *gin.Context, accept bool) {
	sess, ok := GetSessionFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("session not found in context"))
		return
	}

	out, err := h.resolveUseCase.Execute(c.Request.Context(), sess, notifications.ResolveInput{
		ContractID: c.Param("id"),
		Accept:     accept,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToNotificationDTO(*out, sess.Role))
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	sess, ok := GetSessionFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("session not found in context"))
		return
	}

	err := h.deleteUseCase.Execute(c.Request.Context(), sess, notifications.DeleteInput{
		ContractID: c.Param("id"),
		Confirmed:  c.Query("confirmed") == "true",
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *NotificationHandler) Contact(c *gin.Context) {
	sess, ok := GetSessionFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("session not found in context"))
		return
	}

	link, err := h.contactUseCase.Execute(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"whatsapp_url": link})
}

// StartRating stages the counterpart snapshot the rating screen will pick
// up with a later check call.
func (h *NotificationHandler) StartRating(c *gin.Context) {
	sess, ok := GetSessionFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("session not found in context"))
		return
	}

	h2, err := h.startRatingUseCase.Execute(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, h2)
}

type hireRequest struct {
	WorkerProfileID string `json:"worker_profile_id" binding:"required"`
}

func (h *NotificationHandler) Hire(c *gin.Context) {
	sess, ok := GetSessionFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("session not found in context"))
		return
	}

	var req hireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body", err))
		return
	}

	out, err := h.hireUseCase.Execute(c.Request.Context(), sess, notifications.HireInput{
		WorkerProfileID: req.WorkerProfileID,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToNotificationDTO(*out, sess.Role))
}

func (h *NotificationHandler) Feed(c *gin.Context) {
	sess, ok := GetSessionFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("session not found in context"))
		return
	}

	entries, err := h.feedUseCase.Execute(c.Request.Context(), sess, 0)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
