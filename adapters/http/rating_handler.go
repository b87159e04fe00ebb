package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ratingUC "github.com/redoficios2025-Inicial/redoficios-gateway/internal/application/usecase/rating"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/apperror"
)

type RatingHandler struct {
	checkUseCase  *ratingUC.CheckUseCase
	submitUseCase *ratingUC.SubmitUseCase
	deleteUseCase *ratingUC.DeleteUseCase
}

func NewRatingHandler(checkUC *ratingUC.CheckUseCase, submitUC *ratingUC.SubmitUseCase, deleteUC *ratingUC.DeleteUseCase) *RatingHandler {
	return &RatingHandler{
		checkUseCase:  checkUC,
		submitUseCase: submitUC,
		deleteUseCase: deleteUC,
	}
}

// Check consumes the staged handoff and tells the client which form to
// render: a blank form, the existing rating in edit mode, or read only.
func (h *RatingHandler) Check(c *gin.Context) {
	sess, ok := GetSessionFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("session not found in context"))
		return
	}

	out, err := h.checkUseCase.Execute(c.Request.Context(), sess)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mode":        out.Mode,
		"counterpart": out.Counterpart,
		"contract_id": out.ContractID,
		"rating":      out.Existing,
	})
}

type submitRatingRequest struct {
	ContractID string `json:"contract_id" binding:"required"`
	RateeID    string `json:"ratee_id" binding:"required"`
	Score      int    `json:"score"`
	Comment    string `json:"comment"`
}

func (h *RatingHandler) Submit(c *gin.Context) {
	sess, ok := GetSessionFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("session not found in context"))
		return
	}

	var req submitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body", err))
		return
	}

	saved, err := h.submitUseCase.Execute(c.Request.Context(), sess, ratingUC.SubmitInput{
		ContractID: req.ContractID,
		RateeID:    req.RateeID,
		Score:      req.Score,
		Comment:    req.Comment,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

type deleteRatingRequest struct {
	ContractID string `json:"contract_id" binding:"required"`
	RateeID    string `json:"ratee_id" binding:"required"`
	Confirmed  bool   `json:"confirmed"`
}

func (h *RatingHandler) Delete(c *gin.Context) {
	sess, ok := GetSessionFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("session not found in context"))
		return
	}

	var req deleteRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body", err))
		return
	}

	err := h.deleteUseCase.Execute(c.Request.Context(), sess, ratingUC.DeleteInput{
		ContractID: req.ContractID,
		RateeID:    req.RateeID,
		Confirmed:  req.Confirmed,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
