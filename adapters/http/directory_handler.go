package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	directoryUC "github.com/redoficios2025-Inicial/redoficios-gateway/internal/application/usecase/directory"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/apperror"
)

type DirectoryHandler struct {
	listUseCase *directoryUC.ListWorkersUseCase
}

func NewDirectoryHandler(listUC *directoryUC.ListWorkersUseCase) *DirectoryHandler {
	return &DirectoryHandler{listUseCase: listUC}
}

// ListWorkers answers one page of the worker directory. An out-of-range
// page is clamped, never an error.
func (h *DirectoryHandler) ListWorkers(c *gin.Context) {
	sess, ok := GetSessionFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("session not found in context"))
		return
	}

	page := 1
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.Error(apperror.NewInvalidInput("'page' must be a number", err))
			return
		}
		page = n
	}

	out, err := h.listUseCase.Execute(c.Request.Context(), sess, directoryUC.ListWorkersInput{
		Query: c.Query("q"),
		Page:  page,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}
