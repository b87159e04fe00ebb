package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	profileUC "github.com/redoficios2025-Inicial/redoficios-gateway/internal/application/usecase/profile"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/profile"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/apperror"
)

type ProfileHandler struct {
	getUseCase    *profileUC.GetProfileUseCase
	updateUseCase *profileUC.UpdateProfileUseCase
}

func NewProfileHandler(getUC *profileUC.GetProfileUseCase, updateUC *profileUC.UpdateProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		getUseCase:    getUC,
		updateUseCase: updateUC,
	}
}

func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	h.getProfile(c, "")
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	h.getProfile(c, c.Param("id"))
}

func (h *ProfileHandler) getProfile(c *gin.Context, profileID string) {
	sess, ok := GetSessionFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("session not found in context"))
		return
	}

	p, err := h.getUseCase.Execute(c.Request.Context(), sess, profileID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProfile accepts a multipart form so text fields and the avatar and
// resume files travel in one request, the same shape the backend expects.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	sess, ok := GetSessionFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("session not found in context"))
		return
	}

	upd := profile.Update{
		Name:       c.PostForm("name"),
		Email:      c.PostForm("email"),
		Locality:   c.PostForm("locality"),
		Phone:      c.PostForm("phone"),
		Profession: c.PostForm("profession"),
		Role:       profile.Role(c.PostForm("role")),
	}

	if v := c.PostForm("experience"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.Error(apperror.NewInvalidInput("'experience' must be a number", err))
			return
		}
		upd.Experience = n
	}
	if v := c.PostForm("price"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.Error(apperror.NewInvalidInput("'price' must be a number", err))
			return
		}
		upd.Price = n
	}
	if v := c.PostForm("tags"); v != "" {
		if err := json.Unmarshal([]byte(v), &upd.Tags); err != nil {
			c.Error(apperror.NewInvalidInput("'tags' must be a JSON array of strings", err))
			return
		}
	}

	if fh, err := c.FormFile("avatar"); err == nil {
		f, err := fh.Open()
		if err != nil {
			c.Error(apperror.NewInternal("failed to open avatar file", err))
			return
		}
		defer f.Close()
		upd.Avatar = f
		upd.AvatarFilename = fh.Filename
	}
	if fh, err := c.FormFile("resume"); err == nil {
		f, err := fh.Open()
		if err != nil {
			c.Error(apperror.NewInternal("failed to open resume file", err))
			return
		}
		defer f.Close()
		upd.Resume = f
		upd.ResumeFilename = fh.Filename
	}

	p, err := h.updateUseCase.Execute(c.Request.Context(), sess, upd)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile": p,
		"session": ToSessionDTO(sess),
	})
}
