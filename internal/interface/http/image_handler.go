package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/planning-backend/internal/application"
	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/internal/interface/middleware"
	"github.com/oksasatya/planning-backend/pkg/response"
)

type ImageHandler struct {
	Svc    *app.ImageService
	Logger *logrus.Logger
}

func NewImageHandler(svc *app.ImageService, logger *logrus.Logger) *ImageHandler {
	return &ImageHandler{Svc: svc, Logger: logger}
}

type uploadImageRequest struct {
	Images []string `json:"images"`
}

type uploadImageResponse struct {
	Msg    string         `json:"msg"`
	Images []entity.Image `json:"images"`
}

// Upload handles POST /upload-image with base64 images in a JSON body.
func (h *ImageHandler) Upload(c *gin.Context) {
	var req uploadImageRequest
	if err := readJSON(c, &req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid image payload", err.Error())
		return
	}
	images, err := h.Svc.Upload(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req.Images)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, uploadImageResponse{Msg: "Images uploaded !", Images: images})
}
