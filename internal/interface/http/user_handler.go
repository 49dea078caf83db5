package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/planning-backend/internal/application"
	"github.com/oksasatya/planning-backend/pkg/response"
	"github.com/oksasatya/planning-backend/pkg/validation"
)

type UserHandler struct {
	Svc    *app.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *app.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// Signup handles POST /inscription.
func (h *UserHandler) Signup(c *gin.Context) {
	var req validation.SignupInput
	if err := readJSON(c, &req); err != nil {
		rejectInvalid(c, err)
		return
	}
	if err := validation.ValidateSignup(&req); err != nil {
		rejectInvalid(c, err)
		return
	}
	if _, err := h.Svc.Signup(c.Request.Context(), &req); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusCreated, "User Created !")
}

// Login handles POST /connexion. Missing fields are reported before schema
// violations.
func (h *UserHandler) Login(c *gin.Context) {
	var req validation.LoginInput
	if err := readJSON(c, &req); err != nil {
		rejectInvalid(c, err)
		return
	}
	if err := validation.CheckLoginPresence(&req); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if err := validation.ValidateLogin(&req); err != nil {
		rejectInvalid(c, err)
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), *req.UserName, *req.Password)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
