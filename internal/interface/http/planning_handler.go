package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/planning-backend/internal/application"
	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/pkg/response"
	"github.com/oksasatya/planning-backend/pkg/validation"
)

type PlanningHandler struct {
	Svc     *app.PlanningService
	Tracker *app.ChangeControl
	Search  *app.EventSearch
	Logger  *logrus.Logger
}

func NewPlanningHandler(svc *app.PlanningService, tracker *app.ChangeControl, search *app.EventSearch, logger *logrus.Logger) *PlanningHandler {
	return &PlanningHandler{Svc: svc, Tracker: tracker, Search: search, Logger: logger}
}

// startupRequest accepts {"userName": "..."} or a bare JSON string.
type startupRequest struct {
	UserName string `json:"userName"`
}

func (r *startupRequest) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		r.UserName = name
		return nil
	}
	type plain startupRequest
	return json.Unmarshal(b, (*plain)(r))
}

// Startup handles GET /startup. The user name comes from the body or the
// userName query parameter.
func (h *PlanningHandler) Startup(c *gin.Context) {
	var req startupRequest
	if err := readJSON(c, &req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.FirstMessage(err), nil)
		return
	}
	if req.UserName == "" {
		req.UserName = c.Query("userName")
	}
	bundle, err := h.Svc.Startup(c.Request.Context(), req.UserName)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, bundle)
}

func upsertMessage(kind entity.Kind, created bool) string {
	var noun string
	switch kind {
	case entity.KindEvent:
		noun = "Event"
	case entity.KindAlert:
		noun = "Alert"
	case entity.KindComment:
		noun = "Comment"
	case entity.KindUser:
		noun = "User"
	}
	if created {
		return noun + " Created !"
	}
	return noun + " Updated !"
}

// UpsertEvent handles POST /event.
func (h *PlanningHandler) UpsertEvent(c *gin.Context) {
	var req validation.EventInput
	if err := readJSON(c, &req); err != nil {
		rejectInvalid(c, err)
		return
	}
	if err := validation.ValidateEvent(&req); err != nil {
		rejectInvalid(c, err)
		return
	}
	created, err := h.Svc.UpsertEvent(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusCreated, upsertMessage(entity.KindEvent, created))
}

// UpsertAlert handles POST /alert.
func (h *PlanningHandler) UpsertAlert(c *gin.Context) {
	var req validation.AlertInput
	if err := readJSON(c, &req); err != nil {
		rejectInvalid(c, err)
		return
	}
	if err := validation.ValidateAlert(&req); err != nil {
		rejectInvalid(c, err)
		return
	}
	created, err := h.Svc.UpsertAlert(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusCreated, upsertMessage(entity.KindAlert, created))
}

// UpsertComment handles POST /comment.
func (h *PlanningHandler) UpsertComment(c *gin.Context) {
	var req validation.CommentInput
	if err := readJSON(c, &req); err != nil {
		rejectInvalid(c, err)
		return
	}
	if err := validation.ValidateComment(&req); err != nil {
		rejectInvalid(c, err)
		return
	}
	created, err := h.Svc.UpsertComment(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusCreated, upsertMessage(entity.KindComment, created))
}

type changeControlRequest struct {
	LastUpdate *validation.Time `json:"lastUpdate"`
}

// ChangeControl handles GET /changecontrol. lastUpdate comes from the body or
// the query string; absent means the client has never synced.
func (h *PlanningHandler) ChangeControl(c *gin.Context) {
	var req changeControlRequest
	if err := readJSON(c, &req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.FirstMessage(err), nil)
		return
	}
	var lastSeen time.Time
	switch {
	case req.LastUpdate != nil:
		lastSeen = req.LastUpdate.Time
	case c.Query("lastUpdate") != "":
		t, err := validation.ParseTime(c.Query("lastUpdate"))
		if err != nil {
			response.Error(c, http.StatusBadRequest, `"lastUpdate" must be a valid date`, nil)
			return
		}
		lastSeen = t
	}
	res, err := h.Tracker.Check(c.Request.Context(), lastSeen)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

type searchResponse struct {
	Events []entity.Event `json:"events"`
}

// SearchEvents handles GET /events/search?q=&size=.
func (h *PlanningHandler) SearchEvents(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	events, err := h.Search.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, searchResponse{Events: events})
}
