package handler

import (
	"net/http"

	"football-bot/internal/calendar"
	"football-bot/internal/model"
	"football-bot/internal/roster"
	"football-bot/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxListLimit = 50

// EventHandler 唯讀 API，所有修改都經由 bot 指令
type EventHandler struct {
	service      service.EventService
	feed         *calendar.Feed
	capacity     int
	defaultLimit int
}

func NewEventHandler(service service.EventService, feed *calendar.Feed, capacity, defaultLimit int) *EventHandler {
	return &EventHandler{service: service, feed: feed, capacity: capacity, defaultLimit: defaultLimit}
}

func (h *EventHandler) RegisterRoutes(r gin.IRouter) {
	router := r.Group("/api/v1")
	{
		router.GET("events", h.List)
		router.GET("events/:uuid", h.GetByEventID)
	}
	r.GET("calendar.ics", h.Calendar)
}

type ListEventsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

type EventURI struct {
	UUID string `uri:"uuid" binding:"required,uuid"`
}

// RosterResponse 活動、依狀態分組的報名與 bot 顯示的名單文字
type RosterResponse struct {
	Event    *model.Event           `json:"event"`
	Going    []*model.Participation `json:"going"`
	NotGoing []*model.Participation `json:"not_going"`
	Guests   int                    `json:"guests"`
	Capacity int                    `json:"capacity"`
	Text     string                 `json:"text"`
}

func (h *EventHandler) limit(requested int) int {
	if requested <= 0 {
		requested = h.defaultLimit
	}
	if requested > maxListLimit {
		requested = maxListLimit
	}
	return requested
}

func (h *EventHandler) List(c *gin.Context) {
	var query ListEventsQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}
	events, err := h.service.ListUpcoming(c, h.limit(query.Limit))
	if err != nil {
		handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetByEventID(c *gin.Context) {
	var uri EventURI
	if err := BindUri(c, &uri); err != nil {
		return
	}
	eventID, err := uuid.Parse(uri.UUID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}

	r, err := h.service.Roster(c, eventID)
	if err != nil {
		handleError(c, err, "GetByEventID")
		return
	}

	summary := roster.Summarize(r.Participations)
	c.JSON(http.StatusOK, RosterResponse{
		Event:    r.Event,
		Going:    summary.Going,
		NotGoing: summary.NotGoing,
		Guests:   summary.Guests,
		Capacity: h.capacity,
		Text:     roster.RenderRoster(r, h.capacity),
	})
}

func (h *EventHandler) Calendar(c *gin.Context) {
	events, err := h.service.ListUpcoming(c, h.limit(0))
	if err != nil {
		handleError(c, err, "Calendar")
		return
	}
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(h.feed.Serialize(events)))
}
