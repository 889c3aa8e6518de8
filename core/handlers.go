package core

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Handlers interface {
	GetCalendar(gctx *gin.Context)
	GetCalendarExport(gctx *gin.Context)
	GetEvents(gctx *gin.Context)
	PostEvents(gctx *gin.Context)
	RequestDeletion(gctx *gin.Context)
	DeleteEvents(gctx *gin.Context)
}

type handlers struct {
	repository Repository
	deletions  *DeletionRequests
	now        func() time.Time
}

func NewHandlers(repository Repository) Handlers {
	return &handlers{
		repository: repository,
		deletions:  NewDeletionRequests(),
		now:        time.Now,
	}
}

// anchorFor resolves the "week" query parameter (weeks relative to the
// current one, default 0) into a Monday-midnight anchor. A value that does
// not parse falls back to the current week.
func (h *handlers) anchorFor(gctx *gin.Context) (time.Time, int) {
	offset := 0
	if raw := gctx.Query("week"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			offset = n
		}
	}

	return AnchorFor(h.now()).AddDate(0, 0, 7*offset), offset
}

type calendarPage struct {
	Week       WeekView
	Hours      []string
	Offset     int
	PrevOffset int
	NextOffset int
}

// GetCalendar renders the weekly grid as HTML. Navigation tears the page
// down and rebuilds it: prev/next are plain links with the offset shifted
// by one week.
func (h *handlers) GetCalendar(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	anchor, offset := h.anchorFor(gctx)

	events, err := h.repository.ListWeek(ctx, anchor)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("loading week failed")
		gctx.AbortWithStatusJSON(http.StatusInternalServerError, NewError("loading week failed", err))

		return
	}

	gctx.HTML(http.StatusOK, "calendar.gohtml", calendarPage{
		Week:       BuildWeekView(anchor, h.now(), events),
		Hours:      HourLabels(),
		Offset:     offset,
		PrevOffset: offset - 1,
		NextOffset: offset + 1,
	})
}

// GetCalendarExport serves the visible week as an iCalendar feed.
func (h *handlers) GetCalendarExport(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	anchor, _ := h.anchorFor(gctx)

	events, err := h.repository.ListWeek(ctx, anchor)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("loading week failed")
		gctx.AbortWithStatusJSON(http.StatusInternalServerError, NewError("loading week failed", err))

		return
	}

	feed, err := ExportWeek(anchor, events)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("exporting week failed")
		gctx.AbortWithStatusJSON(http.StatusInternalServerError, NewError("exporting week failed", err))

		return
	}

	gctx.Header("Content-Disposition", `attachment; filename="week.ics"`)
	gctx.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// GetEvents returns the rendered week view as JSON. With all=true it
// returns every stored record instead, unscoped by any week window.
func (h *handlers) GetEvents(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	if all, _ := strconv.ParseBool(gctx.Query("all")); all {
		events, err := h.repository.ListEvents(ctx)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("loading events failed")
			gctx.AbortWithStatusJSON(http.StatusInternalServerError, NewError("loading events failed", err))

			return
		}

		gctx.JSON(http.StatusOK, events)

		return
	}

	anchor, _ := h.anchorFor(gctx)

	events, err := h.repository.ListWeek(ctx, anchor)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("loading week failed")
		gctx.AbortWithStatusJSON(http.StatusInternalServerError, NewError("loading week failed", err))

		return
	}

	gctx.JSON(http.StatusOK, BuildWeekView(anchor, h.now(), events))
}

type createdResponse struct {
	Event  *Event `json:"event"`
	Key    string `json:"key"`
	Block  Block  `json:"block"`
	InWeek bool   `json:"in_week"`
}

// PostEvents persists a submitted booking. The response carries the storage
// key and block geometry so the caller can place the event immediately; the
// geometry is returned even when the day lies outside the current week, and
// in_week tells the caller whether the grid would actually show it.
func (h *handlers) PostEvents(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var event Event

	err := gctx.ShouldBindJSON(&event)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to bind JSON")
		gctx.AbortWithStatusJSON(http.StatusInternalServerError, NewError("failed to bind JSON", err))

		return
	}

	err = ValidateEvent(event)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("event validation failed")
		gctx.AbortWithStatusJSON(http.StatusBadRequest, NewError("event validation failed", err))

		return
	}

	if event.Type == "" {
		event.Type = DefaultEventType
	}

	saved, err := h.repository.SaveEvent(ctx, &event)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("saving event failed")
		gctx.AbortWithStatusJSON(http.StatusBadRequest, NewError("saving event failed", err))

		return
	}

	// Validation guarantees both clocks parse.
	block, _ := BlockFor(saved.Start, saved.End, DayHeaderHeight)

	gctx.JSON(http.StatusCreated, createdResponse{
		Event:  saved,
		Key:    saved.Key(),
		Block:  block,
		InWeek: InWeek(AnchorFor(h.now()), saved.Day.Time),
	})
}

type deletionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RequestDeletion is the first phase of a delete: it checks the record
// exists and hands out a single-use confirmation token. Nothing is removed
// yet; an unconfirmed request simply expires.
func (h *handlers) RequestDeletion(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	key := gctx.Param("key")

	day, start, err := ParseKey(key)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("invalid event key")
		gctx.AbortWithStatusJSON(http.StatusBadRequest, NewError("invalid event key", err))

		return
	}

	_, err = h.repository.GetEvent(ctx, day, start)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			log.Ctx(ctx).Info().Str("key", key).Msg("event not found")
			gctx.AbortWithStatusJSON(http.StatusNotFound, NewError("event not found", err))

			return
		}

		log.Ctx(ctx).Error().Err(err).Msg("loading event failed")
		gctx.AbortWithStatusJSON(http.StatusInternalServerError, NewError("loading event failed", err))

		return
	}

	token, expiresAt := h.deletions.Issue(key)

	gctx.JSON(http.StatusCreated, deletionResponse{Token: token, ExpiresAt: expiresAt})
}

// DeleteEvents is the second phase: only a request carrying a live token
// for the same key deletes the record. Anything else leaves the stored set
// unchanged, which is also how declining the confirmation behaves.
func (h *handlers) DeleteEvents(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	key := gctx.Param("key")

	day, start, err := ParseKey(key)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("invalid event key")
		gctx.AbortWithStatusJSON(http.StatusBadRequest, NewError("invalid event key", err))

		return
	}

	err = h.deletions.Confirm(key, gctx.Query("token"))
	if err != nil {
		log.Ctx(ctx).Info().Str("key", key).Msg("deletion not confirmed")
		gctx.AbortWithStatusJSON(http.StatusConflict, NewError("deletion not confirmed", err))

		return
	}

	err = h.repository.DeleteEvent(ctx, day, start)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("deleting event failed")
		gctx.AbortWithStatusJSON(http.StatusInternalServerError, NewError("deleting event failed", err))

		return
	}

	gctx.Status(http.StatusNoContent)
}
