package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"kalma/models"
	"kalma/store"

	"github.com/gorilla/mux"
	"github.com/umakantv/go-utils/errs"
	"go.uber.org/zap"
)

// CalendarHandler serves the date-keyed events document
type CalendarHandler struct {
	events *store.EventFile
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(events *store.EventFile) *CalendarHandler {
	return &CalendarHandler{events: events}
}

type calendarDay struct {
	Date    string
	Holiday string
	Events  []models.Event
}

type holiday struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type calendarData struct {
	Days     []calendarDay
	Holidays []holiday
}

// eventsResponse is the JSON shape of GET /api/events
type eventsResponse struct {
	Events   models.EventsDocument `json:"events"`
	Holidays []holiday             `json:"holidays"`
}

// Calendar handles GET /calendar - every date with events, oldest first
func (h *CalendarHandler) Calendar(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	doc, err := h.events.List(ctx)
	if err != nil {
		serverError(ctx, w, "Failed to read events", err)
		return
	}

	days := make([]calendarDay, 0, len(doc))
	for date, events := range doc {
		name, _ := models.HolidayFor(date)
		days = append(days, calendarDay{Date: date, Holiday: name, Events: events})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	render(ctx, w, r, "calendar", "Calendar", calendarData{Days: days, Holidays: holidayList()})
}

// AddEvent handles POST /add_event
func (h *CalendarHandler) AddEvent(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		logRequest(ctx, "error", "Invalid event form", zap.Error(err))
		http.Redirect(w, r, "/calendar", http.StatusFound)
		return
	}

	date := r.PostFormValue("event_date")
	err := h.events.Add(ctx, date, r.PostFormValue("event_title"), r.PostFormValue("event_description"))
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		logRequest(ctx, "info", "Event rejected", zap.String("reason", verr.Msg))
		redirectWithFlash(w, r, verr.Msg, "/calendar")
		return
	case err != nil:
		serverError(ctx, w, "Failed to add event", err)
		return
	}

	logRequest(ctx, "info", "Event added", zap.String("date", date))
	http.Redirect(w, r, "/calendar", http.StatusFound)
}

// DeleteEvent handles POST /delete_event/{date}/{index} - answers 204 whether or not anything matched
func (h *CalendarHandler) DeleteEvent(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	indexStr := vars["index"]

	// the router matches on the escaped path, so vars arrive escaped
	date, err := url.PathUnescape(vars["date"])
	if err != nil {
		logRequest(ctx, "error", "Invalid event date", zap.String("date", vars["date"]))
		writeJSON(w, http.StatusBadRequest, errs.NewValidationError("Invalid event date"))
		return
	}

	index, err := strconv.Atoi(indexStr)
	if err != nil {
		logRequest(ctx, "error", "Invalid event index", zap.String("index", indexStr))
		writeJSON(w, http.StatusBadRequest, errs.NewValidationError("Invalid event index"))
		return
	}

	removed, err := h.events.Delete(ctx, date, index)
	if err != nil {
		logRequest(ctx, "error", "Failed to delete event", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errs.NewInternalServerError("Failed to delete event"))
		return
	}

	logRequest(ctx, "info", "Delete event", zap.String("date", date), zap.Int("index", index), zap.Bool("removed", removed))
	w.WriteHeader(http.StatusNoContent)
}

// EventsAPI handles GET /api/events - the events document plus the holiday table
func (h *CalendarHandler) EventsAPI(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	doc, err := h.events.List(ctx)
	if err != nil {
		logRequest(ctx, "error", "Failed to read events", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errs.NewInternalServerError("Failed to read events"))
		return
	}
	writeJSON(w, http.StatusOK, eventsResponse{Events: doc, Holidays: holidayList()})
}

func holidayList() []holiday {
	out := make([]holiday, 0, len(models.Holidays))
	for date, name := range models.Holidays {
		out = append(out, holiday{Date: date, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
