package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"learning_platform/internal/models"
	"learning_platform/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or YYYY-MM-DD"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// ActivityPage is the body of GET /activity.
type ActivityPage struct {
	Count  int               `json:"count"`
	Events []models.Activity `json:"events"`
}

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List activity
// @Description  Mutation trail in ascending time. If 'to' is date-only it covers the whole day.
// @Tags         activity
// @Produce      json
// @Param        from  query     string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2025-08-01)
// @Param        to    query     string  false  "End of range, inclusive"  example(2025-08-31)
// @Param        type  query     string  false  "Activity type"  Enums(ACCOUNT_REGISTERED,ACCOUNT_UPDATED,ACCOUNT_DELETED,MODULE_CREATED,MODULE_UPDATED,MODULE_DELETED,EXERCISE_ADDED,EXERCISE_UPDATED,EXERCISE_REMOVED)
// @Success      200   {object}  ActivityPage
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /activity [get]
// @Security     BearerAuth
func (h *Handler) listActivity(c *gin.Context) {
	var (
		filter = service.ActivityFilter{Type: c.Query("type")}
		err    error
	)
	if qs := c.Query("from"); qs != "" {
		if filter.From, err = parseQueryTime(qs); err != nil {
			h.badQuery(c, errFromInvalid, err)
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		if filter.To, err = parseQueryTime(qs); err != nil {
			h.badQuery(c, errToInvalid, err)
			return
		}
		if isDateOnly(qs) {
			filter.To = filter.To.Add(24*time.Hour - time.Nanosecond)
		}
	}

	events, err := h.services.ActivityLog.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err, "activity_list_failed", "from", filter.From, "to", filter.To, "type", filter.Type)
		return
	}
	c.JSON(http.StatusOK, ActivityPage{Count: len(events), Events: events})
}

func (h *Handler) badQuery(c *gin.Context, msg string, err error) {
	h.log.Infow("activity_bad_query", "err", err)
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Message: msg, Error: "InvalidQuery"})
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format %q", s)
}
