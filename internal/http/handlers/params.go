package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/publisher-backend/internal/http/response"
	"github.com/yungbote/publisher-backend/internal/platform/apierr"
)

const dateOnly = "2006-01-02"

// respondServiceError maps *apierr.Error to its status and code. Anything
// else is recorded on the context and answered with a bare 500.
func respondServiceError(c *gin.Context, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	_ = c.Error(err)
	response.RespondError(c, http.StatusInternalServerError, "internal_error", errors.New("internal server error"))
}

func respondBadRequest(c *gin.Context, code string, err error) {
	respondServiceError(c, apierr.BadRequest(code, "%v", err))
}

// pathID reads :id as an integer, answering 400 when it does not parse.
// Zero and negative ids name no row and are passed on as 0 so the service
// answers NotFound.
func pathID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondBadRequest(c, "invalid_id", fmt.Errorf("id must be an integer, got %q", raw))
		return 0, false
	}
	if id <= 0 {
		return 0, true
	}
	return uint(id), true
}

// parseDate accepts RFC 3339 timestamps or bare YYYY-MM-DD dates (UTC midnight).
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(dateOnly, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want RFC 3339 or YYYY-MM-DD", raw)
	}
	return t, nil
}
