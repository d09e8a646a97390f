package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

func ParamID(c *gin.Context, name string) (int64, bool) {
	v := c.Param(name)
	if v == "" {
		RespondError(c, name+" is required", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, name+" is invalid", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// ParseDate parses a YYYY-MM-DD value.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// formatDatePtr renders an optional date column for JSON output.
func formatDatePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}
