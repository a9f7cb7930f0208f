package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daliphone/money-marketing-room/internal/models"
	"github.com/daliphone/money-marketing-room/internal/schedule"
	"github.com/daliphone/money-marketing-room/internal/storage"
)

// respondError maps the error taxonomy onto HTTP. extra is merged into the body.
func respondError(c *gin.Context, err error, extra gin.H) {
	body := gin.H{}
	for k, v := range extra {
		body[k] = v
	}

	var validationErr *schedule.ValidationError
	var schemaErr *schedule.SchemaError
	var storeErr *storage.StoreError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusUnprocessableEntity
		body["error"] = validationErr.Reason
		body["field"] = validationErr.Field
	case errors.As(err, &schemaErr):
		slog.Error("schedule sheet schema", "missing", schemaErr.Missing, "request_id", c.GetString("request_id"))
		body["error"] = schemaErr.Error()
		body["missing"] = schemaErr.Missing
	case errors.As(err, &storeErr):
		slog.Error("backing store", "op", storeErr.Op, "sheet", storeErr.Sheet, "error", storeErr.Err, "request_id", c.GetString("request_id"))
		status = http.StatusBadGateway
		body["error"] = "Schedule sheet unavailable, please retry: " + storeErr.Err.Error()
	default:
		slog.Error("unexpected error", "error", err, "request_id", c.GetString("request_id"))
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}

// dateParam reads an optional YYYY-MM-DD query parameter.
func dateParam(c *gin.Context, key string, def models.Date) (models.Date, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	d := models.ParseDate(raw)
	if !d.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + key + " date, expected YYYY-MM-DD"})
		return models.InvalidDate, false
	}
	return d, true
}
