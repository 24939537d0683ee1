package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// parseUintParam reads a positive integer path parameter.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

// queryValue returns the first non-empty value among the given names,
// so a parameter can keep an older alias.
func queryValue(c *gin.Context, names ...string) string {
	for _, name := range names {
		if raw := strings.TrimSpace(c.Query(name)); raw != "" {
			return raw
		}
	}
	return ""
}

// queryInt reads an integer query value, zero when absent or malformed.
func queryInt(c *gin.Context, names ...string) int {
	raw := queryValue(c, names...)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}

// queryUint reads an unsigned integer query value.
func queryUint(c *gin.Context, names ...string) uint {
	value := queryInt(c, names...)
	if value <= 0 {
		return 0
	}
	return uint(value)
}

// queryBoolPtr reads a tri-state boolean query value. Absent or
// unparsable means no constraint.
func queryBoolPtr(c *gin.Context, names ...string) *bool {
	raw := strings.ToLower(queryValue(c, names...))
	switch raw {
	case "true", "1":
		value := true
		return &value
	case "false", "0":
		value := false
		return &value
	default:
		return nil
	}
}

// queryUintList reads a comma-separated id list, dropping junk entries.
func queryUintList(c *gin.Context, names ...string) []uint {
	raw := queryValue(c, names...)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil || value == 0 {
			continue
		}
		ids = append(ids, uint(value))
	}
	return ids
}

// queryTime reads an RFC3339 or date-only query value.
func queryTime(c *gin.Context, names ...string) *time.Time {
	raw := queryValue(c, names...)
	if raw == "" {
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return &parsed
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return &parsed
	}
	return nil
}
