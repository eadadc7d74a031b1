package helpers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxLimit = 100

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// ParseID parses a positive numeric path parameter.
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}

// ParsePagination reads the page and limit query parameters.
func ParsePagination(c *gin.Context) (page, limit int, err error) {
	page, err = StringToInt(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, fmt.Errorf("invalid page number")
	}
	limit, err = StringToInt(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > maxLimit {
		return 0, 0, fmt.Errorf("invalid limit")
	}
	return page, limit, nil
}
