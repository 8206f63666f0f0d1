package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"inkwell-cms/models"
)

func articleID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, models.ValidationError("invalid article id")
	}
	return uint(id), nil
}
