package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lara783/lensandlaunch.com-sub001/internal/http/dto"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
