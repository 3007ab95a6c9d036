package handlers

import (
    "net/http"
    "time"

    "github.com/gin-gonic/gin"

    "github.com/feichai0017/resume-parser/pkg/converters"
)

type HealthHandler struct {
    now func() time.Time
}

func NewHealthHandler() *HealthHandler {
    return &HealthHandler{now: time.Now}
}

func (h *HealthHandler) Check(c *gin.Context) {
    c.JSON(http.StatusOK, gin.H{
        "status":    "ok",
        "timestamp": converters.Timestamp(h.now()),
    })
}
