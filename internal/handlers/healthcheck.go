package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akvideo/technikliste-backend/internal/latex"
)

type HealthHandler struct {
	compiler latex.Compiler
}

func NewHealthHandler(compiler latex.Compiler) *HealthHandler {
	return &HealthHandler{compiler: compiler}
}

func (hh *HealthHandler) HealthCheck(c *gin.Context) {
	latexStatus := "ready"
	if err := hh.compiler.AssertReady(c.Request.Context()); err != nil {
		latexStatus = err.Error()
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "latex": latexStatus})
}
