package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// getHealth godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Accept */*
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func getHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// spaHandler serves files from dir, falling back to index.html so that
// client-side routes under the dashboard resolve.
func spaHandler(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rel := filepath.Clean("/" + strings.TrimPrefix(c.Request.URL.Path, "/"))
		candidate := filepath.Join(dir, rel)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			c.File(candidate)
			return
		}

		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.String(http.StatusNotFound, "404 page not found")
			return
		}
		c.File(index)
	}
}
