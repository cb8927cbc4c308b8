package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// SPAFallback handles every unmatched route. Files under publicDir win,
// then files of the built app in distDir; any other GET gets the app's
// index.html so the client router can take over. Unknown /api paths answer
// with a JSON 404.
func SPAFallback(publicDir, distDir string) gin.HandlerFunc {
	index := filepath.Join(distDir, "index.html")

	return func(c *gin.Context) {
		urlPath := c.Request.URL.Path
		if urlPath == "/api" || strings.HasPrefix(urlPath, "/api/") {
			respondError(c, http.StatusNotFound, "Not found")
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			respondError(c, http.StatusNotFound, "Not found")
			return
		}

		for _, base := range []string{publicDir, distDir} {
			if file, ok := staticFile(base, urlPath); ok {
				c.File(file)
				return
			}
		}
		c.File(index)
	}
}

func staticFile(base, urlPath string) (string, bool) {
	if base == "" {
		return "", false
	}
	clean := path.Clean("/" + urlPath)
	if clean == "/" {
		return "", false
	}

	full := filepath.Join(base, filepath.FromSlash(clean))
	info, err := os.Stat(full)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return full, true
}
