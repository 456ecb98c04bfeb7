package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

const fallbackShell = `<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Antrian Klinik</title>
<link rel="icon" href="/favicon.ico">
</head>
<body>
<div id="root"></div>
<script type="module" src="/assets/index.js"></script>
</body>
</html>
`

// PageHandler serves the single-page UI shell for the landing and role pages.
type PageHandler struct {
	indexPath string
}

// NewPageHandler serves staticDir/index.html, or a built-in shell when it is missing.
func NewPageHandler(staticDir string) *PageHandler {
	return &PageHandler{indexPath: filepath.Join(staticDir, "index.html")}
}

// Shell renders the UI entry document.
func (h *PageHandler) Shell(c echo.Context) error {
	if _, err := os.Stat(h.indexPath); err == nil {
		return c.File(h.indexPath)
	}
	return c.HTML(http.StatusOK, fallbackShell)
}

// Health is a liveness probe.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
