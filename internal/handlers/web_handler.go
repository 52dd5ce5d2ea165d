package handlers

import (
	"html"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/middleware"
)

// WebHandler serves the two fixed browser pages the authorization gate
// redirects to. Real page rendering lives in the separate frontend; these
// exist so redirect targets always resolve.
type WebHandler struct{}

func NewWebHandler() *WebHandler {
	return &WebHandler{}
}

func (h *WebHandler) LoginPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(
		`<!doctype html><title>Sign in</title><h1>Sign in</h1>`+
			`<p>POST credentials to /api/auth/login.</p>`,
	))
}

// AppShell is the one authenticated page of the minimal browser surface.
// It renders the caller's resolved navigation as a plain link list.
func (h *WebHandler) AppShell(c *gin.Context) {
	var b strings.Builder
	b.WriteString(`<!doctype html><title>Appointments</title><nav><ul>`)
	for _, menu := range middleware.NavFrom(c) {
		b.WriteString(`<li><a href="` + html.EscapeString(menu.URL) + `">`)
		b.WriteString(html.EscapeString(menu.Name))
		b.WriteString(`</a></li>`)
	}
	b.WriteString(`</ul></nav>`)

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(b.String()))
}

func (h *WebHandler) DeniedPage(c *gin.Context) {
	c.Data(http.StatusForbidden, "text/html; charset=utf-8", []byte(
		`<!doctype html><title>Access denied</title><h1>Access denied</h1>`+
			`<p>Your account does not hold the required role.</p>`,
	))
}
