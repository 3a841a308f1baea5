package view

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kekambas-blog/internal/transport/http/middleware"
)

// Render draws a page template with the session context (identity, pending
// flashes) merged in. Template escaping is html/template's default, which
// is what keeps user content injection-safe.
func Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if sess := middleware.CurrentSession(c); sess != nil {
		data["Flashes"] = sess.PopFlashes()
		data["LoggedIn"] = sess.LoggedIn()
		data["CurrentUsername"] = sess.Username()
	}

	c.HTML(status, name, data)
}

// NotFound renders the standard 404 page.
func NotFound(c *gin.Context) {
	Render(c, http.StatusNotFound, "error.html", gin.H{
		"Title":   "Not Found",
		"Message": "The page you are looking for does not exist.",
	})
}

// ServerError renders the generic failure page for unhandled faults.
func ServerError(c *gin.Context) {
	Render(c, http.StatusInternalServerError, "error.html", gin.H{
		"Title":   "Something Went Wrong",
		"Message": "An unexpected error occurred. Please try again later.",
	})
}
