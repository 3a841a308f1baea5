package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kekambas-blog/internal/app"
	"kekambas-blog/internal/transport/http/middleware"
	"kekambas-blog/internal/transport/http/view"
)

type AccountHandler struct {
	authService *app.AuthService
}

func NewAccountHandler(authService *app.AuthService) *AccountHandler {
	return &AccountHandler{authService: authService}
}

func (h *AccountHandler) MyAccount(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	user, err := h.authService.GetUserByID(sess.UserID())
	if err != nil || user == nil {
		view.ServerError(c)
		return
	}

	view.Render(c, http.StatusOK, "my_account.html", gin.H{
		"Title": "My Account",
		"User":  user,
	})
}

// Products serves the static demo list; nothing is persisted behind it.
func (h *AccountHandler) Products(c *gin.Context) {
	view.Render(c, http.StatusOK, "products.html", gin.H{
		"Title":    "Products",
		"Products": []string{"apple", "orange", "banana", "peach"},
	})
}
