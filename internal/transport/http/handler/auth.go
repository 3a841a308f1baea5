package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"kekambas-blog/internal/app"
	"kekambas-blog/internal/transport/http/middleware"
	"kekambas-blog/internal/transport/http/view"
)

type AuthHandler struct {
	authService *app.AuthService
}

type RegisterForm struct {
	Username string `form:"username" binding:"required,min=3,max=64"`
	Email    string `form:"email" binding:"required,email,max=128"`
	Password string `form:"password" binding:"required,min=8,max=128"`
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	view.Render(c, http.StatusOK, "register.html", gin.H{
		"Title":    "Register",
		"Username": "",
		"Email":    "",
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		view.Render(c, http.StatusOK, "register.html", gin.H{
			"Title":    "Register",
			"Errors":   formErrors(err),
			"Username": form.Username,
			"Email":    form.Email,
		})
		return
	}

	sess := middleware.CurrentSession(c)

	user, err := h.authService.Register(c.Request.Context(), app.RegisterInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUsernameExists):
			sess.Flash("danger", fmt.Sprintf("The username %s is already registered. Please try again.", form.Username))
			c.Redirect(http.StatusFound, "/register")
		case errors.Is(err, app.ErrInvalidInput):
			view.Render(c, http.StatusOK, "register.html", gin.H{
				"Title":    "Register",
				"Errors":   []string{"Invalid form submission."},
				"Username": form.Username,
				"Email":    form.Email,
			})
		default:
			view.ServerError(c)
		}
		return
	}

	// Registration does not log the user in; they sign in themselves.
	sess.Flash("success", fmt.Sprintf("Thank you %s, you have succesfully registered!", user.Username))
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	view.Render(c, http.StatusOK, "login.html", gin.H{
		"Title":    "Log In",
		"Username": "",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		view.Render(c, http.StatusOK, "login.html", gin.H{
			"Title":    "Log In",
			"Errors":   formErrors(err),
			"Username": form.Username,
		})
		return
	}

	sess := middleware.CurrentSession(c)

	user, err := h.authService.Login(app.LoginInput{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidCredential), errors.Is(err, app.ErrInvalidInput):
			sess.Flash("danger", "Your username or password is incorrect")
			c.Redirect(http.StatusFound, "/login")
		default:
			view.ServerError(c)
		}
		return
	}

	sess.SetIdentity(user.ID, user.Username)
	sess.Flash("success", fmt.Sprintf("Welcome %s. You have succesfully logged in.", user.Username))
	c.Redirect(http.StatusFound, "/")
}

// Logout clears the identity binding unconditionally; calling it while
// anonymous is a no-op redirect.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess := middleware.CurrentSession(c); sess != nil {
		sess.ClearIdentity()
	}
	c.Redirect(http.StatusFound, "/")
}
