package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kekambas-blog/internal/app"
	"kekambas-blog/internal/transport/http/middleware"
	"kekambas-blog/internal/transport/http/view"
)

type PostHandler struct {
	postService *app.PostService
}

type PostForm struct {
	Title   string `form:"title" binding:"required,max=128"`
	Content string `form:"content" binding:"required"`
}

func NewPostHandler(postService *app.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Index(c *gin.Context) {
	posts, err := h.postService.ListAll()
	if err != nil {
		view.ServerError(c)
		return
	}
	view.Render(c, http.StatusOK, "index.html", gin.H{
		"Title": "Kekambas Blog",
		"Posts": posts,
	})
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	view.Render(c, http.StatusOK, "createpost.html", gin.H{
		"Title": "Create Post",
		"Post":  gin.H{"Title": "", "Content": ""},
	})
}

func (h *PostHandler) Create(c *gin.Context) {
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		view.Render(c, http.StatusOK, "createpost.html", gin.H{
			"Title":  "Create Post",
			"Errors": formErrors(err),
			"Post":   gin.H{"Title": form.Title, "Content": form.Content},
		})
		return
	}

	sess := middleware.CurrentSession(c)

	post, err := h.postService.Create(app.CreatePostInput{
		UserID:  sess.UserID(),
		Title:   form.Title,
		Content: form.Content,
	})
	if err != nil {
		view.ServerError(c)
		return
	}

	sess.Flash("primary", fmt.Sprintf("The post %s has been created.", post.Title))
	c.Redirect(http.StatusFound, "/")
}

func (h *PostHandler) Detail(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		view.NotFound(c)
		return
	}

	post, err := h.postService.Get(id)
	if err != nil {
		if errors.Is(err, app.ErrPostNotFound) {
			view.NotFound(c)
			return
		}
		view.ServerError(c)
		return
	}

	view.Render(c, http.StatusOK, "post_detail.html", gin.H{
		"Title": post.Title,
		"Post":  post,
	})
}

func (h *PostHandler) ShowUpdate(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		view.NotFound(c)
		return
	}

	sess := middleware.CurrentSession(c)

	post, err := h.postService.Get(id)
	if err != nil {
		if errors.Is(err, app.ErrPostNotFound) {
			view.NotFound(c)
			return
		}
		view.ServerError(c)
		return
	}

	if post.UserID != sess.UserID() {
		sess.Flash("danger", "That is not your post. You may only edit posts you have created.")
		c.Redirect(http.StatusFound, "/my-posts")
		return
	}

	view.Render(c, http.StatusOK, "post_update.html", gin.H{
		"Title": "Edit Post",
		"Post":  post,
	})
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		view.NotFound(c)
		return
	}

	sess := middleware.CurrentSession(c)

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		post, getErr := h.postService.Get(id)
		if getErr != nil {
			view.NotFound(c)
			return
		}
		if post.UserID != sess.UserID() {
			sess.Flash("danger", "That is not your post. You may only edit posts you have created.")
			c.Redirect(http.StatusFound, "/my-posts")
			return
		}
		view.Render(c, http.StatusOK, "post_update.html", gin.H{
			"Title":  "Edit Post",
			"Errors": formErrors(err),
			"Post":   post,
		})
		return
	}

	post, err := h.postService.Update(app.UpdatePostInput{
		PostID:  id,
		UserID:  sess.UserID(),
		Title:   form.Title,
		Content: form.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrPostNotFound):
			view.NotFound(c)
		case errors.Is(err, app.ErrNotPostAuthor):
			sess.Flash("danger", "That is not your post. You may only edit posts you have created.")
			c.Redirect(http.StatusFound, "/my-posts")
		default:
			view.ServerError(c)
		}
		return
	}

	sess.Flash("success", fmt.Sprintf("%s has been saved", post.Title))
	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		view.NotFound(c)
		return
	}

	sess := middleware.CurrentSession(c)

	post, err := h.postService.Delete(id, sess.UserID())
	if err != nil {
		switch {
		case errors.Is(err, app.ErrPostNotFound):
			view.NotFound(c)
		case errors.Is(err, app.ErrNotPostAuthor):
			sess.Flash("danger", "You can only delete your own posts")
			c.Redirect(http.StatusFound, "/my-posts")
		default:
			view.ServerError(c)
		}
		return
	}

	sess.Flash("success", fmt.Sprintf("%s has been deleted", post.Title))
	c.Redirect(http.StatusFound, "/my-posts")
}

func (h *PostHandler) MyPosts(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	posts, err := h.postService.ListByAuthor(sess.UserID())
	if err != nil {
		view.ServerError(c)
		return
	}

	view.Render(c, http.StatusOK, "my_posts.html", gin.H{
		"Title": "My Posts",
		"Posts": posts,
	})
}

func parsePostID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
