package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "kekambas-blog/internal/app"
	"kekambas-blog/internal/bootstrap"
	"kekambas-blog/internal/logger"
	"kekambas-blog/internal/platform/rabbitmq"
	"kekambas-blog/internal/repository"
	"kekambas-blog/internal/session"
	"kekambas-blog/internal/transport/http/handler"
	"kekambas-blog/internal/transport/http/middleware"
	"kekambas-blog/internal/transport/http/view"
)

// RouterDeps is everything the route table needs. Tests fill it with fakes;
// NewRouterFromApp fills it from the bootstrap context.
type RouterDeps struct {
	GinMode       string
	TemplatesGlob string
	Sessions      *session.Manager
	Auth          *appsvc.AuthService
	Posts         *appsvc.PostService
	Health        gin.HandlerFunc
	Log           *logger.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(deps.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.LoadHTMLGlob(deps.TemplatesGlob)

	router.Use(middleware.LoadSession(deps.Sessions, deps.Log))

	authHandler := handler.NewAuthHandler(deps.Auth)
	postHandler := handler.NewPostHandler(deps.Posts)
	accountHandler := handler.NewAccountHandler(deps.Auth)

	router.GET("/", postHandler.Index)
	router.GET("/products", accountHandler.Products)

	router.GET("/register", authHandler.ShowRegister)
	router.POST("/register", authHandler.Register)
	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)

	router.GET("/posts/:id", postHandler.Detail)

	loggedIn := router.Group("/", middleware.RequireLogin())
	loggedIn.GET("/createpost", postHandler.ShowCreate)
	loggedIn.POST("/createpost", postHandler.Create)
	loggedIn.GET("/my-account", accountHandler.MyAccount)
	loggedIn.GET("/my-posts", postHandler.MyPosts)
	loggedIn.GET("/posts/:id/update", postHandler.ShowUpdate)
	loggedIn.POST("/posts/:id/update", postHandler.Update)
	loggedIn.POST("/posts/:id/delete", postHandler.Delete)

	if deps.Health != nil {
		router.GET("/healthz", deps.Health)
	}

	router.NoRoute(view.NotFound)

	return router
}

// NewRouterFromApp wires the real repositories, services, and session store.
func NewRouterFromApp(app *bootstrap.App) *gin.Engine {
	userRepo := repository.NewUserRepository(app.MySQL)
	postRepo := repository.NewPostRepository(app.MySQL)

	mailQueue := rabbitmq.NewWelcomeMailPublisher(app.MQConn, app.Config.RabbitMQ.WelcomeMailQueue)

	sessionTTL := time.Duration(app.Config.Session.TTLMinute) * time.Minute
	sessionStore := session.NewRedisStore(app.Redis, sessionTTL)
	sessions := session.NewManager(sessionStore, app.Config.Session.Secret, app.Config.Session.CookieName, sessionTTL)

	authService := appsvc.NewAuthService(userRepo, mailQueue, app.Log)
	postService := appsvc.NewPostService(postRepo, app.Log)

	return NewRouter(RouterDeps{
		GinMode:       app.Config.App.GinMode,
		TemplatesGlob: "web/templates/*.html",
		Sessions:      sessions,
		Auth:          authService,
		Posts:         postService,
		Health:        handler.NewHealthHandler(app).Check,
		Log:           app.Log,
	})
}
