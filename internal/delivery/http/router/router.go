// Package router binds HTTP routes to their handlers and guards.
package router

import (
	"chirp/config"
	"chirp/internal/delivery/http/middleware"
	"chirp/internal/delivery/http/router/handler"
	"chirp/internal/delivery/ws"
	"chirp/internal/domain/entity"
	"chirp/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Router registers every route with its explicit guard chain. Each route
// states whether it is public, what token kind it expects and which role or
// ownership it requires; nothing is inferred.
type Router struct {
	cfg     *config.Config
	auth    *middleware.AuthMiddleware
	authH   *handler.AuthHandler
	userH   *handler.UserHandler
	postH   *handler.PostHandler
	comH    *handler.CommentHandler
	chatH   *handler.ChatHandler
	gateway *ws.Gateway
	postUC  usecase.PostUsecase
	comUC   usecase.CommentUsecase
}

// New is the constructor for Router.
func New(
	cfg *config.Config,
	auth *middleware.AuthMiddleware,
	authH *handler.AuthHandler,
	userH *handler.UserHandler,
	postH *handler.PostHandler,
	comH *handler.CommentHandler,
	chatH *handler.ChatHandler,
	gateway *ws.Gateway,
	postUC usecase.PostUsecase,
	comUC usecase.CommentUsecase,
) *Router {
	return &Router{
		cfg:     cfg,
		auth:    auth,
		authH:   authH,
		userH:   userH,
		postH:   postH,
		comH:    comH,
		chatH:   chatH,
		gateway: gateway,
		postUC:  postUC,
		comUC:   comUC,
	}
}

// Register wires all routes onto the echo instance.
func (r *Router) Register(e *echo.Echo) {
	access := func(opts middleware.RouteOptions) echo.MiddlewareFunc {
		return r.auth.Bearer(entity.TokenKindAccess, opts)
	}
	public := access(middleware.RouteOptions{Public: true})
	signedIn := access(middleware.RouteOptions{})
	adminOnly := access(middleware.RouteOptions{Role: entity.RoleAdmin})

	e.GET("/health", handler.HealthCheck)

	// Committed post images are served straight from disk.
	e.Static(entity.PostImagePublicPrefix, r.cfg.Storage.PostImageDir)

	auth := e.Group("/auth")
	auth.POST("/login", r.authH.Login, r.auth.Basic())
	auth.POST("/token", r.authH.Rotate, r.auth.Bearer(entity.TokenKindRefresh, middleware.RouteOptions{}))

	users := e.Group("/users")
	users.POST("", r.userH.Register, public)
	users.GET("", r.userH.List, adminOnly)
	users.POST("/follow/:id", r.userH.Follow, signedIn)
	users.GET("/follow/me", r.userH.Followers, signedIn)
	users.PATCH("/follow/:id/confirm", r.userH.ConfirmFollow, signedIn)
	users.DELETE("/follow/:id", r.userH.DeleteFollow, signedIn)

	posts := e.Group("/posts")
	posts.GET("", r.postH.List, public)
	posts.GET("/:id", r.postH.Get, public)
	posts.POST("", r.postH.Create, signedIn)
	posts.PATCH("/:id", r.postH.Update, signedIn, r.auth.OwnerOrAdmin("id", r.postUC.IsPostMine))
	posts.DELETE("/:id", r.postH.Delete, adminOnly)

	comments := e.Group("/posts/:postId/comments")
	comments.GET("", r.comH.List, public)
	comments.GET("/:commentId", r.comH.Get, public)
	comments.POST("", r.comH.Create, signedIn)
	comments.PATCH("/:commentId", r.comH.Update, signedIn, r.auth.Owner("commentId", r.comUC.IsCommentMine))
	comments.DELETE("/:commentId", r.comH.Delete, signedIn, r.auth.OwnerOrAdmin("commentId", r.comUC.IsCommentMine))

	chats := e.Group("/chats")
	chats.GET("", r.chatH.List, signedIn)
	chats.GET("/:chatId/messages", r.chatH.Messages, signedIn)

	e.GET("/ws/chats", r.gateway.Serve)
}
