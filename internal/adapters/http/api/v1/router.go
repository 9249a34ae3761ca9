package v1

import (
	"github.com/labstack/echo/v4"

	"github.com/MexicoHamburger/Copoto/internal/adapters/http/api/v1/handlers"
)

type Router struct {
	users    *handlers.UserHandler
	posts    *handlers.PostHandler
	comments *handlers.CommentHandler
	temps    *handlers.TempPostHandler
	authGate echo.MiddlewareFunc
}

func NewRouter(users *handlers.UserHandler, posts *handlers.PostHandler, comments *handlers.CommentHandler, temps *handlers.TempPostHandler, authGate echo.MiddlewareFunc) *Router {
	return &Router{users: users, posts: posts, comments: comments, temps: temps, authGate: authGate}
}

// Register attaches every route under the versioned group. The auth gate
// runs on all of them; it only resolves an identity, it never rejects, so
// read endpoints stay anonymous-friendly.
func (r *Router) Register(g *echo.Group) {
	g.Use(r.authGate)

	user := g.Group("/user")
	user.POST("/register", r.users.Register)
	user.POST("/login", r.users.Login)
	user.POST("/token/refresh", r.users.Refresh)
	user.POST("/logout", r.users.Logout)
	user.GET("/profile/:user_id", r.users.Profile)
	user.POST("/verify/id", r.users.VerifyID)
	user.POST("/verify/nickname", r.users.VerifyNickname)
	user.PUT("/nickname", r.users.UpdateNickname)
	user.PUT("/password", r.users.UpdatePassword)
	user.GET("/all", r.users.All)

	post := g.Group("/post")
	post.POST("/create", r.posts.Create)
	post.GET("/all", r.posts.All)
	post.GET("/board/:type", r.posts.ByType)
	post.GET("/:postId", r.posts.Get)
	post.PUT("/:postId", r.posts.Update)
	post.DELETE("/:postId", r.posts.Delete)

	comment := g.Group("/comment")
	comment.POST("/create", r.comments.Create)
	comment.GET("/post/:postId", r.comments.ByPost)
	comment.GET("/user/:userId", r.comments.ByUser)
	comment.GET("/:commentId", r.comments.Get)
	comment.PUT("/:commentId", r.comments.Update)
	comment.DELETE("/:commentId", r.comments.Delete)

	temp := g.Group("/temp-post")
	temp.POST("/save", r.temps.Save)
	temp.GET("/list", r.temps.List)
	temp.GET("/:id", r.temps.Get)
	temp.DELETE("/:id", r.temps.Delete)
}
