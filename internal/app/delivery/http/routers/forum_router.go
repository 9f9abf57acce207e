package routers

import (
	"edulink-service/internal/app/delivery/http/controllers"
	"edulink-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachForumRoutes(router chi.Router, middlewares *middlewares.Middlewares, forumController *controllers.ForumController) {
	router.With(middlewares.Authenticate).Post("/posts", forumController.CreatePost)
	router.With(middlewares.Authenticate).Get("/posts", forumController.GetAllPosts)
	router.With(middlewares.Authenticate).Get("/posts/{postID}", forumController.GetPostByID)
	router.With(middlewares.Authenticate).Put("/posts/{postID}", forumController.UpdatePost)
	router.With(middlewares.Authenticate).Delete("/posts/{postID}", forumController.DeletePost)
	router.With(middlewares.Authenticate).Post("/posts/{postID}/replies", forumController.CreateReply)
	router.With(middlewares.Authenticate).Get("/posts/{postID}/replies", forumController.GetPostReplies)
	router.With(middlewares.Authenticate).Post("/posts/{postID}/vote", forumController.ToggleVote)
	router.With(middlewares.Authenticate).Post("/posts/{postID}/attachments", forumController.UploadAttachment)
}
