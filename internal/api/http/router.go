package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter assembles the API surface. Everything under /api/v1 requires a
// bearer token except the invite info/redemption endpoints, which accept
// anonymous callers so that invited users can register while joining.
func NewRouter(
	auth *AuthMiddleware,
	feedHandler *FeedHandler,
	postHandler *PostHandler,
	commentHandler *CommentHandler,
	communityHandler *CommunityHandler,
) *mux.Router {
	r := mux.NewRouter()

	public := r.PathPrefix("/api/v1").Subrouter()
	public.Use(auth.Optional)
	public.HandleFunc("/invites/{code}", communityHandler.GetInviteInfo).Methods(http.MethodGet)
	public.HandleFunc("/invites/{code}/join", communityHandler.JoinViaInvite).Methods(http.MethodPost)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Require)

	api.HandleFunc("/feed", feedHandler.GetAllRelevantPosts).Methods(http.MethodGet)
	api.HandleFunc("/feed/communities", feedHandler.GetMyCommunityPosts).Methods(http.MethodGet)
	api.HandleFunc("/feed/search", feedHandler.SearchRelevantPosts).Methods(http.MethodGet)

	api.HandleFunc("/posts", postHandler.CreatePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id}", postHandler.GetPost).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", postHandler.EditPost).Methods(http.MethodPut)
	api.HandleFunc("/posts/{id}", postHandler.DeletePost).Methods(http.MethodDelete)
	api.HandleFunc("/posts/{id}/save", postHandler.SavePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id}/save", postHandler.UnsavePost).Methods(http.MethodDelete)
	api.HandleFunc("/posts/{id}/reactions", postHandler.ToggleReaction).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id}/comments", commentHandler.CreateComment).Methods(http.MethodPost)

	api.HandleFunc("/comments/{id}", commentHandler.UpdateComment).Methods(http.MethodPut)
	api.HandleFunc("/comments/{id}", commentHandler.DeleteComment).Methods(http.MethodDelete)
	api.HandleFunc("/comments/{id}/helpful", commentHandler.ToggleHelpfulVote).Methods(http.MethodPost)

	api.HandleFunc("/communities", communityHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/communities/{id}", communityHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/communities/{id}/moderators", communityHandler.AssignModerator).Methods(http.MethodPost)
	api.HandleFunc("/communities/{id}/moderators/{userId}", communityHandler.RemoveModerator).Methods(http.MethodDelete)
	api.HandleFunc("/communities/{id}/invites", communityHandler.CreateInviteLink).Methods(http.MethodPost)
	api.HandleFunc("/communities/{id}/invites/email", communityHandler.InviteUsersByEmail).Methods(http.MethodPost)

	api.HandleFunc("/stats", communityHandler.GetStats).Methods(http.MethodGet)

	return r
}
