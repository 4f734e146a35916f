package http

import (
	"net/http"
	"strconv"

	"communityhub-backend/internal/domain"
	"communityhub-backend/internal/service"

	"github.com/gorilla/mux"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

func pathID(r *http.Request, name string) (int32, bool) {
	v, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(v), true
}

type createPostRequest struct {
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	CommunityID *int32  `json:"community_id,omitempty"`
	TagIDs      []int32 `json:"tag_ids,omitempty"`
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	var req createPostRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Title == "" || req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "title and content are required"})
		return
	}

	post, err := h.postSvc.CreatePost(r.Context(), userID, req.Title, req.Content, req.CommunityID, req.TagIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	postID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid post id"})
		return
	}

	post, err := h.postSvc.GetPost(r.Context(), userID, postID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

type editPostRequest struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	TagIDs  []int32 `json:"tag_ids,omitempty"`
}

func (h *PostHandler) EditPost(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	postID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid post id"})
		return
	}
	var req editPostRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	post, err := h.postSvc.EditPost(r.Context(), userID, postID, req.Title, req.Content, req.TagIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	postID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid post id"})
		return
	}

	post, err := h.postSvc.DeletePost(r.Context(), userID, postID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) SavePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	postID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid post id"})
		return
	}
	if err := h.postSvc.SavePost(r.Context(), userID, postID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": true})
}

func (h *PostHandler) UnsavePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	postID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid post id"})
		return
	}
	if err := h.postSvc.UnsavePost(r.Context(), userID, postID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": false})
}

type toggleReactionRequest struct {
	Kind domain.ReactionKind `json:"kind"`
}

func (h *PostHandler) ToggleReaction(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	postID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid post id"})
		return
	}
	var req toggleReactionRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Kind == "" {
		req.Kind = domain.ReactionLike
	}

	active, err := h.postSvc.ToggleReaction(r.Context(), userID, postID, req.Kind)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"active": active})
}
