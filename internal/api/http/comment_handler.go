package http

import (
	"net/http"

	"communityhub-backend/internal/service"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{commentSvc: commentSvc}
}

type createCommentRequest struct {
	Content  string `json:"content"`
	ParentID *int32 `json:"parent_id,omitempty"`
}

func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	postID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid post id"})
		return
	}
	var req createCommentRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "content is required"})
		return
	}

	comment, err := h.commentSvc.CreateComment(r.Context(), userID, postID, req.Content, req.ParentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	commentID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid comment id"})
		return
	}
	var req updateCommentRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "content is required"})
		return
	}

	comment, err := h.commentSvc.UpdateComment(r.Context(), userID, commentID, req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	commentID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid comment id"})
		return
	}

	comment, err := h.commentSvc.DeleteComment(r.Context(), userID, commentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) ToggleHelpfulVote(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	commentID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid comment id"})
		return
	}

	active, err := h.commentSvc.ToggleHelpfulVote(r.Context(), userID, commentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"active": active})
}
