package http

import (
	"net/http"
	"strconv"

	"communityhub-backend/internal/domain"
	"communityhub-backend/internal/service"
)

type FeedHandler struct {
	feedSvc service.FeedService
}

func NewFeedHandler(feedSvc service.FeedService) *FeedHandler {
	return &FeedHandler{feedSvc: feedSvc}
}

type provenanceResponse struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

type feedPostResponse struct {
	domain.Post
	Provenance provenanceResponse `json:"provenance"`
}

type feedPageResponse struct {
	Posts       []feedPostResponse `json:"posts"`
	TotalCount  int32              `json:"total_count"`
	HasNextPage bool               `json:"has_next_page"`
	NextOffset  int32              `json:"next_offset"`
}

// renderFeedPage turns provenance records into their human-readable reason
// strings; the services stay free of presentation formatting.
func renderFeedPage(page *domain.FeedPage) feedPageResponse {
	posts := make([]feedPostResponse, 0, len(page.Posts))
	for _, fp := range page.Posts {
		posts = append(posts, feedPostResponse{
			Post: fp.Post,
			Provenance: provenanceResponse{
				Type:   string(fp.Provenance.Kind),
				Reason: fp.Provenance.Reason(),
			},
		})
	}
	return feedPageResponse{
		Posts:       posts,
		TotalCount:  page.TotalCount,
		HasNextPage: page.HasNextPage,
		NextOffset:  page.NextOffset,
	}
}

func pageOptionsFromQuery(r *http.Request) service.PageOptions {
	opts := service.PageOptions{
		Sort:       r.URL.Query().Get("sort"),
		DateFilter: r.URL.Query().Get("dateFilter"),
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 32); err == nil {
		opts.Limit = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("offset"), 10, 32); err == nil {
		opts.Offset = int32(v)
	}
	return opts
}

func (h *FeedHandler) GetAllRelevantPosts(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	page, err := h.feedSvc.GetAllRelevantPosts(r.Context(), userID, pageOptionsFromQuery(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, renderFeedPage(page))
}

func (h *FeedHandler) GetMyCommunityPosts(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	page, err := h.feedSvc.GetMyCommunityPosts(r.Context(), userID, pageOptionsFromQuery(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, renderFeedPage(page))
}

func (h *FeedHandler) SearchRelevantPosts(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	term := r.URL.Query().Get("search")
	page, err := h.feedSvc.SearchRelevantPosts(r.Context(), userID, term, pageOptionsFromQuery(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, renderFeedPage(page))
}
