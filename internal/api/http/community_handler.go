package http

import (
	"net/http"

	"communityhub-backend/internal/domain"
	"communityhub-backend/internal/service"

	"github.com/gorilla/mux"
)

type CommunityHandler struct {
	communitySvc service.CommunityService
}

func NewCommunityHandler(communitySvc service.CommunityService) *CommunityHandler {
	return &CommunityHandler{communitySvc: communitySvc}
}

type createCommunityRequest struct {
	Name           string               `json:"name"`
	Slug           string               `json:"slug"`
	Description    string               `json:"description"`
	Type           domain.CommunityType `json:"type"`
	Rules          string               `json:"rules"`
	AvatarURL      string               `json:"avatar_url"`
	BannerURL      string               `json:"banner_url"`
	AdminOnlyPosts bool                 `json:"admin_only_posts"`
	OrgID          *int32               `json:"org_id,omitempty"`
	AllowedOrgID   *int32               `json:"allowed_org_id,omitempty"`
}

func (h *CommunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	var req createCommunityRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Name == "" || req.Slug == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name and slug are required"})
		return
	}

	community := &domain.Community{
		Name:           req.Name,
		Slug:           req.Slug,
		Description:    req.Description,
		Type:           req.Type,
		Rules:          req.Rules,
		AvatarURL:      req.AvatarURL,
		BannerURL:      req.BannerURL,
		AdminOnlyPosts: req.AdminOnlyPosts,
		OrgID:          req.OrgID,
	}
	community, err := h.communitySvc.Create(r.Context(), userID, community, req.AllowedOrgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, community)
}

type updateCommunityRequest struct {
	Name           *string               `json:"name,omitempty"`
	Description    *string               `json:"description,omitempty"`
	Type           *domain.CommunityType `json:"type,omitempty"`
	Rules          *string               `json:"rules,omitempty"`
	AvatarURL      *string               `json:"avatar_url,omitempty"`
	BannerURL      *string               `json:"banner_url,omitempty"`
	AdminOnlyPosts *bool                 `json:"admin_only_posts,omitempty"`
}

func (h *CommunityHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	communityID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}
	var req updateCommunityRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	community, err := h.communitySvc.Update(r.Context(), userID, communityID, service.CommunityUpdate{
		Name:           req.Name,
		Description:    req.Description,
		Type:           req.Type,
		Rules:          req.Rules,
		AvatarURL:      req.AvatarURL,
		BannerURL:      req.BannerURL,
		AdminOnlyPosts: req.AdminOnlyPosts,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, community)
}

type moderatorRequest struct {
	UserID int32 `json:"user_id"`
}

func (h *CommunityHandler) AssignModerator(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	communityID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}
	var req moderatorRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	membership, err := h.communitySvc.AssignModerator(r.Context(), userID, communityID, req.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, membership)
}

func (h *CommunityHandler) RemoveModerator(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	communityID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}
	targetID, ok := pathID(r, "userId")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user id"})
		return
	}

	membership, err := h.communitySvc.RemoveModerator(r.Context(), userID, communityID, targetID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, membership)
}

type createInviteRequest struct {
	Role          domain.MembershipRole `json:"role"`
	ExpiresInDays int                   `json:"expires_in_days"`
}

type createInviteResponse struct {
	Code       string `json:"code"`
	InviteLink string `json:"invite_link"`
}

func (h *CommunityHandler) CreateInviteLink(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	communityID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}
	var req createInviteRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	invite, link, err := h.communitySvc.CreateInviteLink(r.Context(), userID, communityID, req.Role, req.ExpiresInDays)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createInviteResponse{Code: invite.Code, InviteLink: link})
}

func (h *CommunityHandler) GetInviteInfo(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	info, err := h.communitySvc.GetInviteInfo(r.Context(), code)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

type joinViaInviteRequest struct {
	Registration *struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"registration,omitempty"`
}

type joinViaInviteResponse struct {
	Membership *domain.Membership `json:"membership"`
	Community  *domain.Community  `json:"community"`
}

func (h *CommunityHandler) JoinViaInvite(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req joinViaInviteRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
	}

	var userID *int32
	if id, ok := GetUserID(r); ok {
		userID = &id
	}
	var reg *service.Registration
	if req.Registration != nil {
		reg = &service.Registration{
			Name:     req.Registration.Name,
			Email:    req.Registration.Email,
			Password: req.Registration.Password,
		}
	}

	membership, community, err := h.communitySvc.JoinViaInvite(r.Context(), userID, code, reg)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, joinViaInviteResponse{Membership: membership, Community: community})
}

type emailInviteRequest struct {
	Emails     []string              `json:"emails"`
	Role       domain.MembershipRole `json:"role"`
	SenderName string                `json:"sender_name,omitempty"`
}

type emailInviteResponse struct {
	Success bool                         `json:"success"`
	Count   int32                        `json:"count"`
	Results []service.EmailInviteOutcome `json:"results"`
}

func (h *CommunityHandler) InviteUsersByEmail(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	communityID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid community id"})
		return
	}
	var req emailInviteRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if len(req.Emails) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "at least one email is required"})
		return
	}

	results, count, err := h.communitySvc.InviteUsersByEmail(r.Context(), userID, communityID, req.Emails, req.Role, req.SenderName)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emailInviteResponse{Success: count > 0, Count: count, Results: results})
}

func (h *CommunityHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r)
	stats, err := h.communitySvc.GetStats(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
