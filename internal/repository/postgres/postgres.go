package postgres

import (
	"database/sql"

	"communityhub-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.OrganizationRepository
	repository.CommunityRepository
	repository.MembershipRepository
	repository.InviteRepository
	repository.PostRepository
	repository.CommentRepository
	repository.TagRepository
	repository.ReactionRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		OrganizationRepository: NewOrganizationRepository(db),
		CommunityRepository:    NewCommunityRepository(db),
		MembershipRepository:   NewMembershipRepository(db),
		InviteRepository:       NewInviteRepository(db),
		PostRepository:         NewPostRepository(db),
		CommentRepository:      NewCommentRepository(db),
		TagRepository:          NewTagRepository(db),
		ReactionRepository:     NewReactionRepository(db),
	}
}
