package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"communityhub-backend/internal/domain"
	"communityhub-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postRows(posts ...domain.Post) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "title", "content", "author_id", "name", "org_id", "community_id", "community_name", "created_on", "updated_on"})
	for _, p := range posts {
		rows.AddRow(p.ID, p.Title, p.Content, p.AuthorID, p.AuthorName, p.OrgID, p.CommunityID, p.CommunityName, p.CreatedOn, p.UpdatedOn)
	}
	return rows
}

func TestPostRepository_CreateWithTags(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO posts").
		WithArgs("title", "content", int32(1), int32(10), int32(20), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int32(7)))
	mock.ExpectExec("INSERT INTO post_tags").
		WithArgs(int32(7), int32(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO post_tags").
		WithArgs(int32(7), int32(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	communityID := int32(20)
	post := &domain.Post{Title: "title", Content: "content", AuthorID: 1, OrgID: 10, CommunityID: &communityID}
	err = repo.CreateWithTags(context.Background(), post, []int32{3, 4})
	require.NoError(t, err)
	assert.Equal(t, int32(7), post.ID)
	assert.False(t, post.CreatedOn.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_CreateWithTags_RollsBackOnTagFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO posts").
		WithArgs("title", "content", int32(1), int32(10), int32(20), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int32(7)))
	mock.ExpectExec("INSERT INTO post_tags").
		WithArgs(int32(7), int32(3)).
		WillReturnError(errors.New("foreign key violation"))
	// The post insert must not survive a tag insert failure.
	mock.ExpectRollback()

	communityID := int32(20)
	post := &domain.Post{Title: "title", Content: "content", AuthorID: 1, OrgID: 10, CommunityID: &communityID}
	err = repo.CreateWithTags(context.Background(), post, []int32{3})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewPostRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM posts p").
		WithArgs(int32(404)).
		WillReturnRows(postRows())

	_, err = repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostRepository_ListByCommunities_EmptyInput(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewPostRepository(db)

	// No query should be issued for an empty community set.
	posts, err := repo.ListByCommunities(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewPostRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM posts p").
		WithArgs(int32(10), sqlmock.AnyArg(), "%deploy%", nil).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int32(2)))
	mock.ExpectQuery("SELECT (.+) FROM posts p").
		WithArgs(int32(10), sqlmock.AnyArg(), "%deploy%", nil, int32(20), int32(0)).
		WillReturnRows(postRows(
			domain.Post{ID: 2, Title: "Deploy window", OrgID: 10, CreatedOn: now, UpdatedOn: now},
			domain.Post{ID: 1, Title: "Deploy guide", OrgID: 10, CreatedOn: now.Add(-time.Hour), UpdatedOn: now},
		))

	posts, total, err := repo.Search(context.Background(), 10, []int32{20, 21}, "deploy", nil, false, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(2), total)
	require.Len(t, posts, 2)
	assert.Equal(t, int32(2), posts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_SoftDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewPostRepository(db)

	mock.ExpectExec("UPDATE posts SET deleted = TRUE").
		WithArgs(sqlmock.AnyArg(), int32(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SoftDelete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_PurgeDeletedBefore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewPostRepository(db)

	mock.ExpectExec("DELETE FROM posts WHERE deleted = TRUE").
		WithArgs(30).
		WillReturnResult(sqlmock.NewResult(0, 12))

	purged, err := repo.PurgeDeletedBefore(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, int64(12), purged)
}
