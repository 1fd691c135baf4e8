package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/LangoJordan/annonceluzy/internal/listing/domain"
	"github.com/LangoJordan/annonceluzy/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&domain.Listing{})
	assert.NoError(t, err)

	return db
}

func seedListings(t *testing.T, repo domain.Repository, node *snowflake.Node, agencyID snowflake.ID, n int) {
	t.Helper()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		assert.NoError(t, repo.Insert(context.Background(), &domain.Listing{
			ID:        node.Generate(),
			AgencyID:  agencyID,
			AuthorID:  node.Generate(),
			Title:     fmt.Sprintf("annonce %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
}

func TestList_ScopedToAgency(t *testing.T) {
	db := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	repo := New(db)

	agencyA := node.Generate()
	agencyB := node.Generate()
	seedListings(t, repo, node, agencyA, 3)
	seedListings(t, repo, node, agencyB, 2)

	resp, err := repo.List(context.Background(), domain.ListRequest{AgencyID: agencyA})
	assert.NoError(t, err)
	assert.Len(t, resp.Listings, 3)
	assert.False(t, resp.HasMore)

	for _, l := range resp.Listings {
		assert.Equal(t, agencyA, l.AgencyID)
	}
}

func TestList_CursorPagination(t *testing.T) {
	db := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	repo := New(db)

	agencyID := node.Generate()
	seedListings(t, repo, node, agencyID, 5)

	first, err := repo.List(context.Background(), domain.ListRequest{
		AgencyID:   agencyID,
		Pagination: pagination.Pagination{PageSize: 2},
	})
	assert.NoError(t, err)
	assert.Len(t, first.Listings, 2)
	assert.True(t, first.HasMore)
	assert.NotEmpty(t, first.NextPageToken)

	// newest first
	assert.True(t, first.Listings[0].CreatedAt.After(first.Listings[1].CreatedAt))

	second, err := repo.List(context.Background(), domain.ListRequest{
		AgencyID:   agencyID,
		Pagination: pagination.Pagination{PageSize: 2, PageToken: first.NextPageToken},
	})
	assert.NoError(t, err)
	assert.Len(t, second.Listings, 2)
	assert.True(t, second.HasMore)

	// no overlap between pages
	assert.True(t, second.Listings[0].CreatedAt.Before(first.Listings[1].CreatedAt))

	third, err := repo.List(context.Background(), domain.ListRequest{
		AgencyID:   agencyID,
		Pagination: pagination.Pagination{PageSize: 2, PageToken: second.NextPageToken},
	})
	assert.NoError(t, err)
	assert.Len(t, third.Listings, 1)
	assert.False(t, third.HasMore)
	assert.Empty(t, third.NextPageToken)
}

func TestFindByID_WrongAgencyIsNotFound(t *testing.T) {
	db := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	repo := New(db)

	agencyID := node.Generate()
	listing := &domain.Listing{
		ID:       node.Generate(),
		AgencyID: agencyID,
		AuthorID: node.Generate(),
		Title:    "maison 3 chambres",
	}
	assert.NoError(t, repo.Insert(context.Background(), listing))

	found, err := repo.FindByID(context.Background(), agencyID, listing.ID)
	assert.NoError(t, err)
	assert.Equal(t, listing.ID, found.ID)

	_, err = repo.FindByID(context.Background(), node.Generate(), listing.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
