// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDB creates a temporary migrated database.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "lovelli-test-*.db")
	require.NoError(t, err)
	dbPath := f.Name()
	_ = f.Close()

	db, err := NewDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func mustCreateService(t *testing.T, q *Queries, slug string, position int64) Service {
	t.Helper()
	now := time.Now().UTC()
	s, err := q.CreateService(context.Background(), CreateServiceParams{
		Title:       "Service " + slug,
		Slug:        slug,
		Description: "Description of " + slug,
		Image:       "https://example.com/" + slug + ".jpg",
		Position:    position,
		Features:    StringList{"One", "Two"},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	return s
}

func TestServicesCRUD(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	s := mustCreateService(t, q, "digital-marketing", 1)
	assert.NotZero(t, s.ID)
	assert.Equal(t, StringList{"One", "Two"}, s.Features)
	assert.Empty(t, s.Benefits)

	got, err := q.GetServiceBySlug(ctx, "digital-marketing")
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	exists, err := q.ServiceSlugExists(ctx, "digital-marketing", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = q.ServiceSlugExists(ctx, "digital-marketing", s.ID)
	require.NoError(t, err)
	assert.False(t, exists, "own slug must not count as taken")

	updated, err := q.UpdateService(ctx, UpdateServiceParams{
		Title:     "Digital Marketing",
		Slug:      "digital-marketing",
		Features:  StringList{"SEO"},
		Benefits:  StringList{"Reach"},
		UpdatedAt: time.Now().UTC(),
		ID:        s.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Digital Marketing", updated.Title)
	assert.Equal(t, StringList{"Reach"}, updated.Benefits)

	_, err = q.GetServiceByID(ctx, 9999)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = q.CreateService(ctx, CreateServiceParams{Title: "dup", Slug: "digital-marketing"})
	assert.True(t, IsUniqueViolation(err), "duplicate slug should be a unique violation: %v", err)
}

func TestMaxServicePosition(t *testing.T) {
	db := testDB(t)
	q := New(db)
	ctx := context.Background()

	pos, err := q.MaxServicePosition(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)

	mustCreateService(t, q, "a", 1)
	mustCreateService(t, q, "b", 7)
	pos, err = q.MaxServicePosition(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), pos)
}

func TestReorderServices(t *testing.T) {
	db := testDB(t)
	q := New(db)
	ctx := context.Background()

	a := mustCreateService(t, q, "a", 1)
	b := mustCreateService(t, q, "b", 2)
	c := mustCreateService(t, q, "c", 3)

	err := ReorderServices(ctx, db, []ServiceOrderUpdate{
		{ID: c.ID, Position: 1},
		{ID: a.ID, Position: 2},
		{ID: b.ID, Position: 3},
	})
	require.NoError(t, err)

	list, err := q.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{list[0].Slug, list[1].Slug, list[2].Slug})
}

func TestReorderServices_StaleIDRollsBack(t *testing.T) {
	db := testDB(t)
	q := New(db)
	ctx := context.Background()

	a := mustCreateService(t, q, "a", 1)
	b := mustCreateService(t, q, "b", 2)

	err := ReorderServices(ctx, db, []ServiceOrderUpdate{
		{ID: b.ID, Position: 1},
		{ID: 4242, Position: 2},
	})
	require.ErrorIs(t, err, ErrStaleOrder)

	got, err := q.GetServiceByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Position, "first update must be rolled back")
	got, err = q.GetServiceByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Position)
}

func TestReorderServices_MidSequenceFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE services SET position").
		WithArgs(int64(1), sqlmock.AnyArg(), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE services SET position").
		WithArgs(int64(2), sqlmock.AnyArg(), int64(1)).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err = ReorderServices(context.Background(), db, []ServiceOrderUpdate{
		{ID: 3, Position: 1},
		{ID: 1, Position: 2},
		{ID: 2, Position: 3},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReorderServices_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, ReorderServices(context.Background(), db, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProjects_SingleStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`DELETE FROM projects WHERE id IN \(\?, \?, \?\)`).
		WithArgs(int64(4), int64(7), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := New(db).DeleteProjects(context.Background(), []int64{4, 7, 9})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByIDs(t *testing.T) {
	db := testDB(t)
	q := New(db)
	ctx := context.Background()

	a := mustCreateService(t, q, "a", 1)
	b := mustCreateService(t, q, "b", 2)
	c := mustCreateService(t, q, "c", 3)

	n, err := q.DeleteServices(ctx, []int64{a.ID, c.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	list, err := q.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	n, err = q.DeleteServices(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = q.deleteByIDs(ctx, "admin_users", []int64{1})
	assert.Error(t, err)
}

func TestProjectCategories(t *testing.T) {
	db := testDB(t)
	q := New(db)
	ctx := context.Background()
	now := time.Now().UTC()

	for i, cat := range []string{"Social Media", "Content", "Social Media", ""} {
		_, err := q.CreateProject(ctx, CreateProjectParams{
			Title:     "Project",
			Slug:      "project-" + string(rune('a'+i)),
			Category:  cat,
			Featured:  i == 0,
			CreatedAt: now,
			UpdatedAt: now,
		})
		require.NoError(t, err)
	}

	cats, err := q.ListProjectCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Content", "Social Media"}, cats)

	featured, err := q.ListFeaturedProjects(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.True(t, featured[0].Featured)
}

func TestPublishedBlogPosts(t *testing.T) {
	db := testDB(t)
	q := New(db)
	ctx := context.Background()
	now := time.Now().UTC()

	mk := func(slug string, published sql.NullTime) {
		_, err := q.CreateBlogPost(ctx, CreateBlogPostParams{
			Title: slug, Slug: slug, PublishedAt: published, CreatedAt: now, UpdatedAt: now,
		})
		require.NoError(t, err)
	}
	mk("draft", sql.NullTime{})
	mk("future", sql.NullTime{Time: now.Add(48 * time.Hour), Valid: true})
	mk("old", sql.NullTime{Time: now.Add(-48 * time.Hour), Valid: true})
	mk("recent", sql.NullTime{Time: now.Add(-time.Hour), Valid: true})

	posts, err := q.ListPublishedBlogPosts(ctx, ListPublishedBlogPostsParams{Now: now, Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "recent", posts[0].Slug)
	assert.Equal(t, "old", posts[1].Slug)
	assert.True(t, posts[0].IsPublished(now))
}

func newApplicant(email, ip string, at time.Time) CreateApplicantParams {
	return CreateApplicantParams{
		Reference:       email,
		Name:            "Maria Santos",
		Email:           email,
		Phone:           "+63 917 123 4567",
		PositionApplied: "Content Creator",
		Message:         "I would love to join the team and help brands tell their stories online.",
		IpAddress:       ip,
		Status:          "new",
		CreatedAt:       at,
	}
}

func TestApplicants(t *testing.T) {
	db := testDB(t)
	q := New(db)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := q.GetApplicantByEmail(ctx, "maria@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	a, err := q.CreateApplicant(ctx, newApplicant("maria@example.com", "203.0.113.7", now))
	require.NoError(t, err)
	assert.Equal(t, "new", a.Status)
	assert.False(t, a.ExperienceYears.Valid)

	got, err := q.GetApplicantByEmail(ctx, "maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	dup := newApplicant("maria@example.com", "203.0.113.7", now)
	dup.Reference = "other"
	_, err = q.CreateApplicant(ctx, dup)
	assert.True(t, IsUniqueViolation(err), "duplicate email should be a unique violation: %v", err)

	require.NoError(t, q.UpdateApplicantStatus(ctx, UpdateApplicantStatusParams{Status: "reviewing", ID: a.ID}))
	list, err := q.ListApplicants(ctx, "reviewing")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	list, err = q.ListApplicants(ctx, "new")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCheckApplicationRateLimit(t *testing.T) {
	db := testDB(t)
	q := New(db)
	ctx := context.Background()
	now := time.Now().UTC()

	params := CheckApplicationRateLimitParams{
		IpAddress:       "203.0.113.7",
		Since:           now.Add(-24 * time.Hour),
		MaxApplications: 2,
	}

	allowed, err := q.CheckApplicationRateLimit(ctx, params)
	require.NoError(t, err)
	assert.True(t, allowed)

	_, err = q.CreateApplicant(ctx, newApplicant("one@example.com", "203.0.113.7", now.Add(-time.Hour)))
	require.NoError(t, err)
	// outside the window
	_, err = q.CreateApplicant(ctx, newApplicant("old@example.com", "203.0.113.7", now.Add(-48*time.Hour)))
	require.NoError(t, err)
	// other address
	_, err = q.CreateApplicant(ctx, newApplicant("other@example.com", "198.51.100.1", now))
	require.NoError(t, err)

	allowed, err = q.CheckApplicationRateLimit(ctx, params)
	require.NoError(t, err)
	assert.True(t, allowed)

	_, err = q.CreateApplicant(ctx, newApplicant("two@example.com", "203.0.113.7", now))
	require.NoError(t, err)

	allowed, err = q.CheckApplicationRateLimit(ctx, params)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestPasswordResetTokens(t *testing.T) {
	db := testDB(t)
	q := New(db)
	ctx := context.Background()
	now := time.Now().UTC()

	user, err := q.CreateAdminUser(ctx, CreateAdminUserParams{
		Email: "editor@lovelli.com", PasswordHash: "x", Role: "editor", IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	tok, err := q.CreatePasswordResetToken(ctx, CreatePasswordResetTokenParams{
		AdminUserID: user.ID, TokenHash: "abc", ExpiresAt: now.Add(time.Hour), CreatedAt: now,
	})
	require.NoError(t, err)

	n, err := q.MarkPasswordResetTokenUsed(ctx, MarkPasswordResetTokenUsedParams{
		UsedAt: sql.NullTime{Time: now, Valid: true}, ID: tok.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = q.MarkPasswordResetTokenUsed(ctx, MarkPasswordResetTokenUsedParams{
		UsedAt: sql.NullTime{Time: now, Valid: true}, ID: tok.ID,
	})
	require.NoError(t, err)
	assert.Zero(t, n, "token can be used only once")

	deleted, err := q.DeleteExpiredPasswordResetTokens(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestSeed(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db, SeedOptions{AdminEmail: "root@lovelli.com", AdminPassword: "changeme123"}))
	require.NoError(t, Seed(ctx, db, SeedOptions{AdminEmail: "root@lovelli.com", AdminPassword: "changeme123"}))

	q := New(db)
	n, err := q.CountAdminUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	user, err := q.GetAdminUserByEmail(ctx, "root@lovelli.com")
	require.NoError(t, err)
	assert.Equal(t, "super_admin", user.Role)
	assert.True(t, user.IsActive)
}

func TestSeedContent_OnlyEmptyTables(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	mustCreateService(t, q, "existing", 1)

	data := SeedData{
		Services: []Service{{Title: "New", Slug: "new"}},
		Projects: []Project{{Title: "P", Slug: "p", Featured: true}},
	}
	require.NoError(t, SeedContent(ctx, db, data))

	services, err := q.ListServices(ctx)
	require.NoError(t, err)
	assert.Len(t, services, 1, "non-empty services table must not be seeded")

	projects, err := q.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestStringList(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan(`["a","b"]`))
	assert.Equal(t, StringList{"a", "b"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Nil(t, l)

	assert.Error(t, l.Scan(42))
	assert.Error(t, l.Scan("not json"))

	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.True(t, IsUniqueViolation(ErrUniqueViolation))
	assert.True(t, IsUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: applicants.email (2067)")))
}
