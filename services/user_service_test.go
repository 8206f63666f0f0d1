package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-cms/logger"
	"inkwell-cms/models"
	"inkwell-cms/testutils"
)

func TestGrantAndRevokeWriter(t *testing.T) {
	users := testutils.NewUserStore()
	svc := NewUserService(users, logger.Discard())
	admin := testutils.CreateTestUser(users, testutils.AsAdmin())
	target := testutils.CreateTestUser(users, testutils.WithUsername("carol"))
	ctx := context.Background()
	actor := models.ActorFromUser(admin)

	u, err := svc.GrantWriter(ctx, actor, "carol")
	require.NoError(t, err)
	assert.True(t, u.IsWriter)

	_, err = svc.GrantWriter(ctx, actor, "carol")
	assert.ErrorIs(t, err, models.ErrConflict)
	assert.EqualError(t, err, "user 'carol' is already a writer")

	u, err = svc.RevokeWriter(ctx, actor, "carol")
	require.NoError(t, err)
	assert.False(t, u.IsWriter)

	_, err = svc.RevokeWriter(ctx, actor, "carol")
	assert.EqualError(t, err, "user 'carol' is not a writer")

	stored, err := users.GetByID(ctx, target.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsWriter)
}

func TestGrantAndRevokeAdmin(t *testing.T) {
	users := testutils.NewUserStore()
	svc := NewUserService(users, logger.Discard())
	admin := testutils.CreateTestUser(users, testutils.AsAdmin())
	testutils.CreateTestUser(users, testutils.WithUsername("dave"))
	ctx := context.Background()
	actor := models.ActorFromUser(admin)

	u, err := svc.GrantAdmin(ctx, actor, "dave")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)

	_, err = svc.GrantAdmin(ctx, actor, "dave")
	assert.EqualError(t, err, "user 'dave' is already an admin")

	u, err = svc.RevokeAdmin(ctx, actor, "dave")
	require.NoError(t, err)
	assert.False(t, u.IsAdmin)

	_, err = svc.RevokeAdmin(ctx, actor, "dave")
	assert.EqualError(t, err, "user 'dave' is not an admin")
}

func TestCannotRevokeOwnAdmin(t *testing.T) {
	users := testutils.NewUserStore()
	svc := NewUserService(users, logger.Discard())
	admin := testutils.CreateTestUser(users, testutils.AsAdmin(), testutils.WithUsername("root"))

	_, err := svc.RevokeAdmin(context.Background(), models.ActorFromUser(admin), "root")
	assert.ErrorIs(t, err, models.ErrValidation)

	stored, err := users.GetByID(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin)
}

func TestRoleChangesRequireAdmin(t *testing.T) {
	users := testutils.NewUserStore()
	svc := NewUserService(users, logger.Discard())
	writer := testutils.CreateTestUser(users, testutils.AsWriter())
	testutils.CreateTestUser(users, testutils.WithUsername("erin"))

	_, err := svc.GrantAdmin(context.Background(), models.ActorFromUser(writer), "erin")
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = svc.GrantWriter(context.Background(), testutils.Admin(1), "ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.EqualError(t, err, "user 'ghost' not found")
}
