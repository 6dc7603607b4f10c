package service_test

import (
	"testing"

	"ai-worker-console/internal/model"
	"ai-worker-console/internal/service"
	"ai-worker-console/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_ListFilters(t *testing.T) {
	f := newFixture(t)

	inactive, err := f.users.ListUsers(service.UserListOptions{Status: "inactive"})
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, "u4", inactive[0].ID)

	operators, _ := f.users.ListUsers(service.UserListOptions{Role: "operator", Status: "all"})
	assert.Len(t, operators, 2)

	byEmail, _ := f.users.ListUsers(service.UserListOptions{Query: "PARK.MGR"})
	require.Len(t, byEmail, 1)
	assert.Equal(t, "u3", byEmail[0].ID)
}

func TestUserService_CreateUser(t *testing.T) {
	f := newFixture(t)

	user, err := f.users.CreateUser(&service.CreateUserRequest{
		Name:     "정신규",
		Email:    "new@aiworker.local",
		Role:     model.UserRoleOperator,
		Password: "secret1",
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, model.UserActive, user.Status)
	assert.True(t, user.CheckPassword("secret1"))
	assert.Equal(t, actor, user.CreatedBy)

	e := f.lastEvent(t)
	assert.Equal(t, ws.EntityUser, e.Entity)
	assert.Equal(t, ws.ActionCreated, e.Action)
	assert.Equal(t, user.ID, e.ID)

	_, err = f.users.CreateUser(&service.CreateUserRequest{
		Name: "dup", Email: "ADMIN@aiworker.local", Role: model.UserRoleAdmin,
	}, actor)
	assert.ErrorIs(t, err, service.ErrEmailExists)

	_, err = f.users.CreateUser(&service.CreateUserRequest{Name: "x", Email: "not-an-email", Role: model.UserRoleAdmin}, actor)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestUserService_UpdateRefreshesAudit(t *testing.T) {
	f := newFixture(t)
	inactive := model.UserInactive

	updated, err := f.users.UpdateUser("u2", &service.UpdateUserRequest{
		Name:       "이운영",
		Email:      "lee.ops@aiworker.local",
		Department: "서비스운영팀",
		Role:       model.UserRoleManager,
		Status:     &inactive,
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, "서비스운영팀", updated.Department)
	assert.Equal(t, model.UserInactive, updated.Status)
	assert.Equal(t, actor, updated.UpdatedBy)
	assert.True(t, updated.UpdatedAt.After(model.DefaultUsers[1].UpdatedAt))

	_, err = f.users.UpdateUser("u2", &service.UpdateUserRequest{
		Name: "이운영", Email: "admin@aiworker.local", Role: model.UserRoleOperator,
	}, actor)
	assert.ErrorIs(t, err, service.ErrEmailExists)

	_, err = f.users.UpdateUser("u9", &service.UpdateUserRequest{
		Name: "ghost", Email: "ghost@aiworker.local", Role: model.UserRoleOperator,
	}, actor)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestUserService_ToggleActive(t *testing.T) {
	f := newFixture(t)

	user, err := f.users.ToggleActive("u4", actor)
	require.NoError(t, err)
	assert.True(t, user.IsActive())

	stats, err := f.users.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Active)
	assert.Zero(t, stats.Inactive)
	assert.Equal(t, 2, stats.ByRole["operator"])

	_, err = f.users.ToggleActive("u9", actor)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestUserService_DeleteUser(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.users.DeleteUser("u3", actor))
	users, _ := f.users.ListUsers(service.UserListOptions{})
	assert.Len(t, users, 3)

	assert.ErrorIs(t, f.users.DeleteUser("u3", actor), service.ErrUserNotFound)
	users, _ = f.users.ListUsers(service.UserListOptions{})
	assert.Len(t, users, 3)
}

func TestUserService_UpdateReportsStoreErrors(t *testing.T) {
	f := newFixture(t)
	users := service.NewUserService(brokenStore[model.User]{f.stores.Users}, f.bus)

	_, err := users.UpdateUser("u2", &service.UpdateUserRequest{
		Name:  "바뀐이름",
		Email: "changed@aiworker.local",
		Role:  model.UserRoleOperator,
	}, actor)
	assert.ErrorIs(t, err, errStoreDown)

	u2, err := f.stores.Users.Get("u2")
	require.NoError(t, err)
	assert.NotEqual(t, "바뀐이름", u2.Name)
}
