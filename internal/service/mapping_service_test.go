package service_test

import (
	"testing"

	"ai-worker-console/internal/model"
	"ai-worker-console/internal/query"
	"ai-worker-console/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupKeys[T any](groups []query.Group[T]) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Key
	}
	return out
}

func groupTotal[T any](groups []query.Group[T]) int {
	total := 0
	for _, g := range groups {
		total += len(g.Items)
	}
	return total
}

func TestMappingService_ListResolvesNames(t *testing.T) {
	f := newFixture(t)

	views, err := f.mappings.ListMappings(service.MappingListOptions{})
	require.NoError(t, err)
	require.Len(t, views, 6)
	assert.Equal(t, "김관리", views[0].UserName)
	assert.Equal(t, "e-총무", views[0].SystemName)

	primary, _ := f.mappings.ListMappings(service.MappingListOptions{Role: "primary"})
	assert.Len(t, primary, 3)

	byName, _ := f.mappings.ListMappings(service.MappingListOptions{Query: "ITS"})
	assert.Len(t, byName, 2)
}

func TestMappingService_GroupBySystem(t *testing.T) {
	f := newFixture(t)

	groups, err := f.mappings.GroupMappings(service.GroupBySystem, service.MappingListOptions{}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2", "s4"}, groupKeys(groups))
	assert.Equal(t, "ITS", groups[2].Label)
	assert.Equal(t, 6, groupTotal(groups))

	withEmpty, err := f.mappings.GroupMappings(service.GroupBySystem, service.MappingListOptions{}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2", "s3", "s4"}, groupKeys(withEmpty))
}

func TestMappingService_GroupByUser(t *testing.T) {
	f := newFixture(t)

	groups, err := f.mappings.GroupMappings(service.GroupByUser, service.MappingListOptions{}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2", "u3", "u4"}, groupKeys(groups))
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, 6, groupTotal(groups))

	_, err = f.mappings.GroupMappings("role", service.MappingListOptions{}, false)
	assert.ErrorIs(t, err, service.ErrInvalidGroup)
}

func TestMappingService_CreateAllowsDuplicates(t *testing.T) {
	f := newFixture(t)

	req := &service.MappingRequest{UserID: "u1", SystemID: "s1", Role: model.MappingSupport}
	view, err := f.mappings.CreateMapping(req, actor)
	require.NoError(t, err)
	assert.Equal(t, "김관리", view.UserName)

	views, _ := f.mappings.ListMappings(service.MappingListOptions{UserID: "u1", SystemID: "s1"})
	assert.Len(t, views, 2)
}

func TestMappingService_CreateChecksReferences(t *testing.T) {
	f := newFixture(t)

	_, err := f.mappings.CreateMapping(&service.MappingRequest{UserID: "u9", SystemID: "s1", Role: model.MappingPrimary}, actor)
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	_, err = f.mappings.CreateMapping(&service.MappingRequest{UserID: "u1", SystemID: "s9", Role: model.MappingPrimary}, actor)
	assert.ErrorIs(t, err, service.ErrSystemNotFound)

	_, err = f.mappings.CreateMapping(&service.MappingRequest{UserID: "u1", SystemID: "s1", Role: "owner"}, actor)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestMappingService_CascadeOnDelete(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.users.DeleteUser("u2", actor))
	views, _ := f.mappings.ListMappings(service.MappingListOptions{})
	assert.Len(t, views, 4)
	for _, v := range views {
		assert.NotEqual(t, "u2", v.UserID)
	}

	require.NoError(t, f.systems.DeleteSystem("s1", actor))
	views, _ = f.mappings.ListMappings(service.MappingListOptions{})
	assert.Len(t, views, 2)
	for _, v := range views {
		assert.NotEqual(t, "s1", v.SystemID)
	}
}

func TestMappingService_DeleteAndStats(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.mappings.DeleteMapping("m1", actor))
	assert.ErrorIs(t, f.mappings.DeleteMapping("m1", actor), service.ErrMappingNotFound)

	stats, err := f.mappings.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.ByRole["primary"])
	assert.Equal(t, 2, stats.ByRole["secondary"])
	assert.Equal(t, 1, stats.ByRole["support"])
}
