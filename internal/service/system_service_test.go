package service_test

import (
	"testing"

	"ai-worker-console/internal/model"
	"ai-worker-console/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemService_ListAndStats(t *testing.T) {
	f := newFixture(t)

	maintenance, err := f.systems.ListSystems(service.SystemListOptions{Status: "maintenance"})
	require.NoError(t, err)
	require.Len(t, maintenance, 1)
	assert.Equal(t, "s3", maintenance[0].ID)

	stats, err := f.systems.GetStats()
	require.NoError(t, err)
	assert.Equal(t, &service.SystemStats{Total: 4, Active: 3, Maintenance: 1}, stats)

	options, err := f.systems.GetOptions()
	require.NoError(t, err)
	assert.Equal(t, service.SystemOption{ID: "s1", Name: "e-총무"}, options[0])
}

func TestSystemService_CreateUpdateDelete(t *testing.T) {
	f := newFixture(t)

	created, err := f.systems.CreateSystem(&service.SystemRequest{
		Name:   "e-회계",
		Code:   "ACC",
		URL:    "https://acc.aiworker.local",
		Status: model.SystemActive,
	}, actor)
	require.NoError(t, err)

	updated, err := f.systems.UpdateSystem(created.ID, &service.SystemRequest{
		Name:   "e-회계",
		Code:   "ACC",
		Status: model.SystemMaintenance,
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, model.SystemMaintenance, updated.Status)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = f.systems.CreateSystem(&service.SystemRequest{Name: "x", Code: "X", Status: "retired"}, actor)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	require.NoError(t, f.systems.DeleteSystem(created.ID, actor))
	_, err = f.systems.GetSystem(created.ID)
	assert.ErrorIs(t, err, service.ErrSystemNotFound)
}

func TestSystemService_DeleteKeepsDocuments(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.systems.DeleteSystem("s4", actor))

	i3, err := f.instructions.GetInstruction("i3")
	require.NoError(t, err)
	assert.Equal(t, "s4", i3.SystemID)

	groups, err := f.instructions.GroupInstructions(service.DocumentListOptions{}, false)
	require.NoError(t, err)
	last := groups[len(groups)-1]
	assert.Equal(t, "s4", last.Key)
	assert.Equal(t, "s4", last.Label, "dangling system shows its raw id")
}
