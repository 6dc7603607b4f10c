package service_test

import (
	"testing"

	"ai-worker-console/internal/model"
	"ai-worker-console/internal/service"
	"ai-worker-console/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceService_ListWorkspaces(t *testing.T) {
	f := newFixture(t)

	workspaces := f.workspaces.ListWorkspaces()
	require.Len(t, workspaces, len(model.AgentKinds))
	assert.Equal(t, model.AgentITS, workspaces[0].Kind)
}

func TestWorkspaceService_GetWorkspaceStats(t *testing.T) {
	f := newFixture(t)

	view, err := f.workspaces.GetWorkspace(model.AgentITS)
	require.NoError(t, err)
	assert.True(t, view.Known)
	assert.Equal(t, []service.StatTile{
		{Label: "total", Value: 3},
		{Label: "open", Value: 1},
		{Label: "in_progress", Value: 1},
		{Label: "resolved", Value: 1},
	}, view.Stats)
}

func TestWorkspaceService_UnknownKindFallsBack(t *testing.T) {
	f := newFixture(t)

	view, err := f.workspaces.GetWorkspace("hr")
	require.NoError(t, err)
	assert.False(t, view.Known)
	assert.Equal(t, model.DefaultWorkspace.Title, view.Title)
	assert.Equal(t, model.AgentKind("hr"), view.Kind)
	assert.Equal(t, []service.StatTile{{Label: "total", Value: 0}}, view.Stats)

	_, err = f.workspaces.PostMessage("hr", &service.PostMessageRequest{Content: "hello"}, actor)
	assert.ErrorIs(t, err, service.ErrWorkspaceNotFound)
}

func TestWorkspaceService_ListItems(t *testing.T) {
	f := newFixture(t)

	items, err := f.workspaces.ListItems(model.AgentDatabase, service.WorkItemListOptions{Status: "failed"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "w9", items[0].ID)

	items, _ = f.workspaces.ListItems(model.AgentITS, service.WorkItemListOptions{Query: "vpn"})
	require.Len(t, items, 1)
	assert.Equal(t, "w2", items[0].ID)
}

func TestWorkspaceService_PostMessageReplies(t *testing.T) {
	f := newFixture(t)

	posted, err := f.workspaces.PostMessage(model.AgentDatabase, &service.PostMessageRequest{Content: "어제 백업 결과 알려줘"}, actor)
	require.NoError(t, err)
	require.Len(t, posted, 2)
	assert.Equal(t, model.SenderOperator, posted[0].Sender)
	assert.Equal(t, actor, posted[0].CreatedBy)
	assert.Equal(t, model.SenderAgent, posted[1].Sender)
	assert.Contains(t, posted[1].Content, "백업")

	posted, err = f.workspaces.PostMessage(model.AgentDatabase, &service.PostMessageRequest{Content: "안녕"}, actor)
	require.NoError(t, err)
	assert.NotEmpty(t, posted[1].Content)

	thread, err := f.workspaces.ListMessages(model.AgentDatabase)
	require.NoError(t, err)
	assert.Len(t, thread, 4)

	other, _ := f.workspaces.ListMessages(model.AgentITS)
	assert.Empty(t, other)

	view, _ := f.workspaces.GetWorkspace(model.AgentDatabase)
	assert.Equal(t, 4, view.Messages)

	assert.Equal(t, ws.EntityMessage, f.lastEvent(t).Entity)

	_, err = f.workspaces.PostMessage(model.AgentDatabase, &service.PostMessageRequest{}, actor)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestDashboardService_Aggregates(t *testing.T) {
	f := newFixture(t)

	stats, err := f.dashboard.GetDashboardStats()
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Users.Total)
	assert.Equal(t, 4, stats.Systems.Total)
	assert.Equal(t, 3, stats.Agents.Total)
	assert.Equal(t, 4, stats.Knowledge.Total)
	assert.Equal(t, 4, stats.Instructions)
	assert.Equal(t, 6, stats.Mappings.Total)
	assert.Equal(t, 3, stats.Groups)
	assert.Equal(t, len(model.DefaultTools), stats.Tools)
	assert.Equal(t, len(model.AgentKinds), stats.Workspaces)
}
