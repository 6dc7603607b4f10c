package service_test

import (
	"testing"

	"ai-worker-console/internal/model"
	"ai-worker-console/internal/service"
	"ai-worker-console/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstructionService_GroupedBySystem(t *testing.T) {
	f := newFixture(t)

	groups, err := f.instructions.GroupInstructions(service.DocumentListOptions{}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2", "s4"}, groupKeys(groups))
	assert.Equal(t, "e-총무", groups[0].Label)
	assert.Equal(t, 2, groups[0].Count)

	all, _ := f.instructions.ListInstructions(service.DocumentListOptions{})
	assert.Equal(t, len(all), groupTotal(groups))

	withEmpty, err := f.instructions.GroupInstructions(service.DocumentListOptions{}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2", "s3", "s4"}, groupKeys(withEmpty))
	assert.Empty(t, withEmpty[2].Items)

	drafts, err := f.instructions.GroupInstructions(service.DocumentListOptions{Status: "draft"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s4"}, groupKeys(drafts))
}

func TestInstructionService_CreateAndUpdate(t *testing.T) {
	f := newFixture(t)

	created, err := f.instructions.CreateInstruction(&service.InstructionRequest{
		Title:    "계정 잠금 해제",
		SystemID: "s4",
		Content:  "# 잠금 해제",
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, created.Status)
	assert.Equal(t, "1.0.0", created.CurrentVersion)

	_, err = f.instructions.CreateInstruction(&service.InstructionRequest{Title: "x", SystemID: "s9"}, actor)
	assert.ErrorIs(t, err, service.ErrSystemNotFound)

	updated, err := f.instructions.UpdateInstruction(created.ID, &service.InstructionRequest{
		Title:    "계정 잠금 해제 절차",
		SystemID: "s4",
		Content:  "# 잠금 해제\n본인 확인",
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, "계정 잠금 해제 절차", updated.Title)
	assert.Len(t, updated.Versions, 1, "edits do not add versions")
}

func TestInstructionService_TogglePublish(t *testing.T) {
	f := newFixture(t)

	toggled, err := f.instructions.TogglePublish("i3", actor)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, toggled.Status)

	published, _ := f.instructions.ListInstructions(service.DocumentListOptions{Status: "published"})
	assert.Len(t, published, 3)

	_, err = f.instructions.TogglePublish("i9", actor)
	assert.ErrorIs(t, err, service.ErrInstructionNotFound)
}

func TestInstructionService_PublishVersion(t *testing.T) {
	f := newFixture(t)

	updated, err := f.instructions.PublishVersion("i1", &service.PublishVersionRequest{Version: "1.3.0", Changes: "반납 절차 추가"}, actor)
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", updated.CurrentVersion)
	assert.Equal(t, "1.3.0", updated.Versions[0].Version)
	assert.Equal(t, updated.Content, updated.Versions[0].Content, "empty content snapshots the working copy")

	history, err := f.instructions.GetVersions("i1")
	require.NoError(t, err)
	assert.True(t, history.InSync)
	assert.Len(t, history.Versions, 4)
	assert.True(t, history.Versions[0].IsCurrent)
	assert.False(t, history.Versions[1].IsCurrent)

	e := f.lastEvent(t)
	assert.Equal(t, ws.ActionPublished, e.Action)
}

func TestKnowledgeService_ListGroupAndStats(t *testing.T) {
	f := newFixture(t)

	failed, err := f.knowledge.ListKnowledge(service.DocumentListOptions{Status: "failed"})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "k4", failed[0].ID)

	groups, err := f.knowledge.GroupKnowledge(service.DocumentListOptions{}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2", "s3", "s4"}, groupKeys(groups))
	assert.Equal(t, 4, groupTotal(groups))

	stats, err := f.knowledge.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Indexed)
	assert.Equal(t, 1, stats.Indexing)
	assert.Equal(t, 1, stats.Failed)
}

func TestKnowledgeService_CreateStartsIndexing(t *testing.T) {
	f := newFixture(t)

	base, err := f.knowledge.CreateKnowledge(&service.KnowledgeRequest{
		Name:          "구매 규정",
		SystemID:      "s3",
		DocumentCount: 12,
		Tags:          []string{"규정", "규정", "구매"},
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, model.IndexIndexing, base.Status)
	assert.Equal(t, []string{"규정", "구매"}, base.Tags)

	_, err = f.knowledge.CreateKnowledge(&service.KnowledgeRequest{Name: "x", SystemID: "s1", DocumentCount: -1}, actor)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	require.NoError(t, f.knowledge.DeleteKnowledge(base.ID, actor))
	assert.ErrorIs(t, f.knowledge.DeleteKnowledge(base.ID, actor), service.ErrKnowledgeNotFound)
}
