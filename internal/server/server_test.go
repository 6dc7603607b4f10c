package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ai-worker-console/internal/repository"
	"ai-worker-console/internal/server"
	"ai-worker-console/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	cfg := &config.Config{
		AppName:      "console-test",
		StoreDriver:  config.DriverMemory,
		JWTSecret:    "test-secret",
		TokenTTL:     time.Hour,
		SeedMockData: true,
		AdminEmail:   "admin@aiworker.local",
		AdminPass:    "admin123",
	}
	stores := repository.NewMemoryStores()
	require.NoError(t, server.Bootstrap(cfg, stores))
	return server.New(cfg, stores, server.Options{Quiet: true})
}

func do(t *testing.T, srv *server.Server, method, path, body, token string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.App.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

func TestAgents_SearchFilterToggle(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodGet, "/api/v1/agents?q=DB", "", "")
	require.Equal(t, 200, status)
	found := decode[[]map[string]any](t, body)
	require.Len(t, found, 1)
	assert.Equal(t, "a3", found[0]["id"])

	status, body = do(t, srv, http.MethodGet, "/api/v1/agents?status=published", "", "")
	require.Equal(t, 200, status)
	assert.Len(t, decode[[]map[string]any](t, body), 2)

	status, _ = do(t, srv, http.MethodPatch, "/api/v1/agents/a3/publish", "", "")
	require.Equal(t, 200, status)

	_, body = do(t, srv, http.MethodGet, "/api/v1/agents?status=published", "", "")
	assert.Len(t, decode[[]map[string]any](t, body), 3)
}

func TestUsers_CRUDStatusCodes(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodPost, "/api/v1/users",
		`{"name":"정신규","email":"new@aiworker.local","role":"operator"}`, "")
	require.Equal(t, 201, status, string(body))
	created := decode[struct {
		Data map[string]any `json:"data"`
	}](t, body)
	assert.Equal(t, "admin", created.Data["created_by"], "anonymous requests act as the default operator")
	assert.NotContains(t, created.Data, "password")

	status, _ = do(t, srv, http.MethodPost, "/api/v1/users", `{"name":"x","email":"bad","role":"operator"}`, "")
	assert.Equal(t, 400, status)

	status, _ = do(t, srv, http.MethodPost, "/api/v1/users", `{not json`, "")
	assert.Equal(t, 400, status)

	status, _ = do(t, srv, http.MethodGet, "/api/v1/users/u9", "", "")
	assert.Equal(t, 404, status)

	status, _ = do(t, srv, http.MethodDelete, "/api/v1/users/u4", "", "")
	assert.Equal(t, 200, status)
	status, _ = do(t, srv, http.MethodDelete, "/api/v1/users/u4", "", "")
	assert.Equal(t, 404, status)

	_, body = do(t, srv, http.MethodGet, "/api/v1/mappings?user=u4", "", "")
	assert.Empty(t, decode[[]map[string]any](t, body))
}

func TestAuth_LoginAndOperator(t *testing.T) {
	srv := newTestServer(t)

	status, _ := do(t, srv, http.MethodPost, "/api/v1/auth/login", `{"email":"admin@aiworker.local","password":"wrong"}`, "")
	assert.Equal(t, 401, status)

	status, body := do(t, srv, http.MethodPost, "/api/v1/auth/login", `{"email":"admin@aiworker.local","password":"admin123"}`, "")
	require.Equal(t, 200, status, string(body))
	login := decode[struct {
		Token string `json:"token"`
	}](t, body)
	require.NotEmpty(t, login.Token)

	status, body = do(t, srv, http.MethodGet, "/api/v1/auth/me", "", login.Token)
	require.Equal(t, 200, status)
	assert.Equal(t, "u1", decode[map[string]any](t, body)["id"])

	status, body = do(t, srv, http.MethodPost, "/api/v1/systems",
		`{"name":"e-회계","code":"ACC","status":"active"}`, login.Token)
	require.Equal(t, 201, status, string(body))
	system := decode[struct {
		Data map[string]any `json:"data"`
	}](t, body)
	assert.Equal(t, "김관리", system.Data["created_by"])

	status, _ = do(t, srv, http.MethodGet, "/api/v1/auth/me", "", "")
	assert.Equal(t, 401, status)

	status, _ = do(t, srv, http.MethodGet, "/api/v1/users", "", "not-a-token")
	assert.Equal(t, 401, status)
}

func TestPermissions_MatrixToggle(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodPatch, "/api/v1/permissions/groups/r3/agent/a2", "", "")
	require.Equal(t, 200, status, string(body))

	_, body = do(t, srv, http.MethodGet, "/api/v1/permissions/matrix", "", "")
	matrix := decode[struct {
		Rows []struct {
			GroupID       string `json:"group_id"`
			AgentsEnabled int    `json:"agents_enabled"`
		} `json:"rows"`
	}](t, body)
	require.Len(t, matrix.Rows, 3)
	assert.Equal(t, "r3", matrix.Rows[2].GroupID)
	assert.Equal(t, 2, matrix.Rows[2].AgentsEnabled)

	status, _ = do(t, srv, http.MethodPatch, "/api/v1/permissions/groups/r3/robot/a2", "", "")
	assert.Equal(t, 400, status)
	status, _ = do(t, srv, http.MethodPatch, "/api/v1/permissions/groups/r9/agent/a2", "", "")
	assert.Equal(t, 404, status)
}

func TestGrouping_Endpoints(t *testing.T) {
	srv := newTestServer(t)

	_, body := do(t, srv, http.MethodGet, "/api/v1/instructions/grouped?include_empty=true", "", "")
	groups := decode[[]struct {
		Key   string `json:"key"`
		Count int    `json:"count"`
	}](t, body)
	require.Len(t, groups, 4)
	assert.Equal(t, "s3", groups[2].Key)
	assert.Zero(t, groups[2].Count)

	_, body = do(t, srv, http.MethodGet, "/api/v1/mappings/grouped?by=user", "", "")
	assert.Len(t, decode[[]map[string]any](t, body), 4)

	status, _ := do(t, srv, http.MethodGet, "/api/v1/mappings/grouped?by=role", "", "")
	assert.Equal(t, 400, status)
}

func TestVersions_Endpoints(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodPost, "/api/v1/instructions/i1/versions", `{"version":"1.3.0","changes":"추가"}`, "")
	require.Equal(t, 201, status, string(body))

	status, _ = do(t, srv, http.MethodPost, "/api/v1/instructions/i1/versions", `{"version":"1.3.0"}`, "")
	assert.Equal(t, 400, status)

	_, body = do(t, srv, http.MethodGet, "/api/v1/instructions/i1/versions", "", "")
	history := decode[struct {
		CurrentVersion string           `json:"current_version"`
		InSync         bool             `json:"in_sync"`
		Versions       []map[string]any `json:"versions"`
	}](t, body)
	assert.Equal(t, "1.3.0", history.CurrentVersion)
	assert.True(t, history.InSync)
	assert.Len(t, history.Versions, 4)
}

func TestWorkspaces_Endpoints(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodGet, "/api/v1/workspaces/unknown", "", "")
	require.Equal(t, 200, status)
	assert.Equal(t, false, decode[map[string]any](t, body)["known"])

	status, body = do(t, srv, http.MethodPost, "/api/v1/workspaces/sop/messages", `{"content":"진행 중 장애 알려줘"}`, "")
	require.Equal(t, 201, status, string(body))

	status, _ = do(t, srv, http.MethodPost, "/api/v1/workspaces/unknown/messages", `{"content":"hi"}`, "")
	assert.Equal(t, 404, status)

	_, body = do(t, srv, http.MethodGet, "/api/v1/workspaces/sop/messages", "", "")
	assert.Len(t, decode[[]map[string]any](t, body), 2)
}

func TestMetrics_CountsMutations(t *testing.T) {
	srv := newTestServer(t)

	do(t, srv, http.MethodPatch, "/api/v1/users/u4/active", "", "")

	status, body := do(t, srv, http.MethodGet, "/metrics", "", "")
	require.Equal(t, 200, status)
	assert.Contains(t, string(body), `aiworker_console_record_mutations_total{action="toggled",entity="user"} 1`)
	assert.Contains(t, string(body), "aiworker_console_http_requests_total")
}

func TestDashboard_Stats(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodGet, "/api/v1/dashboard/stats", "", "")
	require.Equal(t, 200, status)
	stats := decode[map[string]any](t, body)
	assert.Equal(t, float64(3), stats["permission_groups"])
}

func TestAgents_IDsSurviveLaterRequests(t *testing.T) {
	srv := newTestServer(t)

	status, _ := do(t, srv, http.MethodPatch, "/api/v1/agents/a3/publish", "", "")
	require.Equal(t, 200, status)

	status, _ = do(t, srv, http.MethodPatch, "/api/v1/agents/zz/publish", "", "")
	assert.Equal(t, 404, status)
	status, _ = do(t, srv, http.MethodPut, "/api/v1/agents/zz", `{"name":"x"}`, "")
	assert.Equal(t, 404, status)

	_, body := do(t, srv, http.MethodGet, "/api/v1/agents", "", "")
	agents := decode[[]struct {
		ID          string `json:"id"`
		IsPublished bool   `json:"is_published"`
	}](t, body)
	require.Len(t, agents, 3)
	assert.Equal(t, "a1", agents[0].ID)
	assert.Equal(t, "a2", agents[1].ID)
	assert.Equal(t, "a3", agents[2].ID)
	assert.True(t, agents[2].IsPublished)
}

func TestPermissions_CellKeysSurviveLaterRequests(t *testing.T) {
	srv := newTestServer(t)

	status, _ := do(t, srv, http.MethodPatch, "/api/v1/permissions/groups/r3/agent/a2", "", "")
	require.Equal(t, 200, status)
	status, _ = do(t, srv, http.MethodPatch, "/api/v1/permissions/groups/r9/agent/a1", "", "")
	assert.Equal(t, 404, status)

	_, body := do(t, srv, http.MethodGet, "/api/v1/permissions/groups/r3", "", "")
	group := decode[struct {
		ID               string          `json:"id"`
		AgentPermissions map[string]bool `json:"agent_permissions"`
	}](t, body)
	assert.Equal(t, "r3", group.ID)
	assert.True(t, group.AgentPermissions["a2"])
	for key := range group.AgentPermissions {
		assert.Contains(t, []string{"a1", "a2", "a3"}, key)
	}
}

func TestWorkspaces_MessageKindSurvivesLaterRequests(t *testing.T) {
	srv := newTestServer(t)

	status, _ := do(t, srv, http.MethodPost, "/api/v1/workspaces/sop/messages", `{"content":"hello"}`, "")
	require.Equal(t, 201, status)
	do(t, srv, http.MethodGet, "/api/v1/workspaces/its/messages", "", "")

	_, body := do(t, srv, http.MethodGet, "/api/v1/workspaces/sop/messages", "", "")
	assert.Len(t, decode[[]map[string]any](t, body), 2)
}

func TestWebSocket_RequiresUpgrade(t *testing.T) {
	srv := newTestServer(t)

	status, _ := do(t, srv, http.MethodGet, "/ws", "", "")
	assert.Equal(t, http.StatusUpgradeRequired, status)
}
