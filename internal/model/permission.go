package model

// PermissionKind selects which column family of the permission matrix a cell belongs to
type PermissionKind string

const (
	PermissionAgent PermissionKind = "agent"
	PermissionTool  PermissionKind = "tool"
)

// Tool is an integration an agent may call
type Tool struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DefaultTools is the fixed tool catalog of the permission matrix
var DefaultTools = []Tool{
	{ID: "jira", Name: "Jira", Description: "티켓 조회 및 생성"},
	{ID: "slack", Name: "Slack", Description: "채널 메시지 전송"},
	{ID: "email", Name: "Email", Description: "메일 발송"},
	{ID: "db-query", Name: "DB Query", Description: "읽기 전용 SQL 실행"},
	{ID: "ssh", Name: "SSH", Description: "서버 명령 실행"},
	{ID: "grafana", Name: "Grafana", Description: "대시보드 및 알림 조회"},
	{ID: "confluence", Name: "Confluence", Description: "문서 검색"},
	{ID: "k8s", Name: "Kubernetes", Description: "워크로드 상태 조회"},
}

// PermissionGroup is a role with independent boolean grants over agents and tools.
// A missing key reads as false.
type PermissionGroup struct {
	BaseModel
	Name             string          `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Description      string          `gorm:"type:text" json:"description"`
	MemberCount      int             `json:"member_count" validate:"gte=0"`
	AgentPermissions map[string]bool `gorm:"type:text;serializer:json" json:"agent_permissions"`
	ToolPermissions  map[string]bool `gorm:"type:text;serializer:json" json:"tool_permissions"`
}

// Grants returns the cell map for kind, nil for an unknown kind
func (g *PermissionGroup) Grants(kind PermissionKind) map[string]bool {
	switch kind {
	case PermissionAgent:
		return g.AgentPermissions
	case PermissionTool:
		return g.ToolPermissions
	}
	return nil
}

// SetGrants replaces the cell map for kind
func (g *PermissionGroup) SetGrants(kind PermissionKind, grants map[string]bool) {
	switch kind {
	case PermissionAgent:
		g.AgentPermissions = grants
	case PermissionTool:
		g.ToolPermissions = grants
	}
}

var DefaultPermissionGroups = []PermissionGroup{
	{
		BaseModel:   seeded("r1", "system", date(2024, 1, 5), date(2024, 2, 1)),
		Name:        "관리자",
		Description: "모든 Agent와 도구 사용 가능",
		MemberCount: 2,
		AgentPermissions: map[string]bool{
			"a1": true, "a2": true, "a3": true,
		},
		ToolPermissions: map[string]bool{
			"jira": true, "slack": true, "email": true, "db-query": true,
			"ssh": true, "grafana": true, "confluence": true, "k8s": true,
		},
	},
	{
		BaseModel:   seeded("r2", "system", date(2024, 1, 5), date(2024, 2, 20)),
		Name:        "운영자",
		Description: "운영 Agent와 조회성 도구 사용",
		MemberCount: 5,
		AgentPermissions: map[string]bool{
			"a1": true, "a2": true,
		},
		ToolPermissions: map[string]bool{
			"jira": true, "slack": true, "grafana": true,
		},
	},
	{
		BaseModel:   seeded("r3", "system", date(2024, 1, 5), date(2024, 1, 5)),
		Name:        "일반 사용자",
		Description: "티켓 Agent만 사용",
		MemberCount: 30,
		AgentPermissions: map[string]bool{
			"a1": true, "a2": false,
		},
		ToolPermissions: map[string]bool{
			"slack": true,
		},
	},
}
