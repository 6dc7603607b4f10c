package model

// AgentStep is one stage of an agent workflow
type AgentStep struct {
	Order       int    `json:"order"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// Agent is a named automated workflow with steps, tools, instructions and a publish state
type Agent struct {
	BaseModel
	Name           string      `gorm:"type:varchar(200);not null" json:"name" validate:"required"`
	Description    string      `gorm:"type:text" json:"description"`
	Kind           AgentKind   `gorm:"type:varchar(30)" json:"kind" validate:"omitempty,oneof=its sop monitoring db report change infra biz"`
	Steps          []AgentStep `gorm:"type:text;serializer:json" json:"steps" validate:"dive"`
	Tools          []string    `gorm:"type:text;serializer:json" json:"tools"`
	InstructionIDs []string    `gorm:"type:text;serializer:json" json:"instruction_ids"`
	IsPublished    bool        `json:"is_published"`
	CurrentVersion string      `gorm:"type:varchar(30)" json:"current_version"`
	Versions       []Version   `gorm:"type:text;serializer:json" json:"versions"`
}

var DefaultAgents = []Agent{
	{
		BaseModel:   seeded("a1", "김관리", date(2024, 1, 18), date(2024, 3, 5)),
		Name:        "ITS 티켓 분류 Agent",
		Description: "접수된 티켓을 자동으로 분류하고 담당 그룹을 배정합니다",
		Kind:        AgentITS,
		Steps: []AgentStep{
			{Order: 1, Name: "티켓 수집", Description: "신규 티켓 조회"},
			{Order: 2, Name: "분류", Description: "분류 기준 지침에 따라 우선순위 판단"},
			{Order: 3, Name: "배정", Description: "담당 그룹 지정 및 알림"},
		},
		Tools:          []string{"jira", "slack"},
		InstructionIDs: []string{"i3"},
		IsPublished:    true,
		CurrentVersion: "2.1.0",
		Versions: []Version{
			{Version: "2.1.0", Changes: "우선순위 판단 기준 보완", UpdatedAt: date(2024, 3, 5), UpdatedBy: "김관리"},
			{Version: "2.0.0", Changes: "담당 그룹 자동 배정 추가", UpdatedAt: date(2024, 2, 10), UpdatedBy: "김관리"},
			{Version: "1.0.0", Changes: "최초 등록", UpdatedAt: date(2024, 1, 18), UpdatedBy: "김관리"},
		},
	},
	{
		BaseModel:   seeded("a2", "이운영", date(2024, 1, 25), date(2024, 2, 27)),
		Name:        "SOP 장애 대응 Agent",
		Description: "장애 발생 시 표준 운영 절차에 따라 초동 조치를 수행합니다",
		Kind:        AgentSOP,
		Steps: []AgentStep{
			{Order: 1, Name: "장애 감지", Description: "모니터링 알림 수신"},
			{Order: 2, Name: "절차 선택", Description: "유형별 SOP 선택"},
			{Order: 3, Name: "초동 조치", Description: "재시작 및 전파"},
		},
		Tools:          []string{"grafana", "ssh", "slack"},
		IsPublished:    true,
		CurrentVersion: "1.3.0",
		Versions: []Version{
			{Version: "1.3.0", Changes: "전파 대상 확대", UpdatedAt: date(2024, 2, 27), UpdatedBy: "이운영"},
			{Version: "1.0.0", Changes: "최초 등록", UpdatedAt: date(2024, 1, 25), UpdatedBy: "이운영"},
		},
	},
	{
		BaseModel:   seeded("a3", "이운영", date(2024, 2, 14), date(2024, 2, 14)),
		Name:        "DB 백업 Agent",
		Description: "데이터베이스 백업 상태를 점검하고 결과 리포트를 생성합니다",
		Kind:        AgentDatabase,
		Steps: []AgentStep{
			{Order: 1, Name: "백업 목록 조회", Description: "전일 백업 작업 확인"},
			{Order: 2, Name: "검증", Description: "백업 파일 무결성 확인"},
		},
		Tools:          []string{"db-query", "email"},
		IsPublished:    false,
		CurrentVersion: "0.1.0",
		Versions: []Version{
			{Version: "0.1.0", Changes: "초안 작성", UpdatedAt: date(2024, 2, 14), UpdatedBy: "이운영"},
		},
	},
}
