package model

// AgentKind identifies an agent workspace (chat + dashboard)
type AgentKind string

const (
	AgentITS        AgentKind = "its"
	AgentSOP        AgentKind = "sop"
	AgentMonitoring AgentKind = "monitoring"
	AgentDatabase   AgentKind = "db"
	AgentReport     AgentKind = "report"
	AgentChange     AgentKind = "change"
	AgentInfra      AgentKind = "infra"
	AgentBizSupport AgentKind = "biz"
)

// AgentKinds lists every workspace in menu order
var AgentKinds = []AgentKind{
	AgentITS, AgentSOP, AgentMonitoring, AgentDatabase,
	AgentReport, AgentChange, AgentInfra, AgentBizSupport,
}

// QuickAction is a canned prompt offered in a workspace chat. Keyword triggers Reply.
type QuickAction struct {
	Label   string `json:"label"`
	Keyword string `json:"keyword"`
	Reply   string `json:"-"`
}

// WorkspaceInfo is the static description of an agent workspace
type WorkspaceInfo struct {
	Kind         AgentKind     `json:"kind"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Capabilities []string      `json:"capabilities"`
	QuickActions []QuickAction `json:"quick_actions"`
	Greeting     string        `json:"greeting"`
}

// DefaultWorkspace is served for any kind missing from WorkspaceCatalog
var DefaultWorkspace = WorkspaceInfo{
	Title:        "AI Worker",
	Description:  "범용 업무 지원 Agent",
	Capabilities: []string{"질의 응답"},
	Greeting:     "무엇을 도와드릴까요?",
}

var WorkspaceCatalog = map[AgentKind]WorkspaceInfo{
	AgentITS: {
		Kind:         AgentITS,
		Title:        "ITS 티켓 Agent",
		Description:  "IT 서비스 요청 티켓의 접수, 분류, 배정을 지원합니다",
		Capabilities: []string{"티켓 분류", "담당자 배정", "처리 현황 요약"},
		QuickActions: []QuickAction{
			{Label: "미배정 티켓 보기", Keyword: "미배정", Reply: "현재 미배정 티켓은 대기열에서 확인할 수 있습니다. 우선순위 P1 건부터 배정을 권장합니다."},
			{Label: "오늘 처리 현황", Keyword: "현황", Reply: "오늘 접수된 티켓의 처리 현황을 요약했습니다. 대시보드 통계를 확인하세요."},
		},
		Greeting: "ITS 티켓 업무를 도와드립니다.",
	},
	AgentSOP: {
		Kind:         AgentSOP,
		Title:        "SOP 장애 대응 Agent",
		Description:  "장애 유형별 표준 운영 절차를 안내하고 초동 조치를 기록합니다",
		Capabilities: []string{"SOP 검색", "초동 조치 안내", "전파 대상 안내"},
		QuickActions: []QuickAction{
			{Label: "진행 중 장애", Keyword: "장애", Reply: "진행 중인 장애 건과 적용된 SOP 단계를 확인하세요."},
			{Label: "전파 대상 확인", Keyword: "전파", Reply: "장애 등급별 전파 대상은 SOP 문서의 연락 체계를 따릅니다."},
		},
		Greeting: "장애 상황을 알려주시면 해당 SOP를 안내합니다.",
	},
	AgentMonitoring: {
		Kind:         AgentMonitoring,
		Title:        "모니터링 Agent",
		Description:  "서버와 서비스 지표를 요약하고 알림을 정리합니다",
		Capabilities: []string{"알림 요약", "지표 조회"},
		QuickActions: []QuickAction{
			{Label: "활성 알림", Keyword: "알림", Reply: "활성 알림 목록을 심각도 순으로 정리했습니다."},
		},
		Greeting: "모니터링 현황을 확인해 드립니다.",
	},
	AgentDatabase: {
		Kind:         AgentDatabase,
		Title:        "DB Agent",
		Description:  "백업, 용량, 슬로우 쿼리 현황을 점검합니다",
		Capabilities: []string{"백업 점검", "용량 추이", "슬로우 쿼리 분석"},
		QuickActions: []QuickAction{
			{Label: "백업 결과", Keyword: "백업", Reply: "전일 백업 작업 결과를 확인했습니다. 실패 건은 작업 목록에 표시됩니다."},
			{Label: "슬로우 쿼리", Keyword: "쿼리", Reply: "최근 24시간 슬로우 쿼리 상위 목록을 정리했습니다."},
		},
		Greeting: "DB 운영 점검을 도와드립니다.",
	},
	AgentReport: {
		Kind:         AgentReport,
		Title:        "리포트 Agent",
		Description:  "주간/월간 운영 리포트 초안을 작성합니다",
		Capabilities: []string{"주간 리포트", "월간 리포트"},
		QuickActions: []QuickAction{
			{Label: "주간 리포트 작성", Keyword: "주간", Reply: "이번 주 운영 지표로 주간 리포트 초안을 준비했습니다."},
		},
		Greeting: "필요한 리포트를 말씀해 주세요.",
	},
	AgentChange: {
		Kind:         AgentChange,
		Title:        "변경관리 Agent",
		Description:  "변경 요청의 영향도 검토와 일정 조율을 지원합니다",
		Capabilities: []string{"영향도 검토", "변경 일정 조회"},
		QuickActions: []QuickAction{
			{Label: "이번 주 변경 일정", Keyword: "일정", Reply: "이번 주 승인된 변경 작업 일정을 확인하세요."},
		},
		Greeting: "변경 요청 검토를 도와드립니다.",
	},
	AgentInfra: {
		Kind:         AgentInfra,
		Title:        "인프라 Agent",
		Description:  "서버, 네트워크, 클러스터 자원 현황을 조회합니다",
		Capabilities: []string{"자원 현황", "클러스터 상태"},
		QuickActions: []QuickAction{
			{Label: "클러스터 상태", Keyword: "클러스터", Reply: "클러스터 노드와 워크로드 상태를 요약했습니다."},
		},
		Greeting: "인프라 현황을 조회해 드립니다.",
	},
	AgentBizSupport: {
		Kind:         AgentBizSupport,
		Title:        "업무지원 Agent",
		Description:  "총무, 인사, 구매 시스템 사용 문의에 답변합니다",
		Capabilities: []string{"시스템 사용 안내", "규정 검색"},
		QuickActions: []QuickAction{
			{Label: "비품 신청 방법", Keyword: "비품", Reply: "비품 신청은 e-총무 > 신청 메뉴에서 진행하며 부서 예산 잔액을 먼저 확인합니다."},
		},
		Greeting: "업무 시스템 사용 문의를 도와드립니다.",
	},
}

// LookupWorkspace returns the catalog entry for kind, or DefaultWorkspace
// stamped with kind when the catalog has no entry.
func LookupWorkspace(kind AgentKind) (WorkspaceInfo, bool) {
	if info, ok := WorkspaceCatalog[kind]; ok {
		return info, true
	}
	fallback := DefaultWorkspace
	fallback.Kind = kind
	return fallback, false
}

// WorkItem is an entry on a workspace dashboard: a ticket, incident, alert, job or change
type WorkItem struct {
	BaseModel
	Kind     AgentKind `gorm:"type:varchar(30);index" json:"kind"`
	Title    string    `gorm:"type:varchar(255)" json:"title"`
	Status   string    `gorm:"type:varchar(30)" json:"status"`
	Priority string    `gorm:"type:varchar(10)" json:"priority"`
	Assignee string    `gorm:"type:varchar(100)" json:"assignee"`
	Detail   string    `gorm:"type:text" json:"detail"`
}

type ChatSender string

const (
	SenderOperator ChatSender = "operator"
	SenderAgent    ChatSender = "agent"
)

// ChatMessage is one line of a workspace chat thread
type ChatMessage struct {
	BaseModel
	Kind    AgentKind  `gorm:"type:varchar(30);index" json:"kind"`
	Sender  ChatSender `gorm:"type:varchar(20)" json:"sender"`
	Content string     `gorm:"type:text" json:"content"`
}

func workItem(id string, kind AgentKind, title, status, priority, assignee, detail string) WorkItem {
	return WorkItem{
		BaseModel: seeded(id, "system", date(2024, 3, 11), date(2024, 3, 11)),
		Kind:      kind,
		Title:     title,
		Status:    status,
		Priority:  priority,
		Assignee:  assignee,
		Detail:    detail,
	}
}

var DefaultWorkItems = []WorkItem{
	workItem("w1", AgentITS, "메일 발송 불가 문의", "open", "P2", "", "사내 메일 외부 발송 실패"),
	workItem("w2", AgentITS, "VPN 접속 오류", "in_progress", "P1", "이운영", "재택 근무자 VPN 인증 실패"),
	workItem("w3", AgentITS, "모니터 교체 요청", "resolved", "P3", "최지원", "27인치 모니터 불량"),
	workItem("w4", AgentSOP, "결제 API 응답 지연", "in_progress", "P1", "이운영", "SOP-API-02 적용, 재시작 완료 후 관찰 중"),
	workItem("w5", AgentSOP, "배치 작업 실패", "resolved", "P2", "이운영", "SOP-BATCH-01 적용"),
	workItem("w6", AgentMonitoring, "web-01 CPU 90% 초과", "firing", "P2", "", "5분 평균 92%"),
	workItem("w7", AgentMonitoring, "디스크 사용률 경고", "acknowledged", "P3", "최지원", "/data 85%"),
	workItem("w8", AgentDatabase, "ERP 전일 백업", "success", "P3", "", "소요 42분"),
	workItem("w9", AgentDatabase, "HR 전일 백업", "failed", "P1", "", "백업 대상 볼륨 용량 부족"),
	workItem("w10", AgentReport, "3월 2주차 운영 리포트", "draft", "P3", "박매니저", "티켓/장애 지표 집계"),
	workItem("w11", AgentChange, "DB 패치 적용", "approved", "P2", "최지원", "3/16 02:00 작업 예정"),
	workItem("w12", AgentChange, "방화벽 정책 변경", "requested", "P2", "", "신규 협력사 IP 허용"),
	workItem("w13", AgentInfra, "k8s 노드 증설", "in_progress", "P2", "최지원", "worker 노드 2대 추가"),
	workItem("w14", AgentBizSupport, "법인카드 한도 문의", "open", "P3", "", "e-총무 카드 한도 조회 방법"),
}
