package model

// Instruction is a versioned Markdown document attached to one system
type Instruction struct {
	BaseModel
	Title          string        `gorm:"type:varchar(200);not null" json:"title" validate:"required"`
	Description    string        `gorm:"type:text" json:"description"`
	SystemID       string        `gorm:"type:varchar(64);index" json:"system_id" validate:"required"`
	Content        string        `gorm:"type:text" json:"content"`
	Status         PublishStatus `gorm:"type:varchar(20)" json:"status" validate:"required,oneof=published draft"`
	CurrentVersion string        `gorm:"type:varchar(30)" json:"current_version"`
	Versions       []Version     `gorm:"type:text;serializer:json" json:"versions"`
}

var DefaultInstructions = []Instruction{
	{
		BaseModel:      seeded("i1", "김관리", date(2024, 1, 12), date(2024, 3, 10)),
		Title:          "비품 신청 처리 지침",
		Description:    "e-총무 비품 신청 건의 검토 및 승인 절차",
		SystemID:       "s1",
		Content:        "# 비품 신청 처리\n\n1. 신청 부서 예산 잔액 확인\n2. 동일 품목 재고 확인\n3. 승인 후 구매팀 이관",
		Status:         StatusPublished,
		CurrentVersion: "1.2.0",
		Versions:       []Version{
			{Version: "1.2.0", Content: "# 비품 신청 처리\n\n1. 신청 부서 예산 잔액 확인\n2. 동일 품목 재고 확인\n3. 승인 후 구매팀 이관", UpdatedAt: date(2024, 3, 10), UpdatedBy: "김관리"},
			{Version: "1.1.0", Content: "# 비품 신청 처리\n\n1. 신청 부서 예산 잔액 확인\n2. 승인 후 구매팀 이관", UpdatedAt: date(2024, 2, 2), UpdatedBy: "김관리"},
			{Version: "1.0.0", Content: "# 비품 신청 처리\n\n1. 승인 후 구매팀 이관", UpdatedAt: date(2024, 1, 12), UpdatedBy: "김관리"},
		},
	},
	{
		BaseModel:      seeded("i2", "이운영", date(2024, 1, 20), date(2024, 2, 18)),
		Title:          "근태 정정 요청 응대",
		Description:    "e-인사 근태 정정 문의에 대한 답변 가이드",
		SystemID:       "s2",
		Content:        "# 근태 정정\n\n- 정정 사유 확인\n- 팀장 승인 여부 확인",
		Status:         StatusPublished,
		CurrentVersion: "1.1.0",
		Versions:       []Version{
			{Version: "1.1.0", Content: "# 근태 정정\n\n- 정정 사유 확인\n- 팀장 승인 여부 확인", UpdatedAt: date(2024, 2, 18), UpdatedBy: "이운영"},
			{Version: "1.0.0", Content: "# 근태 정정\n\n- 정정 사유 확인", UpdatedAt: date(2024, 1, 20), UpdatedBy: "이운영"},
		},
	},
	{
		BaseModel:      seeded("i3", "이운영", date(2024, 2, 5), date(2024, 2, 5)),
		Title:          "장애 티켓 분류 기준",
		Description:    "ITS 티켓 우선순위 및 담당 그룹 분류 규칙",
		SystemID:       "s4",
		Content:        "# 티켓 분류\n\n| 등급 | 기준 |\n|---|---|\n| P1 | 전사 영향 |\n| P2 | 부서 영향 |",
		Status:         StatusDraft,
		CurrentVersion: "0.9.0",
		Versions:       []Version{
			{Version: "0.9.0", Content: "# 티켓 분류\n\n| 등급 | 기준 |\n|---|---|\n| P1 | 전사 영향 |\n| P2 | 부서 영향 |", UpdatedAt: date(2024, 2, 5), UpdatedBy: "이운영"},
		},
	},
	{
		BaseModel:      seeded("i4", "김관리", date(2024, 2, 20), date(2024, 3, 1)),
		Title:          "시설 보수 요청 안내",
		Description:    "e-총무 시설 보수 요청 접수 시 확인 항목",
		SystemID:       "s1",
		Content:        "# 시설 보수\n\n- 위치 및 사진 첨부 확인\n- 긴급 여부 판단",
		Status:         StatusDraft,
		CurrentVersion: "1.0.0",
		Versions:       []Version{
			{Version: "1.0.0", Content: "# 시설 보수\n\n- 위치 및 사진 첨부 확인\n- 긴급 여부 판단", UpdatedAt: date(2024, 3, 1), UpdatedBy: "김관리"},
		},
	},
}
