package model

type SystemStatus string

const (
	SystemActive      SystemStatus = "active"
	SystemMaintenance SystemStatus = "maintenance"
	SystemInactive    SystemStatus = "inactive"
)

// System is a backing IT system referenced by instructions, knowledge bases and user mappings
type System struct {
	BaseModel
	Name        string       `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Code        string       `gorm:"type:varchar(30)" json:"code" validate:"required"`
	Description string       `gorm:"type:text" json:"description"`
	Owner       string       `gorm:"type:varchar(100)" json:"owner"`
	URL         string       `gorm:"type:varchar(255)" json:"url" validate:"omitempty,url"`
	Status      SystemStatus `gorm:"type:varchar(20)" json:"status" validate:"required,oneof=active maintenance inactive"`
}

var DefaultSystems = []System{
	{
		BaseModel:   seeded("s1", "system", date(2023, 11, 1), date(2024, 1, 20)),
		Name:        "e-총무",
		Code:        "GA",
		Description: "총무 업무(비품, 시설, 차량) 신청 및 승인 시스템",
		Owner:       "경영지원팀",
		URL:         "https://ga.aiworker.local",
		Status:      SystemActive,
	},
	{
		BaseModel:   seeded("s2", "system", date(2023, 11, 1), date(2024, 2, 14)),
		Name:        "e-인사",
		Code:        "HR",
		Description: "인사, 근태, 급여 관리 시스템",
		Owner:       "인사팀",
		URL:         "https://hr.aiworker.local",
		Status:      SystemActive,
	},
	{
		BaseModel:   seeded("s3", "system", date(2023, 12, 5), date(2024, 3, 1)),
		Name:        "e-구매",
		Code:        "PUR",
		Description: "구매 요청, 발주, 입고 처리 시스템",
		Owner:       "구매팀",
		URL:         "https://pur.aiworker.local",
		Status:      SystemMaintenance,
	},
	{
		BaseModel:   seeded("s4", "system", date(2024, 1, 8), date(2024, 1, 8)),
		Name:        "ITS",
		Code:        "ITS",
		Description: "IT 서비스 요청 및 장애 티켓 관리 시스템",
		Owner:       "IT운영팀",
		URL:         "https://its.aiworker.local",
		Status:      SystemActive,
	},
}
