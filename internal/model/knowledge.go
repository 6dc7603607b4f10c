package model

import "time"

type IndexStatus string

const (
	IndexIndexed  IndexStatus = "indexed"
	IndexIndexing IndexStatus = "indexing"
	IndexFailed   IndexStatus = "failed"
)

// KnowledgeBase describes a RAG document collection. The console only tracks its
// metadata, nothing is retrieved from it.
type KnowledgeBase struct {
	BaseModel
	Name           string      `gorm:"type:varchar(200);not null" json:"name" validate:"required"`
	Description    string      `gorm:"type:text" json:"description"`
	SystemID       string      `gorm:"type:varchar(64);index" json:"system_id" validate:"required"`
	Status         IndexStatus `gorm:"type:varchar(20)" json:"status" validate:"required,oneof=indexed indexing failed"`
	EmbeddingModel string      `gorm:"type:varchar(100)" json:"embedding_model"`
	DocumentCount  int         `json:"document_count" validate:"gte=0"`
	ChunkCount     int         `json:"chunk_count" validate:"gte=0"`
	UsageCount     int         `json:"usage_count" validate:"gte=0"`
	Tags           []string    `gorm:"type:text;serializer:json" json:"tags"`
	LastIndexedAt  *time.Time  `json:"last_indexed_at,omitempty"`
}

func (KnowledgeBase) TableName() string {
	return "knowledge_bases"
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

var DefaultKnowledgeBases = []KnowledgeBase{
	{
		BaseModel:      seeded("k1", "김관리", date(2024, 1, 15), date(2024, 3, 12)),
		Name:           "총무 규정집",
		Description:    "비품, 시설, 차량 관리 규정 문서 모음",
		SystemID:       "s1",
		Status:         IndexIndexed,
		EmbeddingModel: "text-embedding-3-small",
		DocumentCount:  42,
		ChunkCount:     1280,
		UsageCount:     315,
		Tags:           []string{"규정", "총무"},
		LastIndexedAt:  ptrTime(date(2024, 3, 12)),
	},
	{
		BaseModel:      seeded("k2", "이운영", date(2024, 1, 22), date(2024, 2, 28)),
		Name:           "인사 FAQ",
		Description:    "근태, 휴가, 급여 관련 자주 묻는 질문",
		SystemID:       "s2",
		Status:         IndexIndexed,
		EmbeddingModel: "text-embedding-3-small",
		DocumentCount:  18,
		ChunkCount:     410,
		UsageCount:     892,
		Tags:           []string{"FAQ", "인사"},
		LastIndexedAt:  ptrTime(date(2024, 2, 28)),
	},
	{
		BaseModel:      seeded("k3", "이운영", date(2024, 2, 10), date(2024, 3, 14)),
		Name:           "장애 처리 이력",
		Description:    "과거 ITS 장애 티켓 및 조치 내역",
		SystemID:       "s4",
		Status:         IndexIndexing,
		EmbeddingModel: "text-embedding-3-large",
		DocumentCount:  1250,
		ChunkCount:     0,
		UsageCount:     0,
		Tags:           []string{"장애", "ITS"},
	},
	{
		BaseModel:      seeded("k4", "박매니저", date(2024, 2, 25), date(2024, 2, 26)),
		Name:           "구매 계약 템플릿",
		Description:    "표준 계약서 및 발주서 양식",
		SystemID:       "s3",
		Status:         IndexFailed,
		EmbeddingModel: "text-embedding-3-small",
		DocumentCount:  7,
		ChunkCount:     0,
		UsageCount:     0,
		Tags:           []string{"구매", "계약"},
	},
}
