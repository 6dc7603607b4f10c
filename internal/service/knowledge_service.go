package service

import (
	"fmt"
	"time"

	"ai-worker-console/internal/model"
	"ai-worker-console/internal/query"
	"ai-worker-console/internal/repository"
	"ai-worker-console/internal/ws"
	"ai-worker-console/pkg/validator"

	"github.com/samber/lo"
)

type KnowledgeService interface {
	ListKnowledge(opts DocumentListOptions) ([]model.KnowledgeBase, error)
	GroupKnowledge(opts DocumentListOptions, includeEmpty bool) ([]query.Group[model.KnowledgeBase], error)
	GetKnowledge(id string) (*model.KnowledgeBase, error)
	CreateKnowledge(req *KnowledgeRequest, actor string) (*model.KnowledgeBase, error)
	UpdateKnowledge(id string, req *KnowledgeRequest, actor string) (*model.KnowledgeBase, error)
	DeleteKnowledge(id, actor string) error
	GetStats() (*KnowledgeStats, error)
}

type KnowledgeRequest struct {
	Name           string   `json:"name" validate:"required"`
	Description    string   `json:"description"`
	SystemID       string   `json:"system_id" validate:"required"`
	EmbeddingModel string   `json:"embedding_model"`
	DocumentCount  int      `json:"document_count" validate:"gte=0"`
	Tags           []string `json:"tags"`
}

type KnowledgeStats struct {
	Total          int `json:"total"`
	Indexed        int `json:"indexed"`
	Indexing       int `json:"indexing"`
	Failed         int `json:"failed"`
	TotalDocuments int `json:"total_documents"`
	TotalUsage     int `json:"total_usage"`
}

type knowledgeService struct {
	knowledgeRepo repository.Store[model.KnowledgeBase]
	systemRepo    repository.Store[model.System]
	bus           *ws.Bus
}

func NewKnowledgeService(knowledgeRepo repository.Store[model.KnowledgeBase], systemRepo repository.Store[model.System], bus *ws.Bus) KnowledgeService {
	return &knowledgeService{
		knowledgeRepo: knowledgeRepo,
		systemRepo:    systemRepo,
		bus:           bus,
	}
}

func (s *knowledgeService) ListKnowledge(opts DocumentListOptions) ([]model.KnowledgeBase, error) {
	bases, err := s.knowledgeRepo.List()
	if err != nil {
		return nil, err
	}
	return query.Apply(bases,
		query.Search(opts.Query, func(k model.KnowledgeBase) []string { return []string{k.Name, k.Description} }),
		query.Category(opts.SystemID, func(k model.KnowledgeBase) string { return k.SystemID }),
		query.Category(opts.Status, func(k model.KnowledgeBase) string { return string(k.Status) }),
	), nil
}

func (s *knowledgeService) GroupKnowledge(opts DocumentListOptions, includeEmpty bool) ([]query.Group[model.KnowledgeBase], error) {
	bases, err := s.ListKnowledge(opts)
	if err != nil {
		return nil, err
	}
	systems, err := s.systemRepo.List()
	if err != nil {
		return nil, err
	}
	groups := groupBySystem(bases, systems, func(k model.KnowledgeBase) string { return k.SystemID })
	if !includeEmpty {
		groups = query.NonEmpty(groups)
	}
	return groups, nil
}

func (s *knowledgeService) GetKnowledge(id string) (*model.KnowledgeBase, error) {
	base, err := s.knowledgeRepo.Get(id)
	if err != nil {
		return nil, notFound(err, ErrKnowledgeNotFound)
	}
	return base, nil
}

// CreateKnowledge registers a collection; it starts in the indexing state
func (s *knowledgeService) CreateKnowledge(req *KnowledgeRequest, actor string) (*model.KnowledgeBase, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if _, err := s.systemRepo.Get(req.SystemID); err != nil {
		return nil, notFound(err, ErrSystemNotFound)
	}

	base := model.KnowledgeBase{
		Name:           req.Name,
		Description:    req.Description,
		SystemID:       req.SystemID,
		Status:         model.IndexIndexing,
		EmbeddingModel: req.EmbeddingModel,
		DocumentCount:  req.DocumentCount,
		Tags:           lo.Uniq(req.Tags),
	}
	base.StampCreated(actor, time.Now())

	created, err := s.knowledgeRepo.Add(base)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ws.NewEvent(ws.EntityKnowledge, ws.ActionCreated, created.ID, actor,
		fmt.Sprintf("%s registered knowledge base '%s'", actor, created.Name)))
	return created, nil
}

func (s *knowledgeService) UpdateKnowledge(id string, req *KnowledgeRequest, actor string) (*model.KnowledgeBase, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if _, err := s.systemRepo.Get(req.SystemID); err != nil {
		return nil, notFound(err, ErrSystemNotFound)
	}

	updated, err := s.knowledgeRepo.Update(id, func(k *model.KnowledgeBase) error {
		k.Name = req.Name
		k.Description = req.Description
		k.SystemID = req.SystemID
		k.EmbeddingModel = req.EmbeddingModel
		k.DocumentCount = req.DocumentCount
		k.Tags = lo.Uniq(req.Tags)
		k.StampUpdated(actor, time.Now())
		return nil
	})
	if err != nil {
		return nil, notFound(err, ErrKnowledgeNotFound)
	}

	s.bus.Publish(ws.NewEvent(ws.EntityKnowledge, ws.ActionUpdated, id, actor,
		fmt.Sprintf("%s updated knowledge base '%s'", actor, updated.Name)))
	return updated, nil
}

func (s *knowledgeService) DeleteKnowledge(id, actor string) error {
	removed, err := s.knowledgeRepo.Remove(id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrKnowledgeNotFound
	}

	s.bus.Publish(ws.NewEvent(ws.EntityKnowledge, ws.ActionDeleted, id, actor,
		fmt.Sprintf("%s deleted knowledge base %s", actor, id)))
	return nil
}

func (s *knowledgeService) GetStats() (*KnowledgeStats, error) {
	bases, err := s.knowledgeRepo.List()
	if err != nil {
		return nil, err
	}
	byStatus := lo.CountValuesBy(bases, func(k model.KnowledgeBase) model.IndexStatus { return k.Status })
	return &KnowledgeStats{
		Total:          len(bases),
		Indexed:        byStatus[model.IndexIndexed],
		Indexing:       byStatus[model.IndexIndexing],
		Failed:         byStatus[model.IndexFailed],
		TotalDocuments: lo.SumBy(bases, func(k model.KnowledgeBase) int { return k.DocumentCount }),
		TotalUsage:     lo.SumBy(bases, func(k model.KnowledgeBase) int { return k.UsageCount }),
	}, nil
}
