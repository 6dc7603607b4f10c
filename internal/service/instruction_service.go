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

type InstructionService interface {
	ListInstructions(opts DocumentListOptions) ([]model.Instruction, error)
	GroupInstructions(opts DocumentListOptions, includeEmpty bool) ([]query.Group[model.Instruction], error)
	GetInstruction(id string) (*model.Instruction, error)
	CreateInstruction(req *InstructionRequest, actor string) (*model.Instruction, error)
	UpdateInstruction(id string, req *InstructionRequest, actor string) (*model.Instruction, error)
	DeleteInstruction(id, actor string) error
	TogglePublish(id, actor string) (*model.Instruction, error)
	GetVersions(id string) (*VersionHistory, error)
	PublishVersion(id string, req *PublishVersionRequest, actor string) (*model.Instruction, error)
}

// DocumentListOptions filters instructions and knowledge bases
type DocumentListOptions struct {
	Query    string
	SystemID string
	Status   string
}

type InstructionRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	SystemID    string `json:"system_id" validate:"required"`
	Content     string `json:"content"`
}

type instructionService struct {
	instructionRepo repository.Store[model.Instruction]
	systemRepo      repository.Store[model.System]
	bus             *ws.Bus
}

func NewInstructionService(instructionRepo repository.Store[model.Instruction], systemRepo repository.Store[model.System], bus *ws.Bus) InstructionService {
	return &instructionService{
		instructionRepo: instructionRepo,
		systemRepo:      systemRepo,
		bus:             bus,
	}
}

func (s *instructionService) ListInstructions(opts DocumentListOptions) ([]model.Instruction, error) {
	instructions, err := s.instructionRepo.List()
	if err != nil {
		return nil, err
	}
	return query.Apply(instructions,
		query.Search(opts.Query, func(i model.Instruction) []string { return []string{i.Title, i.Description} }),
		query.Category(opts.SystemID, func(i model.Instruction) string { return i.SystemID }),
		query.Category(opts.Status, func(i model.Instruction) string { return string(i.Status) }),
	), nil
}

// GroupInstructions groups the filtered list by system, in system list order
func (s *instructionService) GroupInstructions(opts DocumentListOptions, includeEmpty bool) ([]query.Group[model.Instruction], error) {
	instructions, err := s.ListInstructions(opts)
	if err != nil {
		return nil, err
	}
	systems, err := s.systemRepo.List()
	if err != nil {
		return nil, err
	}
	groups := groupBySystem(instructions, systems, func(i model.Instruction) string { return i.SystemID })
	if !includeEmpty {
		groups = query.NonEmpty(groups)
	}
	return groups, nil
}

func (s *instructionService) GetInstruction(id string) (*model.Instruction, error) {
	instruction, err := s.instructionRepo.Get(id)
	if err != nil {
		return nil, notFound(err, ErrInstructionNotFound)
	}
	return instruction, nil
}

// CreateInstruction stores a draft at version 1.0.0
func (s *instructionService) CreateInstruction(req *InstructionRequest, actor string) (*model.Instruction, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if _, err := s.systemRepo.Get(req.SystemID); err != nil {
		return nil, notFound(err, ErrSystemNotFound)
	}

	now := time.Now()
	instruction := model.Instruction{
		Title:          req.Title,
		Description:    req.Description,
		SystemID:       req.SystemID,
		Content:        req.Content,
		Status:         model.StatusDraft,
		CurrentVersion: initialVersion,
		Versions: []model.Version{
			{Version: initialVersion, Content: req.Content, UpdatedAt: now, UpdatedBy: actor},
		},
	}
	instruction.StampCreated(actor, now)

	created, err := s.instructionRepo.Add(instruction)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ws.NewEvent(ws.EntityInstruction, ws.ActionCreated, created.ID, actor,
		fmt.Sprintf("%s created instruction '%s'", actor, created.Title)))
	return created, nil
}

// UpdateInstruction edits the working copy. The version history is only
// extended through PublishVersion.
func (s *instructionService) UpdateInstruction(id string, req *InstructionRequest, actor string) (*model.Instruction, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if _, err := s.systemRepo.Get(req.SystemID); err != nil {
		return nil, notFound(err, ErrSystemNotFound)
	}

	updated, err := s.instructionRepo.Update(id, func(i *model.Instruction) error {
		i.Title = req.Title
		i.Description = req.Description
		i.SystemID = req.SystemID
		i.Content = req.Content
		i.StampUpdated(actor, time.Now())
		return nil
	})
	if err != nil {
		return nil, notFound(err, ErrInstructionNotFound)
	}

	s.bus.Publish(ws.NewEvent(ws.EntityInstruction, ws.ActionUpdated, id, actor,
		fmt.Sprintf("%s updated instruction '%s'", actor, updated.Title)))
	return updated, nil
}

func (s *instructionService) DeleteInstruction(id, actor string) error {
	removed, err := s.instructionRepo.Remove(id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrInstructionNotFound
	}

	s.bus.Publish(ws.NewEvent(ws.EntityInstruction, ws.ActionDeleted, id, actor,
		fmt.Sprintf("%s deleted instruction %s", actor, id)))
	return nil
}

// TogglePublish switches between published and draft
func (s *instructionService) TogglePublish(id, actor string) (*model.Instruction, error) {
	updated, err := s.instructionRepo.Update(id, func(i *model.Instruction) error {
		if i.Status == model.StatusPublished {
			i.Status = model.StatusDraft
		} else {
			i.Status = model.StatusPublished
		}
		return nil
	})
	if err != nil {
		return nil, notFound(err, ErrInstructionNotFound)
	}

	s.bus.Publish(ws.NewEvent(ws.EntityInstruction, ws.ActionToggled, id, actor,
		fmt.Sprintf("%s set instruction '%s' to %s", actor, updated.Title, updated.Status)))
	return updated, nil
}

func (s *instructionService) GetVersions(id string) (*VersionHistory, error) {
	instruction, err := s.GetInstruction(id)
	if err != nil {
		return nil, err
	}
	return buildHistory(instruction.ID, instruction.CurrentVersion, instruction.Versions), nil
}

// PublishVersion snapshots content (or the working copy when empty) as a new current version
func (s *instructionService) PublishVersion(id string, req *PublishVersionRequest, actor string) (*model.Instruction, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	updated, err := s.instructionRepo.Update(id, func(i *model.Instruction) error {
		content := req.Content
		if content == "" {
			content = i.Content
		}
		now := time.Now()
		versions, err := prependVersion(i.Versions, model.Version{
			Version:   req.Version,
			Content:   content,
			Changes:   req.Changes,
			UpdatedAt: now,
			UpdatedBy: actor,
		})
		if err != nil {
			return err
		}
		i.Versions = versions
		i.CurrentVersion = req.Version
		i.Content = content
		i.StampUpdated(actor, now)
		return nil
	})
	if err != nil {
		return nil, notFound(err, ErrInstructionNotFound)
	}

	s.bus.Publish(ws.NewEvent(ws.EntityInstruction, ws.ActionPublished, id, actor,
		fmt.Sprintf("%s published instruction '%s' v%s", actor, updated.Title, req.Version)))
	return updated, nil
}

// groupBySystem groups records under the systems in list order, labelled with system names
func groupBySystem[T any](items []T, systems []model.System, systemOf func(T) string) []query.Group[T] {
	keys := lo.Map(systems, func(s model.System, _ int) string { return s.ID })
	labels := lo.SliceToMap(systems, func(s model.System) (string, string) { return s.ID, s.Name })
	return query.Label(query.GroupByKeys(items, keys, systemOf), labels)
}
