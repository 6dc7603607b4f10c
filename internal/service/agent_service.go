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

const initialVersion = "1.0.0"

type AgentService interface {
	ListAgents(opts AgentListOptions) ([]model.Agent, error)
	GetAgent(id string) (*model.Agent, error)
	CreateAgent(req *AgentRequest, actor string) (*model.Agent, error)
	UpdateAgent(id string, req *AgentRequest, actor string) (*model.Agent, error)
	DeleteAgent(id, actor string) error
	TogglePublish(id, actor string) (*model.Agent, error)
	GetVersions(id string) (*VersionHistory, error)
	PublishVersion(id string, req *PublishVersionRequest, actor string) (*model.Agent, error)
	GetStats() (*AgentStats, error)
}

// AgentListOptions filters the agent list. Status is "published", "draft" or all.
type AgentListOptions struct {
	Query  string
	Status string
}

type AgentRequest struct {
	Name           string            `json:"name" validate:"required"`
	Description    string            `json:"description"`
	Kind           model.AgentKind   `json:"kind" validate:"omitempty,oneof=its sop monitoring db report change infra biz"`
	Steps          []model.AgentStep `json:"steps" validate:"dive"`
	Tools          []string          `json:"tools"`
	InstructionIDs []string          `json:"instruction_ids"`
	Version        string            `json:"version" validate:"omitempty,release_version"` // create only
}

type AgentStats struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Draft     int `json:"draft"`
}

type agentService struct {
	agentRepo repository.Store[model.Agent]
	bus       *ws.Bus
}

func NewAgentService(agentRepo repository.Store[model.Agent], bus *ws.Bus) AgentService {
	return &agentService{agentRepo: agentRepo, bus: bus}
}

func agentStatus(a model.Agent) string {
	if a.IsPublished {
		return string(model.StatusPublished)
	}
	return string(model.StatusDraft)
}

func (s *agentService) ListAgents(opts AgentListOptions) ([]model.Agent, error) {
	agents, err := s.agentRepo.List()
	if err != nil {
		return nil, err
	}
	return query.Apply(agents,
		query.Search(opts.Query, func(a model.Agent) []string { return []string{a.Name, a.Description} }),
		query.Category(opts.Status, agentStatus),
	), nil
}

func (s *agentService) GetAgent(id string) (*model.Agent, error) {
	agent, err := s.agentRepo.Get(id)
	if err != nil {
		return nil, notFound(err, ErrAgentNotFound)
	}
	return agent, nil
}

func (s *agentService) CreateAgent(req *AgentRequest, actor string) (*model.Agent, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	version := req.Version
	if version == "" {
		version = initialVersion
	}
	now := time.Now()

	agent := model.Agent{
		Name:           req.Name,
		Description:    req.Description,
		Kind:           req.Kind,
		Steps:          numberSteps(req.Steps),
		Tools:          lo.Uniq(req.Tools),
		InstructionIDs: lo.Uniq(req.InstructionIDs),
		IsPublished:    false,
		CurrentVersion: version,
		Versions: []model.Version{
			{Version: version, Changes: "최초 등록", UpdatedAt: now, UpdatedBy: actor},
		},
	}
	agent.StampCreated(actor, now)

	created, err := s.agentRepo.Add(agent)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ws.NewEvent(ws.EntityAgent, ws.ActionCreated, created.ID, actor,
		fmt.Sprintf("%s created agent '%s'", actor, created.Name)))
	return created, nil
}

func (s *agentService) UpdateAgent(id string, req *AgentRequest, actor string) (*model.Agent, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	updated, err := s.agentRepo.Update(id, func(a *model.Agent) error {
		a.Name = req.Name
		a.Description = req.Description
		a.Kind = req.Kind
		a.Steps = numberSteps(req.Steps)
		a.Tools = lo.Uniq(req.Tools)
		a.InstructionIDs = lo.Uniq(req.InstructionIDs)
		a.StampUpdated(actor, time.Now())
		return nil
	})
	if err != nil {
		return nil, notFound(err, ErrAgentNotFound)
	}

	s.bus.Publish(ws.NewEvent(ws.EntityAgent, ws.ActionUpdated, id, actor,
		fmt.Sprintf("%s updated agent '%s'", actor, updated.Name)))
	return updated, nil
}

func (s *agentService) DeleteAgent(id, actor string) error {
	removed, err := s.agentRepo.Remove(id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrAgentNotFound
	}

	s.bus.Publish(ws.NewEvent(ws.EntityAgent, ws.ActionDeleted, id, actor,
		fmt.Sprintf("%s deleted agent %s", actor, id)))
	return nil
}

// TogglePublish flips is_published and nothing else on the record
func (s *agentService) TogglePublish(id, actor string) (*model.Agent, error) {
	updated, err := s.agentRepo.Update(id, func(a *model.Agent) error {
		a.IsPublished = !a.IsPublished
		return nil
	})
	if err != nil {
		return nil, notFound(err, ErrAgentNotFound)
	}

	s.bus.Publish(ws.NewEvent(ws.EntityAgent, ws.ActionToggled, id, actor,
		fmt.Sprintf("%s set agent '%s' to %s", actor, updated.Name, agentStatus(*updated))))
	return updated, nil
}

func (s *agentService) GetVersions(id string) (*VersionHistory, error) {
	agent, err := s.GetAgent(id)
	if err != nil {
		return nil, err
	}
	return buildHistory(agent.ID, agent.CurrentVersion, agent.Versions), nil
}

func (s *agentService) PublishVersion(id string, req *PublishVersionRequest, actor string) (*model.Agent, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	updated, err := s.agentRepo.Update(id, func(a *model.Agent) error {
		now := time.Now()
		versions, err := prependVersion(a.Versions, model.Version{
			Version:   req.Version,
			Changes:   req.Changes,
			UpdatedAt: now,
			UpdatedBy: actor,
		})
		if err != nil {
			return err
		}
		a.Versions = versions
		a.CurrentVersion = req.Version
		a.StampUpdated(actor, now)
		return nil
	})
	if err != nil {
		return nil, notFound(err, ErrAgentNotFound)
	}

	s.bus.Publish(ws.NewEvent(ws.EntityAgent, ws.ActionPublished, id, actor,
		fmt.Sprintf("%s published agent '%s' v%s", actor, updated.Name, req.Version)))
	return updated, nil
}

func (s *agentService) GetStats() (*AgentStats, error) {
	agents, err := s.agentRepo.List()
	if err != nil {
		return nil, err
	}
	published := lo.CountBy(agents, func(a model.Agent) bool { return a.IsPublished })
	return &AgentStats{
		Total:     len(agents),
		Published: published,
		Draft:     len(agents) - published,
	}, nil
}

// numberSteps renumbers steps 1..n in the given order
func numberSteps(steps []model.AgentStep) []model.AgentStep {
	return lo.Map(steps, func(step model.AgentStep, i int) model.AgentStep {
		step.Order = i + 1
		return step
	})
}
