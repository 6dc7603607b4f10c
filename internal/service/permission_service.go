package service

import (
	"fmt"
	"log"
	"maps"
	"time"

	"ai-worker-console/internal/model"
	"ai-worker-console/internal/query"
	"ai-worker-console/internal/repository"
	"ai-worker-console/internal/ws"
	"ai-worker-console/pkg/validator"

	"github.com/samber/lo"
)

type PermissionService interface {
	ListGroups(search string) ([]model.PermissionGroup, error)
	GetGroup(id string) (*model.PermissionGroup, error)
	CreateGroup(req *PermissionGroupRequest, actor string) (*model.PermissionGroup, error)
	DeleteGroup(id, actor string) error
	Toggle(groupID string, kind model.PermissionKind, itemID, actor string) (*model.PermissionGroup, error)
	GetMatrix() (*PermissionMatrix, error)
	GetTools() []model.Tool
	HandleEvent(e ws.Event)
}

type PermissionGroupRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	MemberCount int      `json:"member_count" validate:"gte=0"`
	Agents      []string `json:"agents"` // granted agent ids
	Tools       []string `json:"tools"`  // granted tool ids
}

type MatrixItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MatrixRow is one role with every known cell filled in
type MatrixRow struct {
	GroupID       string          `json:"group_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	MemberCount   int             `json:"member_count"`
	Agents        map[string]bool `json:"agents"`
	Tools         map[string]bool `json:"tools"`
	AgentsEnabled int             `json:"agents_enabled"`
	ToolsEnabled  int             `json:"tools_enabled"`
}

type PermissionMatrix struct {
	Agents []MatrixItem `json:"agents"`
	Tools  []MatrixItem `json:"tools"`
	Rows   []MatrixRow  `json:"rows"`
}

type permissionService struct {
	groupRepo repository.Store[model.PermissionGroup]
	agentRepo repository.Store[model.Agent]
	tools     []model.Tool
	bus       *ws.Bus
}

func NewPermissionService(groupRepo repository.Store[model.PermissionGroup], agentRepo repository.Store[model.Agent], tools []model.Tool, bus *ws.Bus) PermissionService {
	return &permissionService{
		groupRepo: groupRepo,
		agentRepo: agentRepo,
		tools:     tools,
		bus:       bus,
	}
}

func (s *permissionService) ListGroups(search string) ([]model.PermissionGroup, error) {
	groups, err := s.groupRepo.List()
	if err != nil {
		return nil, err
	}
	return query.Apply(groups,
		query.Search(search, func(g model.PermissionGroup) []string { return []string{g.Name, g.Description} }),
	), nil
}

func (s *permissionService) GetGroup(id string) (*model.PermissionGroup, error) {
	group, err := s.groupRepo.Get(id)
	if err != nil {
		return nil, notFound(err, ErrGroupNotFound)
	}
	return group, nil
}

func (s *permissionService) CreateGroup(req *PermissionGroupRequest, actor string) (*model.PermissionGroup, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	agentIDs, err := s.knownIDs(model.PermissionAgent)
	if err != nil {
		return nil, err
	}
	toolIDs, err := s.knownIDs(model.PermissionTool)
	if err != nil {
		return nil, err
	}
	if unknown, ok := lo.Find(req.Agents, func(id string) bool { return !lo.Contains(agentIDs, id) }); ok {
		return nil, fmt.Errorf("%w: agent %s", ErrUnknownItem, unknown)
	}
	if unknown, ok := lo.Find(req.Tools, func(id string) bool { return !lo.Contains(toolIDs, id) }); ok {
		return nil, fmt.Errorf("%w: tool %s", ErrUnknownItem, unknown)
	}

	group := model.PermissionGroup{
		Name:             req.Name,
		Description:      req.Description,
		MemberCount:      req.MemberCount,
		AgentPermissions: grantSet(req.Agents),
		ToolPermissions:  grantSet(req.Tools),
	}
	group.StampCreated(actor, time.Now())

	created, err := s.groupRepo.Add(group)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ws.NewEvent(ws.EntityPermission, ws.ActionCreated, created.ID, actor,
		fmt.Sprintf("%s created permission group '%s'", actor, created.Name)))
	return created, nil
}

func (s *permissionService) DeleteGroup(id, actor string) error {
	removed, err := s.groupRepo.Remove(id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrGroupNotFound
	}

	s.bus.Publish(ws.NewEvent(ws.EntityPermission, ws.ActionDeleted, id, actor,
		fmt.Sprintf("%s deleted permission group %s", actor, id)))
	return nil
}

// Toggle flips the (group, item) cell and leaves every other cell untouched
func (s *permissionService) Toggle(groupID string, kind model.PermissionKind, itemID, actor string) (*model.PermissionGroup, error) {
	known, err := s.knownIDs(kind)
	if err != nil {
		return nil, err
	}
	if !lo.Contains(known, itemID) {
		return nil, fmt.Errorf("%w: %s %s", ErrUnknownItem, kind, itemID)
	}

	var enabled bool
	updated, err := s.groupRepo.Update(groupID, func(g *model.PermissionGroup) error {
		grants := maps.Clone(g.Grants(kind))
		if grants == nil {
			grants = map[string]bool{}
		}
		enabled = !grants[itemID]
		grants[itemID] = enabled
		g.SetGrants(kind, grants)
		return nil
	})
	if err != nil {
		return nil, notFound(err, ErrGroupNotFound)
	}

	s.bus.Publish(ws.NewEvent(ws.EntityPermission, ws.ActionToggled, groupID, actor,
		fmt.Sprintf("%s set %s %s to %t for '%s'", actor, kind, itemID, enabled, updated.Name)))
	return updated, nil
}

// GetMatrix renders every role against every known agent and tool, absent cells as false
func (s *permissionService) GetMatrix() (*PermissionMatrix, error) {
	agents, err := s.agentRepo.List()
	if err != nil {
		return nil, err
	}
	groups, err := s.groupRepo.List()
	if err != nil {
		return nil, err
	}

	agentIDs := lo.Map(agents, func(a model.Agent, _ int) string { return a.ID })
	toolIDs := lo.Map(s.tools, func(t model.Tool, _ int) string { return t.ID })

	rows := lo.Map(groups, func(g model.PermissionGroup, _ int) MatrixRow {
		return MatrixRow{
			GroupID:       g.ID,
			Name:          g.Name,
			Description:   g.Description,
			MemberCount:   g.MemberCount,
			Agents:        fillCells(g.AgentPermissions, agentIDs),
			Tools:         fillCells(g.ToolPermissions, toolIDs),
			AgentsEnabled: CountEnabled(g.AgentPermissions, agentIDs),
			ToolsEnabled:  CountEnabled(g.ToolPermissions, toolIDs),
		}
	})

	return &PermissionMatrix{
		Agents: lo.Map(agents, func(a model.Agent, _ int) MatrixItem { return MatrixItem{ID: a.ID, Name: a.Name} }),
		Tools:  lo.Map(s.tools, func(t model.Tool, _ int) MatrixItem { return MatrixItem{ID: t.ID, Name: t.Name} }),
		Rows:   rows,
	}, nil
}

func (s *permissionService) GetTools() []model.Tool {
	return s.tools
}

// HandleEvent drops the cells of a deleted agent from every group
func (s *permissionService) HandleEvent(e ws.Event) {
	if e.Entity != ws.EntityAgent || e.Action != ws.ActionDeleted {
		return
	}
	groups, err := s.groupRepo.List()
	if err != nil {
		log.Printf("Warning: failed to load permission groups: %v", err)
		return
	}
	for _, g := range groups {
		if _, ok := g.AgentPermissions[e.ID]; !ok {
			continue
		}
		_, err := s.groupRepo.Update(g.ID, func(group *model.PermissionGroup) error {
			grants := maps.Clone(group.AgentPermissions)
			delete(grants, e.ID)
			group.AgentPermissions = grants
			return nil
		})
		if err != nil {
			log.Printf("Warning: failed to drop agent %s from group %s: %v", e.ID, g.ID, err)
		}
	}
}

// CountEnabled counts the granted cells among known item ids
func CountEnabled(grants map[string]bool, known []string) int {
	return lo.CountBy(known, func(id string) bool { return grants[id] })
}

func (s *permissionService) knownIDs(kind model.PermissionKind) ([]string, error) {
	switch kind {
	case model.PermissionAgent:
		agents, err := s.agentRepo.List()
		if err != nil {
			return nil, err
		}
		return lo.Map(agents, func(a model.Agent, _ int) string { return a.ID }), nil
	case model.PermissionTool:
		return lo.Map(s.tools, func(t model.Tool, _ int) string { return t.ID }), nil
	}
	return nil, ErrUnknownKind
}

func fillCells(grants map[string]bool, known []string) map[string]bool {
	return lo.SliceToMap(known, func(id string) (string, bool) { return id, grants[id] })
}

func grantSet(ids []string) map[string]bool {
	return lo.SliceToMap(ids, func(id string) (string, bool) { return id, true })
}
