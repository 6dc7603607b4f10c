package service

import "ai-worker-console/internal/model"

type DashboardService interface {
	GetDashboardStats() (*DashboardStats, error)
}

// DashboardStats gathers the stat tiles of every admin panel
type DashboardStats struct {
	Users        *UserStats      `json:"users"`
	Systems      *SystemStats    `json:"systems"`
	Agents       *AgentStats     `json:"agents"`
	Knowledge    *KnowledgeStats `json:"knowledge"`
	Instructions int             `json:"instructions"`
	Mappings     *MappingStats   `json:"mappings"`
	Groups       int             `json:"permission_groups"`
	Tools        int             `json:"tools"`
	Workspaces   int             `json:"workspaces"`
}

type dashboardService struct {
	users        UserService
	systems      SystemService
	agents       AgentService
	knowledge    KnowledgeService
	instructions InstructionService
	mappings     MappingService
	permissions  PermissionService
}

func NewDashboardService(users UserService, systems SystemService, agents AgentService, knowledge KnowledgeService, instructions InstructionService, mappings MappingService, permissions PermissionService) DashboardService {
	return &dashboardService{
		users:        users,
		systems:      systems,
		agents:       agents,
		knowledge:    knowledge,
		instructions: instructions,
		mappings:     mappings,
		permissions:  permissions,
	}
}

func (s *dashboardService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		Tools:      len(s.permissions.GetTools()),
		Workspaces: len(model.AgentKinds),
	}

	var err error
	if stats.Users, err = s.users.GetStats(); err != nil {
		return nil, err
	}
	if stats.Systems, err = s.systems.GetStats(); err != nil {
		return nil, err
	}
	if stats.Agents, err = s.agents.GetStats(); err != nil {
		return nil, err
	}
	if stats.Knowledge, err = s.knowledge.GetStats(); err != nil {
		return nil, err
	}
	if stats.Mappings, err = s.mappings.GetStats(); err != nil {
		return nil, err
	}

	instructions, err := s.instructions.ListInstructions(DocumentListOptions{})
	if err != nil {
		return nil, err
	}
	stats.Instructions = len(instructions)

	groups, err := s.permissions.ListGroups("")
	if err != nil {
		return nil, err
	}
	stats.Groups = len(groups)

	return stats, nil
}
