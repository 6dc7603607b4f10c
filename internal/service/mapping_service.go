package service

import (
	"fmt"
	"log"
	"time"

	"ai-worker-console/internal/model"
	"ai-worker-console/internal/query"
	"ai-worker-console/internal/repository"
	"ai-worker-console/internal/ws"
	"ai-worker-console/pkg/validator"

	"github.com/samber/lo"
)

// Mapping groupings
const (
	GroupBySystem = "system"
	GroupByUser   = "user"
)

type MappingService interface {
	ListMappings(opts MappingListOptions) ([]MappingView, error)
	GroupMappings(by string, opts MappingListOptions, includeEmpty bool) ([]query.Group[MappingView], error)
	CreateMapping(req *MappingRequest, actor string) (*MappingView, error)
	DeleteMapping(id, actor string) error
	GetStats() (*MappingStats, error)
	HandleEvent(e ws.Event)
}

type MappingListOptions struct {
	Query    string // matches user name, user email or system name
	Role     string
	SystemID string
	UserID   string
}

type MappingRequest struct {
	UserID   string            `json:"user_id" validate:"required"`
	SystemID string            `json:"system_id" validate:"required"`
	Role     model.MappingRole `json:"role" validate:"required,oneof=primary secondary support"`
}

// MappingView is a mapping joined with the names shown on the panel.
// Names are empty when the referenced record no longer exists.
type MappingView struct {
	model.UserSystemMapping
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
	SystemName string `json:"system_name"`
}

type MappingStats struct {
	Total  int            `json:"total"`
	ByRole map[string]int `json:"by_role"`
}

type mappingService struct {
	mappingRepo repository.Store[model.UserSystemMapping]
	userRepo    repository.Store[model.User]
	systemRepo  repository.Store[model.System]
	bus         *ws.Bus
}

func NewMappingService(mappingRepo repository.Store[model.UserSystemMapping], userRepo repository.Store[model.User], systemRepo repository.Store[model.System], bus *ws.Bus) MappingService {
	return &mappingService{
		mappingRepo: mappingRepo,
		userRepo:    userRepo,
		systemRepo:  systemRepo,
		bus:         bus,
	}
}

func (s *mappingService) ListMappings(opts MappingListOptions) ([]MappingView, error) {
	views, _, _, err := s.views()
	if err != nil {
		return nil, err
	}
	return query.Apply(views,
		query.Search(opts.Query, func(v MappingView) []string { return []string{v.UserName, v.UserEmail, v.SystemName} }),
		query.Category(opts.Role, func(v MappingView) string { return string(v.Role) }),
		query.Category(opts.SystemID, func(v MappingView) string { return v.SystemID }),
		query.Category(opts.UserID, func(v MappingView) string { return v.UserID }),
	), nil
}

// GroupMappings groups the filtered mappings by system or by user, in the order of
// the system or user list
func (s *mappingService) GroupMappings(by string, opts MappingListOptions, includeEmpty bool) ([]query.Group[MappingView], error) {
	if by != GroupBySystem && by != GroupByUser {
		return nil, ErrInvalidGroup
	}
	views, err := s.ListMappings(opts)
	if err != nil {
		return nil, err
	}
	_, users, systems, err := s.views()
	if err != nil {
		return nil, err
	}

	var groups []query.Group[MappingView]
	if by == GroupBySystem {
		groups = groupBySystem(views, systems, func(v MappingView) string { return v.SystemID })
	} else {
		keys := lo.Map(users, func(u model.User, _ int) string { return u.ID })
		labels := lo.SliceToMap(users, func(u model.User) (string, string) { return u.ID, u.Name })
		groups = query.Label(query.GroupByKeys(views, keys, func(v MappingView) string { return v.UserID }), labels)
	}

	if !includeEmpty {
		groups = query.NonEmpty(groups)
	}
	return groups, nil
}

// CreateMapping assigns a user to a system. Repeated (user, system) pairs are accepted.
func (s *mappingService) CreateMapping(req *MappingRequest, actor string) (*MappingView, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	user, err := s.userRepo.Get(req.UserID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	system, err := s.systemRepo.Get(req.SystemID)
	if err != nil {
		return nil, notFound(err, ErrSystemNotFound)
	}

	now := time.Now()
	mapping := model.UserSystemMapping{
		UserID:     req.UserID,
		SystemID:   req.SystemID,
		Role:       req.Role,
		AssignedAt: now,
	}
	mapping.StampCreated(actor, now)

	created, err := s.mappingRepo.Add(mapping)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ws.NewEvent(ws.EntityMapping, ws.ActionCreated, created.ID, actor,
		fmt.Sprintf("%s assigned %s to %s as %s", actor, user.Name, system.Name, created.Role)))
	return &MappingView{
		UserSystemMapping: *created,
		UserName:          user.Name,
		UserEmail:         user.Email,
		SystemName:        system.Name,
	}, nil
}

func (s *mappingService) DeleteMapping(id, actor string) error {
	removed, err := s.mappingRepo.Remove(id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrMappingNotFound
	}

	s.bus.Publish(ws.NewEvent(ws.EntityMapping, ws.ActionDeleted, id, actor,
		fmt.Sprintf("%s removed mapping %s", actor, id)))
	return nil
}

func (s *mappingService) GetStats() (*MappingStats, error) {
	mappings, err := s.mappingRepo.List()
	if err != nil {
		return nil, err
	}
	return &MappingStats{
		Total:  len(mappings),
		ByRole: lo.CountValuesBy(mappings, func(m model.UserSystemMapping) string { return string(m.Role) }),
	}, nil
}

// HandleEvent drops the mappings of a deleted user or system
func (s *mappingService) HandleEvent(e ws.Event) {
	if e.Action != ws.ActionDeleted || (e.Entity != ws.EntityUser && e.Entity != ws.EntitySystem) {
		return
	}
	mappings, err := s.mappingRepo.List()
	if err != nil {
		log.Printf("Warning: failed to load mappings: %v", err)
		return
	}

	for _, m := range mappings {
		if (e.Entity == ws.EntityUser && m.UserID == e.ID) || (e.Entity == ws.EntitySystem && m.SystemID == e.ID) {
			if err := s.DeleteMapping(m.ID, e.Actor); err != nil {
				log.Printf("Warning: failed to drop mapping %s: %v", m.ID, err)
			}
		}
	}
}

func (s *mappingService) views() ([]MappingView, []model.User, []model.System, error) {
	mappings, err := s.mappingRepo.List()
	if err != nil {
		return nil, nil, nil, err
	}
	users, err := s.userRepo.List()
	if err != nil {
		return nil, nil, nil, err
	}
	systems, err := s.systemRepo.List()
	if err != nil {
		return nil, nil, nil, err
	}

	usersByID := lo.KeyBy(users, func(u model.User) string { return u.ID })
	systemsByID := lo.KeyBy(systems, func(sys model.System) string { return sys.ID })

	views := lo.Map(mappings, func(m model.UserSystemMapping, _ int) MappingView {
		view := MappingView{UserSystemMapping: m}
		if u, ok := usersByID[m.UserID]; ok {
			view.UserName = u.Name
			view.UserEmail = u.Email
		}
		if sys, ok := systemsByID[m.SystemID]; ok {
			view.SystemName = sys.Name
		}
		return view
	})
	return views, users, systems, nil
}
