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

type SystemService interface {
	ListSystems(opts SystemListOptions) ([]model.System, error)
	GetSystem(id string) (*model.System, error)
	CreateSystem(req *SystemRequest, actor string) (*model.System, error)
	UpdateSystem(id string, req *SystemRequest, actor string) (*model.System, error)
	DeleteSystem(id, actor string) error
	GetOptions() ([]SystemOption, error)
	GetStats() (*SystemStats, error)
}

type SystemListOptions struct {
	Query  string
	Status string
}

type SystemRequest struct {
	Name        string             `json:"name" validate:"required"`
	Code        string             `json:"code" validate:"required"`
	Description string             `json:"description"`
	Owner       string             `json:"owner"`
	URL         string             `json:"url" validate:"omitempty,url"`
	Status      model.SystemStatus `json:"status" validate:"required,oneof=active maintenance inactive"`
}

// SystemOption feeds system pickers
type SystemOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SystemStats struct {
	Total       int `json:"total"`
	Active      int `json:"active"`
	Maintenance int `json:"maintenance"`
	Inactive    int `json:"inactive"`
}

type systemService struct {
	systemRepo repository.Store[model.System]
	bus        *ws.Bus
}

func NewSystemService(systemRepo repository.Store[model.System], bus *ws.Bus) SystemService {
	return &systemService{systemRepo: systemRepo, bus: bus}
}

func (s *systemService) ListSystems(opts SystemListOptions) ([]model.System, error) {
	systems, err := s.systemRepo.List()
	if err != nil {
		return nil, err
	}
	return query.Apply(systems,
		query.Search(opts.Query, func(sys model.System) []string { return []string{sys.Name, sys.Description} }),
		query.Category(opts.Status, func(sys model.System) string { return string(sys.Status) }),
	), nil
}

func (s *systemService) GetSystem(id string) (*model.System, error) {
	system, err := s.systemRepo.Get(id)
	if err != nil {
		return nil, notFound(err, ErrSystemNotFound)
	}
	return system, nil
}

func (s *systemService) CreateSystem(req *SystemRequest, actor string) (*model.System, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	system := model.System{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Owner:       req.Owner,
		URL:         req.URL,
		Status:      req.Status,
	}
	system.StampCreated(actor, time.Now())

	created, err := s.systemRepo.Add(system)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ws.NewEvent(ws.EntitySystem, ws.ActionCreated, created.ID, actor,
		fmt.Sprintf("%s registered system '%s'", actor, created.Name)))
	return created, nil
}

func (s *systemService) UpdateSystem(id string, req *SystemRequest, actor string) (*model.System, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	updated, err := s.systemRepo.Update(id, func(sys *model.System) error {
		sys.Name = req.Name
		sys.Code = req.Code
		sys.Description = req.Description
		sys.Owner = req.Owner
		sys.URL = req.URL
		sys.Status = req.Status
		sys.StampUpdated(actor, time.Now())
		return nil
	})
	if err != nil {
		return nil, notFound(err, ErrSystemNotFound)
	}

	s.bus.Publish(ws.NewEvent(ws.EntitySystem, ws.ActionUpdated, id, actor,
		fmt.Sprintf("%s updated system '%s'", actor, updated.Name)))
	return updated, nil
}

// DeleteSystem removes the system. Mappings are dropped by the mapping service on the
// deleted event; instructions and knowledge bases keep their reference.
func (s *systemService) DeleteSystem(id, actor string) error {
	removed, err := s.systemRepo.Remove(id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrSystemNotFound
	}

	s.bus.Publish(ws.NewEvent(ws.EntitySystem, ws.ActionDeleted, id, actor,
		fmt.Sprintf("%s deleted system %s", actor, id)))
	return nil
}

func (s *systemService) GetOptions() ([]SystemOption, error) {
	systems, err := s.systemRepo.List()
	if err != nil {
		return nil, err
	}
	return lo.Map(systems, func(sys model.System, _ int) SystemOption {
		return SystemOption{ID: sys.ID, Name: sys.Name}
	}), nil
}

func (s *systemService) GetStats() (*SystemStats, error) {
	systems, err := s.systemRepo.List()
	if err != nil {
		return nil, err
	}
	byStatus := lo.CountValuesBy(systems, func(sys model.System) model.SystemStatus { return sys.Status })
	return &SystemStats{
		Total:       len(systems),
		Active:      byStatus[model.SystemActive],
		Maintenance: byStatus[model.SystemMaintenance],
		Inactive:    byStatus[model.SystemInactive],
	}, nil
}
