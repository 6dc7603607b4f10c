package service_test

import (
	"errors"
	"testing"

	"ai-worker-console/internal/model"
	"ai-worker-console/internal/repository"
	"ai-worker-console/internal/service"
	"ai-worker-console/internal/ws"

	"github.com/stretchr/testify/require"
)

const actor = "tester"

// fixture is the full service graph over seeded in-memory stores
type fixture struct {
	stores       *repository.Stores
	bus          *ws.Bus
	events       *[]ws.Event
	users        service.UserService
	systems      service.SystemService
	instructions service.InstructionService
	knowledge    service.KnowledgeService
	agents       service.AgentService
	permissions  service.PermissionService
	mappings     service.MappingService
	workspaces   service.WorkspaceService
	dashboard    service.DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	stores := repository.NewMemoryStores()
	require.NoError(t, stores.SeedDefaults())

	bus := ws.NewBus()
	events := &[]ws.Event{}

	f := &fixture{
		stores:       stores,
		bus:          bus,
		events:       events,
		users:        service.NewUserService(stores.Users, bus),
		systems:      service.NewSystemService(stores.Systems, bus),
		instructions: service.NewInstructionService(stores.Instructions, stores.Systems, bus),
		knowledge:    service.NewKnowledgeService(stores.Knowledge, stores.Systems, bus),
		agents:       service.NewAgentService(stores.Agents, bus),
		permissions:  service.NewPermissionService(stores.Permissions, stores.Agents, model.DefaultTools, bus),
		mappings:     service.NewMappingService(stores.Mappings, stores.Users, stores.Systems, bus),
		workspaces:   service.NewWorkspaceService(stores.WorkItems, stores.Messages, bus),
	}
	f.dashboard = service.NewDashboardService(f.users, f.systems, f.agents, f.knowledge, f.instructions, f.mappings, f.permissions)

	bus.Subscribe(f.mappings.HandleEvent)
	bus.Subscribe(f.permissions.HandleEvent)
	bus.Subscribe(func(e ws.Event) { *events = append(*events, e) })
	return f
}

func (f *fixture) lastEvent(t *testing.T) ws.Event {
	t.Helper()
	require.NotEmpty(t, *f.events)
	return (*f.events)[len(*f.events)-1]
}

var errStoreDown = errors.New("store unavailable")

// brokenStore wraps a store whose List fails
type brokenStore[T any] struct {
	repository.Store[T]
}

func (brokenStore[T]) List() ([]T, error) {
	return nil, errStoreDown
}
