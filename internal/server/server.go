// Package server wires stores, services and handlers into the console's Fiber app.
package server

import (
	"errors"
	"log"
	"strings"
	"time"

	"ai-worker-console/internal/handler"
	"ai-worker-console/internal/metrics"
	"ai-worker-console/internal/middleware"
	"ai-worker-console/internal/model"
	"ai-worker-console/internal/repository"
	"ai-worker-console/internal/service"
	"ai-worker-console/internal/ws"
	"ai-worker-console/pkg/config"
	"ai-worker-console/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/samber/lo"
)

// Server is the assembled console API
type Server struct {
	App     *fiber.App
	Hub     *ws.Hub
	Bus     *ws.Bus
	Metrics *metrics.Metrics
	Tokens  *jwt.Manager
}

// Options tweaks New for tests
type Options struct {
	// Quiet drops the request logger
	Quiet bool
}

// New builds the services over stores and registers every route. The caller
// runs Hub.Run and starts listening.
func New(cfg *config.Config, stores *repository.Stores, opts Options) *Server {
	bus := ws.NewBus()
	hub := ws.NewHub()
	m := metrics.New()
	tokens := jwt.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	// 1. Services
	userService := service.NewUserService(stores.Users, bus)
	systemService := service.NewSystemService(stores.Systems, bus)
	instructionService := service.NewInstructionService(stores.Instructions, stores.Systems, bus)
	knowledgeService := service.NewKnowledgeService(stores.Knowledge, stores.Systems, bus)
	agentService := service.NewAgentService(stores.Agents, bus)
	permissionService := service.NewPermissionService(stores.Permissions, stores.Agents, model.DefaultTools, bus)
	mappingService := service.NewMappingService(stores.Mappings, stores.Users, stores.Systems, bus)
	workspaceService := service.NewWorkspaceService(stores.WorkItems, stores.Messages, bus)
	dashService := service.NewDashboardService(userService, systemService, agentService, knowledgeService, instructionService, mappingService, permissionService)
	authService := service.NewAuthService(stores.Users, tokens)

	// 2. Event subscribers: cascades first, then the outward feeds
	bus.Subscribe(mappingService.HandleEvent)
	bus.Subscribe(permissionService.HandleEvent)
	bus.Subscribe(m.RecordEvent)
	bus.Subscribe(hub.Forward)

	// 3. Handlers
	authHandler := handler.NewAuthHandler(authService)
	dashHandler := handler.NewDashboardHandler(dashService)
	userHandler := handler.NewUserHandler(userService)
	systemHandler := handler.NewSystemHandler(systemService)
	instructionHandler := handler.NewInstructionHandler(instructionService)
	knowledgeHandler := handler.NewKnowledgeHandler(knowledgeService)
	agentHandler := handler.NewAgentHandler(agentService)
	permissionHandler := handler.NewPermissionHandler(permissionService)
	mappingHandler := handler.NewMappingHandler(mappingService)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService)

	// 4. Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
		// Params and bodies end up in stored records and map keys
		Immutable: true,
	})

	// Middleware
	if !opts.Quiet {
		app.Use(logger.New()) // Logging request
	}
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS
	app.Use(m.Middleware())

	app.Get("/metrics", m.Handler())

	// 5. Routes
	api := app.Group("/api/v1")

	api.Post("/auth/login", authHandler.Login)

	// Every route below knows its operator; none is gated by privileges
	operated := api.Group("", middleware.IdentifyOperator(tokens, stores.Users))

	operated.Get("/auth/me", authHandler.Me)
	operated.Get("/dashboard/stats", dashHandler.GetDashboardStats)

	// Users
	operated.Get("/users", userHandler.GetUsers)
	operated.Get("/users/stats", userHandler.GetUserStats)
	operated.Get("/users/:id", userHandler.GetUser)
	operated.Post("/users", userHandler.CreateUser)
	operated.Put("/users/:id", userHandler.UpdateUser)
	operated.Patch("/users/:id/active", userHandler.ToggleActive)
	operated.Delete("/users/:id", userHandler.DeleteUser)

	// Systems
	operated.Get("/systems", systemHandler.GetSystems)
	operated.Get("/systems/options", systemHandler.GetOptions)
	operated.Get("/systems/stats", systemHandler.GetSystemStats)
	operated.Get("/systems/:id", systemHandler.GetSystem)
	operated.Post("/systems", systemHandler.CreateSystem)
	operated.Put("/systems/:id", systemHandler.UpdateSystem)
	operated.Delete("/systems/:id", systemHandler.DeleteSystem)

	// Instructions
	operated.Get("/instructions", instructionHandler.GetInstructions)
	operated.Get("/instructions/grouped", instructionHandler.GetGrouped)
	operated.Get("/instructions/:id", instructionHandler.GetInstruction)
	operated.Post("/instructions", instructionHandler.CreateInstruction)
	operated.Put("/instructions/:id", instructionHandler.UpdateInstruction)
	operated.Delete("/instructions/:id", instructionHandler.DeleteInstruction)
	operated.Patch("/instructions/:id/publish", instructionHandler.TogglePublish)
	operated.Get("/instructions/:id/versions", instructionHandler.GetVersions)
	operated.Post("/instructions/:id/versions", instructionHandler.PublishVersion)

	// Knowledge (RAG)
	operated.Get("/knowledge", knowledgeHandler.GetKnowledgeBases)
	operated.Get("/knowledge/grouped", knowledgeHandler.GetGrouped)
	operated.Get("/knowledge/stats", knowledgeHandler.GetKnowledgeStats)
	operated.Get("/knowledge/:id", knowledgeHandler.GetKnowledgeBase)
	operated.Post("/knowledge", knowledgeHandler.CreateKnowledgeBase)
	operated.Put("/knowledge/:id", knowledgeHandler.UpdateKnowledgeBase)
	operated.Delete("/knowledge/:id", knowledgeHandler.DeleteKnowledgeBase)

	// Agents
	operated.Get("/agents", agentHandler.GetAgents)
	operated.Get("/agents/stats", agentHandler.GetAgentStats)
	operated.Get("/agents/:id", agentHandler.GetAgent)
	operated.Post("/agents", agentHandler.CreateAgent)
	operated.Put("/agents/:id", agentHandler.UpdateAgent)
	operated.Delete("/agents/:id", agentHandler.DeleteAgent)
	operated.Patch("/agents/:id/publish", agentHandler.TogglePublish)
	operated.Get("/agents/:id/versions", agentHandler.GetVersions)
	operated.Post("/agents/:id/versions", agentHandler.PublishVersion)

	// Permissions
	operated.Get("/permissions/matrix", permissionHandler.GetMatrix)
	operated.Get("/permissions/tools", permissionHandler.GetTools)
	operated.Get("/permissions/groups", permissionHandler.GetGroups)
	operated.Get("/permissions/groups/:id", permissionHandler.GetGroup)
	operated.Post("/permissions/groups", permissionHandler.CreateGroup)
	operated.Delete("/permissions/groups/:id", permissionHandler.DeleteGroup)
	operated.Patch("/permissions/groups/:id/:kind/:itemId", permissionHandler.Toggle)

	// User-system mappings
	operated.Get("/mappings", mappingHandler.GetMappings)
	operated.Get("/mappings/grouped", mappingHandler.GetGrouped)
	operated.Get("/mappings/stats", mappingHandler.GetMappingStats)
	operated.Post("/mappings", mappingHandler.CreateMapping)
	operated.Delete("/mappings/:id", mappingHandler.DeleteMapping)

	// Agent workspaces
	operated.Get("/workspaces", workspaceHandler.GetWorkspaces)
	operated.Get("/workspaces/:kind", workspaceHandler.GetWorkspace)
	operated.Get("/workspaces/:kind/items", workspaceHandler.GetItems)
	operated.Get("/workspaces/:kind/messages", workspaceHandler.GetMessages)
	operated.Post("/workspaces/:kind/messages", workspaceHandler.PostMessage)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		if !hub.Join(c) {
			return
		}
		defer hub.Leave(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	return &Server{
		App:     app,
		Hub:     hub,
		Bus:     bus,
		Metrics: m,
		Tokens:  tokens,
	}
}

// Bootstrap seeds the mock data set (when enabled) and makes sure the
// configured admin account can log in
func Bootstrap(cfg *config.Config, stores *repository.Stores) error {
	if cfg.SeedMockData {
		if err := stores.SeedDefaults(); err != nil {
			return err
		}
	}
	return ensureAdmin(stores.Users, cfg.AdminEmail, cfg.AdminPass)
}

func ensureAdmin(users repository.Store[model.User], email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	all, err := users.List()
	if err != nil {
		return err
	}

	existing, ok := lo.Find(all, func(u model.User) bool { return strings.EqualFold(u.Email, email) })
	if ok {
		if existing.Password != "" {
			return nil
		}
		_, err := users.Update(existing.ID, func(u *model.User) error {
			return u.SetPassword(password)
		})
		if err == nil {
			log.Printf("Admin password set for %s", email)
		}
		return err
	}

	admin := model.User{
		Name:   "Console Administrator",
		Email:  email,
		Role:   model.UserRoleAdmin,
		Status: model.UserActive,
	}
	admin.StampCreated("system", time.Now())
	if err := admin.SetPassword(password); err != nil {
		return errors.New("failed to hash admin password")
	}
	if _, err := users.Add(admin); err != nil {
		return err
	}
	log.Printf("Admin user created: %s", email)
	return nil
}
