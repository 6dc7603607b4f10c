package repository

import (
	"ai-worker-console/internal/model"

	"gorm.io/gorm"
)

// Stores bundles one store per console panel
type Stores struct {
	Users        Store[model.User]
	Systems      Store[model.System]
	Instructions Store[model.Instruction]
	Knowledge    Store[model.KnowledgeBase]
	Agents       Store[model.Agent]
	Permissions  Store[model.PermissionGroup]
	Mappings     Store[model.UserSystemMapping]
	WorkItems    Store[model.WorkItem]
	Messages     Store[model.ChatMessage]
}

// Models lists every table a SQL-backed Stores needs
func Models() []interface{} {
	return []interface{}{
		&model.User{}, &model.System{}, &model.Instruction{}, &model.KnowledgeBase{},
		&model.Agent{}, &model.PermissionGroup{}, &model.UserSystemMapping{},
		&model.WorkItem{}, &model.ChatMessage{},
	}
}

func NewMemoryStores() *Stores {
	return &Stores{
		Users:        NewMemoryStore[model.User]("u"),
		Systems:      NewMemoryStore[model.System]("s"),
		Instructions: NewMemoryStore[model.Instruction]("i"),
		Knowledge:    NewMemoryStore[model.KnowledgeBase]("k"),
		Agents:       NewMemoryStore[model.Agent]("a"),
		Permissions:  NewMemoryStore[model.PermissionGroup]("r"),
		Mappings:     NewMemoryStore[model.UserSystemMapping]("m"),
		WorkItems:    NewMemoryStore[model.WorkItem]("w"),
		Messages:     NewMemoryStore[model.ChatMessage]("c"),
	}
}

// NewGormStores returns SQL-backed stores. Tables must already be migrated, see Models.
func NewGormStores(db *gorm.DB) *Stores {
	return &Stores{
		Users:        NewGormStore[model.User](db, "u"),
		Systems:      NewGormStore[model.System](db, "s"),
		Instructions: NewGormStore[model.Instruction](db, "i"),
		Knowledge:    NewGormStore[model.KnowledgeBase](db, "k"),
		Agents:       NewGormStore[model.Agent](db, "a"),
		Permissions:  NewGormStore[model.PermissionGroup](db, "r"),
		Mappings:     NewGormStore[model.UserSystemMapping](db, "m"),
		WorkItems:    NewGormStore[model.WorkItem](db, "w"),
		Messages:     NewGormStore[model.ChatMessage](db, "c"),
	}
}

// SeedDefaults loads the mock data set into every empty store
func (s *Stores) SeedDefaults() error {
	seeds := []func() error{
		seedIfEmpty(s.Users, model.DefaultUsers),
		seedIfEmpty(s.Systems, model.DefaultSystems),
		seedIfEmpty(s.Instructions, model.DefaultInstructions),
		seedIfEmpty(s.Knowledge, model.DefaultKnowledgeBases),
		seedIfEmpty(s.Agents, model.DefaultAgents),
		seedIfEmpty(s.Permissions, model.DefaultPermissionGroups),
		seedIfEmpty(s.Mappings, model.DefaultMappings),
		seedIfEmpty(s.WorkItems, model.DefaultWorkItems),
	}
	for _, seed := range seeds {
		if err := seed(); err != nil {
			return err
		}
	}
	return nil
}

func seedIfEmpty[T any](store Store[T], records []T) func() error {
	return func() error {
		count, err := store.Count()
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return store.Seed(records...)
	}
}
