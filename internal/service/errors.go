package service

import (
	"errors"

	"ai-worker-console/internal/repository"
	"ai-worker-console/pkg/validator"
)

// notFoundError names the missing entity and matches repository.ErrRecordNotFound
type notFoundError struct {
	entity string
}

func (e notFoundError) Error() string {
	return e.entity + " not found"
}

func (e notFoundError) Is(target error) bool {
	return target == repository.ErrRecordNotFound
}

var (
	ErrUserNotFound        error = notFoundError{"user"}
	ErrSystemNotFound      error = notFoundError{"system"}
	ErrInstructionNotFound error = notFoundError{"instruction"}
	ErrKnowledgeNotFound   error = notFoundError{"knowledge base"}
	ErrAgentNotFound       error = notFoundError{"agent"}
	ErrGroupNotFound       error = notFoundError{"permission group"}
	ErrMappingNotFound     error = notFoundError{"mapping"}
	ErrWorkspaceNotFound   error = notFoundError{"workspace"}
)

var (
	ErrInvalidInput  = validator.ErrValidation
	ErrEmailExists   = errors.New("email already exists")
	ErrVersionExists = errors.New("version already exists")
	ErrUnknownItem   = errors.New("unknown permission item")
	ErrUnknownKind   = errors.New("unknown permission kind, use agent or tool")
	ErrInvalidGroup  = errors.New("invalid grouping, use system or user")
)

// notFound translates the store's not-found into the entity error
func notFound(err, entityErr error) error {
	if errors.Is(err, repository.ErrRecordNotFound) {
		return entityErr
	}
	return err
}
