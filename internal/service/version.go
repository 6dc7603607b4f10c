package service

import (
	"fmt"
	"slices"

	"ai-worker-console/internal/model"
)

// VersionEntry is a history row; the first row is current
type VersionEntry struct {
	model.Version
	IsCurrent bool `json:"is_current"`
}

// VersionHistory shows a record's versions in stored order.
// InSync reports whether the first version matches the record's current_version;
// nothing keeps the two aligned.
type VersionHistory struct {
	RecordID       string         `json:"record_id"`
	CurrentVersion string         `json:"current_version"`
	InSync         bool           `json:"in_sync"`
	Versions       []VersionEntry `json:"versions"`
}

type PublishVersionRequest struct {
	Version string `json:"version" validate:"required,release_version"`
	Content string `json:"content"`
	Changes string `json:"changes"`
}

func buildHistory(id, current string, versions []model.Version) *VersionHistory {
	entries := make([]VersionEntry, len(versions))
	for i, v := range versions {
		entries[i] = VersionEntry{Version: v, IsCurrent: i == 0}
	}
	return &VersionHistory{
		RecordID:       id,
		CurrentVersion: current,
		InSync:         len(versions) > 0 && versions[0].Version == current,
		Versions:       entries,
	}
}

// prependVersion returns a new history with v in front. Version strings must be unique;
// ordering between versions is not checked.
func prependVersion(versions []model.Version, v model.Version) ([]model.Version, error) {
	if slices.ContainsFunc(versions, func(existing model.Version) bool { return existing.Version == v.Version }) {
		return nil, fmt.Errorf("%w: %s", ErrVersionExists, v.Version)
	}
	next := make([]model.Version, 0, len(versions)+1)
	next = append(next, v)
	return append(next, versions...), nil
}
