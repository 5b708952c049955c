package taskregistry

import (
	"context"
	"fmt"
	"strings"

	"github.com/RKmodz24/studio/internal/domain/search"
	"github.com/RKmodz24/studio/internal/entity"
	"github.com/RKmodz24/studio/pkg/xcontext"
	"github.com/bwmarrin/snowflake"
)

// MergeCatalog returns persisted ++ (catalog entries whose id is not in
// persisted). Duplicated ids in persisted are collapsed, the first one wins.
func MergeCatalog(persisted, catalog []entity.Task) []entity.Task {
	seen := make(map[string]bool, len(persisted)+len(catalog))
	result := make([]entity.Task, 0, len(persisted)+len(catalog))

	for _, t := range persisted {
		if seen[t.ID] {
			continue
		}

		seen[t.ID] = true
		result = append(result, t)
	}

	for _, t := range catalog {
		if seen[t.ID] {
			continue
		}

		seen[t.ID] = true
		t.Status = entity.TaskIncomplete
		result = append(result, t)
	}

	return result
}

// ResetAll returns the catalog tasks reset to incomplete. Regenerated ad
// tasks are not part of the catalog so they are dropped.
func ResetAll(catalog []entity.Task) []entity.Task {
	result := make([]entity.Task, len(catalog))
	for i, t := range catalog {
		t.Status = entity.TaskIncomplete
		result[i] = t
	}

	return result
}

// WithoutRetired drops the retired ids from the catalog. A catalog ad task is
// retired once it has been replaced, so merging the catalog into a persisted
// task list does not bring it back.
func WithoutRetired(catalog []entity.Task, retired []string) []entity.Task {
	if len(retired) == 0 {
		return catalog
	}

	skip := make(map[string]bool, len(retired))
	for _, id := range retired {
		skip[id] = true
	}

	result := make([]entity.Task, 0, len(catalog))
	for _, t := range catalog {
		if !skip[t.ID] {
			result = append(result, t)
		}
	}

	return result
}

const AdTaskPrefix = "ad-"

type Registry struct {
	catalog []entity.Task
	node    *snowflake.Node
	index   search.Index
}

// NewRegistry indexes the catalog for search. The node id must be unique per
// process so generated ad ids never collide. The support link is built from
// the configured public base url.
func NewRegistry(ctx context.Context, nodeID int64, index search.Index) (*Registry, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimSuffix(xcontext.Configs(ctx).Reward.ReferralBaseURL, "/")

	r := &Registry{catalog: Catalog(), node: node, index: index}
	for i := range r.catalog {
		if r.catalog[i].ID == SupportTaskID {
			r.catalog[i].Link = baseURL + SupportPath
		}
	}

	for _, t := range r.catalog {
		err := index.Index(search.TaskDoc, t.ID, search.TaskData{
			Title:       t.Title,
			Description: t.Description,
			Type:        string(t.Type),
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot index task %s: %v", t.ID, err)
			return nil, err
		}
	}

	return r, nil
}

func (r *Registry) Catalog() []entity.Task {
	return ResetAll(r.catalog)
}

func (r *Registry) Get(id string) (entity.Task, bool) {
	for _, t := range r.catalog {
		if t.ID == id {
			return t, true
		}
	}

	return entity.Task{}, false
}

// NewAdTask replaces a completed ad task by a fresh incomplete one with the
// same reward.
func (r *Registry) NewAdTask(completed entity.Task) entity.Task {
	return entity.Task{
		ID:          fmt.Sprintf("%s%s", AdTaskPrefix, r.node.Generate().String()),
		Title:       completed.Title,
		Reward:      completed.Reward,
		Type:        entity.TaskAd,
		Status:      entity.TaskIncomplete,
		Description: completed.Description,
		Icon:        completed.Icon,
	}
}

// Search returns the catalog tasks matching the query, in relevance order.
func (r *Registry) Search(query string, offset, limit int) ([]entity.Task, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}

	ids, err := r.index.Search(search.TaskDoc, query, offset, limit)
	if err != nil {
		return nil, err
	}

	result := make([]entity.Task, 0, len(ids))
	for _, id := range ids {
		if t, ok := r.Get(id); ok {
			result = append(result, t)
		}
	}

	return result, nil
}
