package migration

import (
	"context"

	"github.com/RKmodz24/studio/internal/entity"
	"github.com/RKmodz24/studio/pkg/xcontext"
)

// migrate0001 indexes the state entries by update time.
func migrate0001(ctx context.Context) error {
	migrator := xcontext.DB(ctx).Migrator()
	if migrator.HasIndex(&entity.KeyValue{}, "UpdatedAt") {
		return nil
	}

	return migrator.CreateIndex(&entity.KeyValue{}, "UpdatedAt")
}
