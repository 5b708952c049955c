package entity

import (
	"context"
	"time"

	"github.com/RKmodz24/studio/pkg/xcontext"
)

// Migration records an applied schema version.
type Migration struct {
	Version   string `gorm:"primaryKey"`
	CreatedAt time.Time
}

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(&KeyValue{}, &Migration{})
}
