package migration

import (
	"context"
	"time"

	"github.com/RKmodz24/studio/pkg/xcontext"
)

// KeyValue0 is the first layout of the state table.
type KeyValue0 struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (KeyValue0) TableName() string {
	return "key_values"
}

// migrate0000 creates the state table without any index.
func migrate0000(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(&KeyValue0{})
}
