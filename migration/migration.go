package migration

import (
	"context"
	"errors"
	"sort"

	"github.com/RKmodz24/studio/internal/entity"
	"github.com/RKmodz24/studio/pkg/xcontext"
	"gorm.io/gorm"
)

var Migrators = map[string]func(context.Context) error{
	"auto": AutoMigrate,
	"0000": migrate0000,
	"0001": migrate0001,
}

// Versions returns the numbered migrators in order.
func Versions() []string {
	versions := []string{}
	for v := range Migrators {
		if v != "auto" {
			versions = append(versions, v)
		}
	}

	sort.Strings(versions)
	return versions
}

// Migrate applies every numbered migrator not applied yet and records it.
func Migrate(ctx context.Context) error {
	db := xcontext.DB(ctx)
	if err := db.AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	for _, version := range Versions() {
		err := db.Where("version=?", version).Take(&entity.Migration{}).Error
		if err == nil {
			continue
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		xcontext.Logger(ctx).Infof("Apply migration %s", version)
		if err := Migrators[version](ctx); err != nil {
			return err
		}

		if err := db.Create(&entity.Migration{Version: version}).Error; err != nil {
			return err
		}
	}

	return nil
}
