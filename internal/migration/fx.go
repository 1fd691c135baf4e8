package migration

import (
	agencydomain "github.com/LangoJordan/annonceluzy/internal/agency/domain"
	authdomain "github.com/LangoJordan/annonceluzy/internal/auth/domain"
	"github.com/LangoJordan/annonceluzy/internal/config"
	identitydomain "github.com/LangoJordan/annonceluzy/internal/identity/domain"
	listingdomain "github.com/LangoJordan/annonceluzy/internal/listing/domain"
	"github.com/LangoJordan/annonceluzy/internal/seed"
	subscriptiondomain "github.com/LangoJordan/annonceluzy/internal/subscription/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite/mysql dev mode: let gorm derive the schema
			if err := conn.AutoMigrate(
				&identitydomain.User{},
				&authdomain.Session{},
				&agencydomain.Agency{},
				&agencydomain.Space{},
				&agencydomain.Position{},
				&subscriptiondomain.Subscription{},
				&listingdomain.Listing{},
			); err != nil {
				return err
			}
		}

		if err := seed.EnsureAdmin(conn); err != nil {
			return err
		}
		if cfg.SeedDemoData {
			return seed.EnsureDemoAgency(conn)
		}
		return nil
	}),
)
