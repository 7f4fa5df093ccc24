package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/dfsviz/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.StorageDriver, convey.ShouldEqual, config.DriverMemory)
			convey.So(cfg.StorageSlot, convey.ShouldEqual, "nflDfsUploadedData")
			convey.So(cfg.PageSize, convey.ShouldEqual, 25)
			convey.So(cfg.MaxUploadBytes, convey.ShouldEqual, int64(10<<20))
			convey.So(cfg.NameCorrections, convey.ShouldHaveLength, 4)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the correction table is keyed by name and team", func() {
			table := cfg.Corrections(context.Background())
			convey.So(table["Kyle Pitts Sr.|ATL"], convey.ShouldEqual, "Kyle Pitts")
			convey.So(table["James Cook III|BUF"], convey.ShouldEqual, "James Cook")
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a config", t, func() {
		cfg := config.New()

		convey.Convey("When the storage driver is unknown", func() {
			cfg.StorageDriver = "redis"
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When sqlite has no path", func() {
			cfg.StorageDriver = config.DriverSQLite
			cfg.SQLitePath = ""
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("When page size exceeds the cap", func() {
			cfg.PageSize = 1000
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("When the logo template lacks a placeholder", func() {
			cfg.TeamLogoTemplate = "https://example.com/logo.png"
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("When a correction has no display name", func() {
			cfg.NameCorrections = append(cfg.NameCorrections, config.NameCorrection{Name: "X Jr.", Team: "KC"})
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})
	})
}
