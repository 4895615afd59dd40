package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/bjorlileika/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.StoreDriver, convey.ShouldEqual, config.StoreMemory)
			convey.So(cfg.QRSize, convey.ShouldEqual, 256)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid settings", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"an empty addr", func(c *config.Config) { c.Addr = " " }},
			{"a zero qr size", func(c *config.Config) { c.QRSize = 0 }},
			{"an unknown driver", func(c *config.Config) { c.StoreDriver = "postgres" }},
			{"sqlite without a path", func(c *config.Config) { c.StoreDriver = config.StoreSQLite }},
			{"json without a path", func(c *config.Config) { c.StoreDriver = config.StoreJSON }},
		}
		for _, tc := range cases {
			convey.Convey("When the config has "+tc.name, func() {
				cfg := config.New(context.Background())
				tc.mutate(cfg)
				err := cfg.Validate()

				convey.Convey("Then validation should fail with ErrInvalidConfig", func() {
					convey.So(err, convey.ShouldNotBeNil)
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}
	})
}
