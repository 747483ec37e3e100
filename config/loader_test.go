package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/warp/residence-engine/config"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.GoalDays, convey.ShouldEqual, 1826)
				convey.So(cfg.ExcuseDays, convey.ShouldEqual, 70)
				convey.So(cfg.PermitsPath, convey.ShouldEqual, "permits.yaml")
				convey.So(cfg.TravelsPath, convey.ShouldEqual, "travels.csv")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("RECKONER_GOAL_DAYS", "1000")
			_ = os.Setenv("RECKONER_EXCUSE_DAYS", "30")
			_ = os.Setenv("RECKONER_TIMEZONE", "Europe/Dublin")
			_ = os.Setenv("RECKONER_OUT_DIR", "/tmp/reports")
			_ = os.Setenv("RECKONER_LOG_FORMAT", "json")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.GoalDays, convey.ShouldEqual, 1000)
				convey.So(cfg.ExcuseDays, convey.ShouldEqual, 30)
				convey.So(cfg.Timezone, convey.ShouldEqual, "Europe/Dublin")
				convey.So(cfg.OutDir, convey.ShouldEqual, "/tmp/reports")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(t, `
goal_days: 1500
excuse_days: 0
permits_path: "/data/irp_info.yaml"
addr: ":9090"
`)
			_ = os.Setenv("RECKONER_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should merge the file with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.GoalDays, convey.ShouldEqual, 1500)
				convey.So(cfg.ExcuseDays, convey.ShouldEqual, 0)
				convey.So(cfg.PermitsPath, convey.ShouldEqual, "/data/irp_info.yaml")
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.TravelsPath, convey.ShouldEqual, "travels.csv") // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, "goal_days: 1500\nexcuse_days: 10\n")
			_ = os.Setenv("RECKONER_CONFIG", tmpFile)
			_ = os.Setenv("RECKONER_GOAL_DAYS", "1600")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then env vars should win over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.GoalDays, convey.ShouldEqual, 1600)
				convey.So(cfg.ExcuseDays, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("RECKONER_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("RECKONER_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("RECKONER_GOAL_DAYS", "five years")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the loaded values fail validation", func() {
			_ = os.Setenv("RECKONER_GOAL_DAYS", "-5")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func createTempConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "reckoner.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearConfigEnvVars() {
	for _, k := range []string{
		"RECKONER_CONFIG",
		"RECKONER_GOAL_DAYS",
		"RECKONER_EXCUSE_DAYS",
		"RECKONER_TIMEZONE",
		"RECKONER_PERMITS_PATH",
		"RECKONER_TRAVELS_PATH",
		"RECKONER_OUT_DIR",
		"RECKONER_ADDR",
		"RECKONER_LOG_LEVEL",
		"RECKONER_LOG_FORMAT",
	} {
		_ = os.Unsetenv(k)
	}
}
