// Package ioconfig loads convdb configuration from config.yaml and
// CONVDB_* environment variables using viper.
package ioconfig

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/kimvanwyk/md410-2021-conv-common/internal/iofs"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/config"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by convdb.
const EnvPrefix = "CONVDB"

// Load returns a config built from defaults, the file at cfgPath and
// environment variables, in increasing order of precedence. A missing
// file is not an error, values then come from defaults and env vars.
// Invalid values are ignored with a warning.
func Load(cfgPath string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	initEnvVars(v)

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		err := v.ReadInConfig()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, iofs.ReadFileError(cfgPath, err)
		}
	}

	var raw config.Config
	if err := v.Unmarshal(&raw); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	res := config.New()
	res.Update(raw.ToOptions())
	return res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	_ = v.BindEnv("database.host", EnvPrefix+"_DATABASE_HOST")
	_ = v.BindEnv("database.port", EnvPrefix+"_DATABASE_PORT")
	_ = v.BindEnv("database.user", EnvPrefix+"_DATABASE_USER")
	_ = v.BindEnv("database.password", EnvPrefix+"_DATABASE_PASSWORD")
	_ = v.BindEnv("database.database", EnvPrefix+"_DATABASE_DATABASE")
	_ = v.BindEnv("database.ssl_mode", EnvPrefix+"_DATABASE_SSL_MODE")

	// Schemas
	_ = v.BindEnv("schemas.current", EnvPrefix+"_SCHEMAS_CURRENT")
	_ = v.BindEnv("schemas.prior_year", EnvPrefix+"_SCHEMAS_PRIOR_YEAR")

	// Log configuration
	_ = v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL")
	_ = v.BindEnv("log.format", EnvPrefix+"_LOG_FORMAT")
	_ = v.BindEnv("log.destination", EnvPrefix+"_LOG_DESTINATION")

	v.AutomaticEnv()
}
