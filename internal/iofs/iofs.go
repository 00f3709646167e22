// Package iofs handles file system work of convdb: home directories,
// the default configuration file, and YAML files with registrations.
package iofs

import (
	_ "embed"
	"errors"
	"io"
	"os"

	"github.com/kimvanwyk/md410-2021-conv-common/pkg/config"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/registree"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var ConfigYAML string

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// registrationsFile is the layout of a YAML file with registrations.
type registrationsFile struct {
	Registrees []registree.Registration `yaml:"registrees"`
}

// LoadRegistrations reads registrations from a YAML file of the form
//
//	registrees:
//	  - reg_num: 12
//	    first_names: Ann
//	    ...
//
// Unknown keys are rejected. Registrations are not validated here.
func LoadRegistrations(path string) ([]registree.Registration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	defer f.Close()

	var res registrationsFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(&res); err != nil && !errors.Is(err, io.EOF) {
		return nil, ReadFileError(path, err)
	}
	return res.Registrees, nil
}
