package main

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/todayseafood/seafood/internal/logging"
	"github.com/todayseafood/seafood/pkg/file"
)

const (
	envconfigPrefix = "SEAFOOD"
	configFileName  = "config"
	stateFileName   = "state.json"
)

// environment holds settings that are only read from environment variables
// (or a .env file).
type environment struct {
	// Home overrides the directory configuration and state are kept in.
	Home        string `envconfig:"HOME"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"warn"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"console"`
}

func getEnvironment() (environment, error) {
	env := environment{}
	err := envconfig.Process(envconfigPrefix, &env)
	return env, errors.Wrap(err, "error reading environment")
}

func (e environment) loggingConfig(debug bool) logging.Config {
	cfg := logging.Config{
		Level:    e.LogLevel,
		Encoding: e.LogEncoding,
	}
	if debug {
		cfg.Level = "debug"
	}
	return cfg
}

func (e environment) seafoodHome() (string, error) {
	if e.Home != "" {
		return e.Home, nil
	}
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "error locating user's home directory")
	}
	return filepath.Join(homeDir, ".seafood"), nil
}

type config struct {
	APIAddress string `json:"apiAddress"`
}

func getConfig(seafoodHome string) (*config, error) {
	configFile := filepath.Join(seafoodHome, configFileName)
	if !file.Exists(configFile) {
		return nil, errors.Errorf(
			"no seafood configuration was found at %s; please use "+
				"`seafood --server ADDRESS login` to continue",
			configFile,
		)
	}
	configBytes, err := ioutil.ReadFile(configFile)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error reading seafood config file at %s",
			configFile,
		)
	}
	cfg := &config{}
	if err := json.Unmarshal(configBytes, cfg); err != nil {
		return nil, errors.Wrapf(
			err,
			"error parsing seafood config file at %s",
			configFile,
		)
	}
	return cfg, nil
}

func saveConfig(seafoodHome string, cfg *config) error {
	if err := file.EnsureDir(seafoodHome, 0700); err != nil {
		return err
	}
	configFile := filepath.Join(seafoodHome, configFileName)
	configBytes, err := json.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "error marshaling config")
	}
	if err := ioutil.WriteFile(configFile, configBytes, 0600); err != nil {
		return errors.Wrapf(err, "error writing to %s", configFile)
	}
	return nil
}
