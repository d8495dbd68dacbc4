package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host      string    `koanf:"host"`
	Frontend  Frontend  `koanf:"frontend"`
	Advisor   Advisor   `koanf:"advisor"`
	Database  Database  `koanf:"db"`
	Scheduler Scheduler `koanf:"scheduler"`
}

type Frontend struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
}

// Advisor configures the hosted generative-AI collaborator used for
// budget reviews and bank statement classification.
type Advisor struct {
	ApiKey string `koanf:"apikey"`
	Model  string `koanf:"model"`
}

type Database struct {
	Path string `koanf:"path"`
}

type Scheduler struct {
	// Enabled turns on the monthly recurring-expense carry-forward job.
	Enabled bool `koanf:"enabled"`
	// CarryForwardCron is a cron expression (with seconds) for the job.
	CarryForwardCron string `koanf:"carryforwardcron"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:8080",
		Frontend: Frontend{
			Enabled: true,
			Dir:     "frontend",
		},
		Advisor: Advisor{
			Model: "gemini-2.0-flash",
		},
		Database: Database{
			Path: "fourfold.db",
		},
		Scheduler: Scheduler{
			Enabled: true,
			// First day of each month, midnight
			CarryForwardCron: "0 0 0 1 * *",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "FOURFOLD_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "FOURFOLD_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
