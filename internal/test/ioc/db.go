package testioc

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/edusphere/fyptrack/config"
	"github.com/edusphere/fyptrack/ioc"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
	"gopkg.in/yaml.v3"
)

var db *egorm.Component

func InitDB() *egorm.Component {
	if db != nil {
		return db
	}
	cfg, err := loadConfig()
	if err != nil {
		panic(err)
	}
	ioc.WaitForDBSetup(cfg.DB.DSN)
	db = egorm.Load("mysql").Build()
	return db
}

func loadConfig() (config.FyptrackConfig, error) {
	var cfg config.FyptrackConfig
	dir, err := os.Getwd()
	if err != nil {
		return cfg, err
	}
	path := filepath.Clean(dir + "../../../../../config/local.yaml")
	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err = yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, err
	}
	err = econf.LoadFromReader(bytes.NewReader(content), yaml.Unmarshal)
	return cfg, err
}
