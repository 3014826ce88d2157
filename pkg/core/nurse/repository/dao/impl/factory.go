package dao

import (
	"fmt"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"nurse-directory/pkg/common/config"
	"nurse-directory/pkg/core/nurse/model"
	"nurse-directory/pkg/core/nurse/repository/dao"
)

// NewNurseRepository 根据配置选择存储后端
func NewNurseRepository(cfg *config.Config) (dao.NurseRepository, error) {
	switch cfg.Store.Backend {
	case "", "database":
		db, err := cfg.InitDB()
		if err != nil {
			return nil, err
		}
		if err := model.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate nurse table: %w", err)
		}
		hlog.Infof("record store: %s database %s", cfg.Database.Driver, cfg.Database.DBName)
		return NewGormNurseRepository(db), nil
	case "file":
		hlog.Infof("record store: json file %s", cfg.Store.FilePath)
		return NewFileNurseRepository(cfg.Store.FilePath)
	case "memory":
		hlog.Warnf("record store: in-memory, records are lost on restart")
		return NewMemoryNurseRepository(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
