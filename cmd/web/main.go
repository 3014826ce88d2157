package main

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	hconfig "github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"nurse-directory/pkg/common/config"
	dao "nurse-directory/pkg/core/nurse/repository/dao/impl"
	"nurse-directory/pkg/core/nurse/service"
	"nurse-directory/pkg/web/router"
)

func main() {
	// 初始化配置
	cfg := config.Load()
	hlog.SetLevel(cfg.HlogLevel())

	// 初始化记录存储（数据库 / JSON 文件 / 内存）
	repo, err := dao.NewNurseRepository(cfg)
	if err != nil {
		hlog.Fatalf("Failed to initialize record store: %v", err)
	}

	// 注入到Service层
	nurses := service.NewNurseService(repo)

	// 创建Hertz实例
	h := server.Default(serverOptions(cfg)...)

	// 注册路由
	router.RegisterAPIs(h, cfg, nurses)

	// 启动服务
	h.Spin()
}

func serverOptions(cfg *config.Config) []hconfig.Option {
	opts := []hconfig.Option{
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	}
	if size := cfg.Middleware.Security.MaxBodySize; size > 0 {
		opts = append(opts, server.WithMaxRequestBodySize(int(size)))
	}
	return opts
}
