package middleware

import (
	"context"
	"fmt"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	hzte "github.com/cloudwego/hertz/pkg/common/errors"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/google/uuid"
	"github.com/hertz-contrib/cors"

	"nurse-directory/pkg/common/config"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestIDMiddleware 透传或生成请求ID
func RequestIDMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		id := string(ctx.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(RequestIDKey, id)
		ctx.Response.Header.Set(RequestIDHeader, id)
		ctx.Next(c)
	}
}

// LoggerMiddleware 结构化的请求日志记录
func LoggerMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		ctx.Next(c) // 放行到后续处理器
		latency := time.Since(start)

		// 结构化日志输出
		hlog.CtxInfof(c, "| %3d | %13v | %15s | %-7s | %s | rid=%s",
			ctx.Response.StatusCode(),
			latency,
			ctx.ClientIP(),
			ctx.Method(),
			ctx.Path(),
			ctx.GetString(RequestIDKey),
		)

		// handler 通过 c.Error 记录的业务错误与内部错误
		if public := ctx.Errors.ByType(hzte.ErrorTypePublic); len(public) > 0 {
			hlog.CtxInfof(c, "rid=%s rejected=%s", ctx.GetString(RequestIDKey), public.String())
		}
		if private := ctx.Errors.ByType(hzte.ErrorTypePrivate); len(private) > 0 {
			hlog.CtxErrorf(c, "rid=%s errors=%s", ctx.GetString(RequestIDKey), private.String())
		}
	}
}

/*
	启动时指定环境变量
	export APP_ENV=production
	go run ./cmd/web
*/

// RecoveryMiddleware 增强型异常捕获（带配置依赖版本）
func RecoveryMiddleware(cfg *config.Config) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				// 获取调用堆栈
				stack := string(debug.Stack())

				hlog.CtxErrorf(c, "[PANIC RECOVERED] %v\n%s", err, stack)

				// 生产环境处理
				if cfg.IsProd() {
					ctx.AbortWithStatusJSON(500, utils.H{
						"error": "internal server error",
					})
				} else { // 开发环境显示详细错误
					ctx.AbortWithStatusJSON(500, utils.H{
						"error": fmt.Sprintf("%v", err),     // 转换为字符串格式
						"stack": strings.Split(stack, "\n"), // 切割为字符串数组更易读
					})
				}
			}
		}()
		ctx.Next(c)
	}
}

// CORSMiddleware 安全的跨域配置
func CORSMiddleware(corsConfig config.CORSConfig) app.HandlerFunc {
	return cors.New(
		cors.Config{
			AllowOrigins:     corsConfig.AllowOrigins,
			AllowMethods:     corsConfig.AllowMethods,
			AllowHeaders:     corsConfig.AllowHeaders,
			ExposeHeaders:    corsConfig.ExposeHeaders,
			AllowCredentials: corsConfig.AllowCredentials,
			MaxAge:           corsConfig.MaxAge,
			// 动态校验来源
			AllowOriginFunc: trustedOrigin(corsConfig.TrustedDomains),
		},
	)
}

// trustedOrigin 按主机名匹配受信域名，允许子域名
func trustedOrigin(domains []string) func(string) bool {
	return func(origin string) bool {
		u, err := url.Parse(origin)
		if err != nil || u.Hostname() == "" {
			return false
		}
		host := strings.ToLower(u.Hostname())
		for _, domain := range domains {
			domain = strings.ToLower(strings.TrimPrefix(domain, "."))
			if domain == "" {
				continue
			}
			if host == domain || strings.HasSuffix(host, "."+domain) {
				return true
			}
		}
		return false
	}
}

// TimeoutMiddleware 超时返回503；响应在处理器退出后才改写
func TimeoutMiddleware(seconds int) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		if seconds <= 0 {
			ctx.Next(c)
			return
		}
		timeoutCtx, cancel := context.WithTimeout(c, time.Duration(seconds)*time.Second)
		defer cancel()

		path := string(ctx.Path())

		// 通过goroutine执行后续处理器
		done := make(chan struct{})
		var panicErr interface{}

		go func() {
			defer func() {
				if r := recover(); r != nil {
					panicErr = r
				}
				close(done)
			}()
			ctx.Next(timeoutCtx) // 关键：传入超时上下文
		}()

		// 监听超时或完成
		select {
		case <-done:
			if panicErr != nil {
				panic(panicErr) // 交给全局recovery处理
			}
			return
		case <-timeoutCtx.Done():
		}

		hlog.CtxWarnf(c, "request timeout path=%s", path)
		// 处理器退出前不能碰 RequestContext，否则与它并发写响应
		<-done
		if panicErr != nil {
			panic(panicErr)
		}
		ctx.Response.ResetBody()
		ctx.AbortWithStatusJSON(503, utils.H{
			"error": "service unavailable",
		})
	}
}

// SecurityCheckMiddleware 请求体大小与方法白名单
func SecurityCheckMiddleware(sec config.SecurityConfig) app.HandlerFunc {
	allowed := make(map[string]bool, len(sec.AllowedMethods))
	for _, m := range sec.AllowedMethods {
		allowed[strings.ToUpper(m)] = true
	}

	return func(c context.Context, ctx *app.RequestContext) {
		// 防护机制1：请求体大小限制
		if sec.MaxBodySize > 0 && int64(ctx.Request.Header.ContentLength()) > sec.MaxBodySize {
			securityResponse(ctx, "request body exceeds max size", 413)
			return
		}

		// 防护机制2：检查HTTP方法
		if len(allowed) > 0 && !allowed[string(ctx.Method())] {
			securityResponse(ctx, "method not allowed", 405)
			return
		}

		ctx.Next(c)
	}
}

// 安全响应统一处理
func securityResponse(ctx *app.RequestContext, msg string, status int) {
	hlog.Warnf("SecurityAlert[status=%d]: %s path=%s", status, msg, ctx.Path())
	ctx.AbortWithStatusJSON(status, utils.H{
		"error": msg,
	})
}
