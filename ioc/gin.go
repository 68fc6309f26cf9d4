package ioc

import (
	"net/http"
	"strings"

	"github.com/ecodeclub/ginx/session"
	"github.com/edusphere/fyptrack/internal/evaluation"
	"github.com/edusphere/fyptrack/internal/result"
	"github.com/edusphere/fyptrack/internal/submission"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/server/egin"
)

func initGinxServer(sp session.Provider,
	subHdl *submission.Handler,
	evalHdl *evaluation.Handler,
	resHdl *result.Handler,
) *egin.Component {
	session.SetDefaultProvider(sp)
	res := egin.Load("web").Build()
	res.Use(cors.New(cors.Config{
		ExposeHeaders:    []string{"X-Refresh-Token", "X-Access-Token"},
		AllowCredentials: true,
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowOriginFunc: func(origin string) bool {
			if strings.HasPrefix(origin, "http://localhost") {
				return true
			}
			// 只允许我们自己域名过来的
			return strings.Contains(origin, "edusphere.cn")
		},
	}))
	res.GET("/hello", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world!")
	})
	// 登录校验
	res.Use(session.CheckLoginMiddleware())
	subHdl.PrivateRoutes(res.Engine)
	evalHdl.PrivateRoutes(res.Engine)
	resHdl.PrivateRoutes(res.Engine)
	return res
}
