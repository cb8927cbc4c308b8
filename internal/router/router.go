package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/kondzio-p/ftbd-blt/internal/handler"
	"github.com/kondzio-p/ftbd-blt/internal/logging"
	"go.uber.org/zap"
)

const sessionName = "ogevents_session"

// Options carries the HTTP-level settings of SetupRouter.
type Options struct {
	SessionSecret string
	CORSOrigins   []string
	DistDir       string
	Logger        *zap.Logger
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(logging.GinLogger(log), logging.GinRecovery(log))
	r.Use(corsMiddleware(opts.CORSOrigins))

	// 配置会话中间件
	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", api.HealthCheck)

		apiGroup.POST("/upload-file", api.UploadFile)
		apiGroup.POST("/create-directory", api.CreateDirectory)
		apiGroup.GET("/list-files/:mediaType/:category", api.ListFiles)
		apiGroup.DELETE("/delete-file", api.DeleteFile)

		apiGroup.GET("/pages", api.ListPages)
		apiGroup.GET("/pages/by-slug", api.GetPageBySlug)

		// 后台管理路由
		admin := apiGroup.Group("/admin")
		{
			admin.POST("/login", api.Login)
			admin.POST("/logout", api.Logout)
			admin.GET("/session", api.Session)

			auth := admin.Group("")
			auth.Use(handler.AuthRequired())
			{
				auth.GET("/pages", api.AdminListPages)
				auth.POST("/pages", api.CreatePage)
				auth.GET("/pages/:id", api.AdminGetPage)
				auth.PUT("/pages/:id", api.UpdatePage)
				auth.PATCH("/pages/:id", api.EditPage)
				auth.DELETE("/pages/:id", api.DeletePage)
				auth.GET("/slug", api.PreviewSlug)

				auth.GET("/media", api.ListMedia)
				auth.POST("/media", api.RegisterMedia)
				auth.POST("/media/upload", api.UploadMedia)
				auth.DELETE("/media/:id", api.DeleteMedia)
			}
		}
	}

	// 静态文件与单页应用入口
	r.NoRoute(handler.SPAFallback(api.Assets().PublicDir(), opts.DistDir))

	return r
}
