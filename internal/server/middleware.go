package server

import (
	"log/slog"

	"github.com/alkime/postauto/internal/config"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

const productionEnv = "production"

// securityConfig maps the app config onto response security headers. HSTS is
// only sent in production, where the viewer sits behind TLS.
func securityConfig(cfg *config.Config) secure.Config {
	var sts int64
	if cfg.Env == productionEnv {
		sts = int64(cfg.HSTSMaxAge)
	}

	return secure.Config{
		STSSeconds:            sts,
		STSIncludeSubdomains:  sts > 0,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: config.BuildCSP(cfg.CSPMode),
	}
}

func useSecurityHeaders(router *gin.Engine, cfg *config.Config, logger *slog.Logger) {
	router.Use(secure.New(securityConfig(cfg)))

	logger.Debug("Security headers enabled",
		"env", cfg.Env,
		"csp_mode", cfg.CSPMode,
	)
}
