package app

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/config"
	httpx "github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/http"
)

// Run builds the container and serves until the listener dies.
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	container, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	r := httpx.BuildRouter(
		container.AuthHandlers,
		container.SignupHandlers,
		container.DropHandlers,
		container.GuardianHandlers,
		container.SessionMW,
		container.AuthMW,
		container.CasbinMW,
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
