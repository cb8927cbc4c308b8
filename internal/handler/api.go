package handler

import (
	"github.com/kondzio-p/ftbd-blt/internal/service"
	"go.uber.org/zap"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	pages  *service.PageStore
	media  *service.MediaLibrary
	assets *service.AssetService
	auth   *service.AuthService
	log    *zap.Logger
}

// NewAPI constructs a handler set over the given services.
func NewAPI(pages *service.PageStore, media *service.MediaLibrary, assets *service.AssetService, auth *service.AuthService, log *zap.Logger) *API {
	if log == nil {
		log = zap.NewNop()
	}
	return &API{
		pages:  pages,
		media:  media,
		assets: assets,
		auth:   auth,
		log:    log,
	}
}

// Assets exposes the asset service for static file routing.
func (a *API) Assets() *service.AssetService {
	return a.assets
}
