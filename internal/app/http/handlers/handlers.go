package handlers

import (
	"furnihome/go_backend/internal/app/config"
	"furnihome/go_backend/internal/app/http/handlers/recommend"
	"furnihome/go_backend/internal/domain/ai/describe"
	"furnihome/go_backend/internal/domain/catalog"
)

type Handlers struct {
	Cfg      config.Config
	Catalog  catalog.Store
	Rec      *recommend.Service
	Describe *describe.Generator
}

func New(cfg config.Config, store catalog.Store, rec *recommend.Service, desc *describe.Generator) *Handlers {
	return &Handlers{
		Cfg:      cfg,
		Catalog:  store,
		Rec:      rec,
		Describe: desc,
	}
}
