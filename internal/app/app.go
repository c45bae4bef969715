package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"furnihome/go_backend/internal/app/config"
	apphttp "furnihome/go_backend/internal/app/http"
	"furnihome/go_backend/internal/app/http/handlers"
	"furnihome/go_backend/internal/app/http/handlers/recommend"
	"furnihome/go_backend/internal/domain/ai/describe"
	"furnihome/go_backend/internal/domain/ai/embed"
	"furnihome/go_backend/internal/domain/ai/textgen"
	"furnihome/go_backend/internal/domain/catalog"
	"furnihome/go_backend/internal/infra/db/postgres"
	"furnihome/go_backend/internal/infra/vectorindex"
)

func Run() {
	cfg := config.Load()

	var store catalog.Store
	if cfg.CatalogDSN != "" {
		db, err := postgres.New(context.Background(), cfg.CatalogDSN)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer db.Close()
		store = catalog.NewPostgresStore(db)
		log.Printf("catalog: postgres")
	} else {
		store = catalog.NewCSVStore(cfg.CatalogCSV)
		log.Printf("catalog: csv %s", cfg.CatalogCSV)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	embedder := embed.NewOllamaClient(cfg.OllamaURL, cfg.OllamaEmbeddingModel, httpClient)
	index := vectorindex.NewPinecone(cfg.PineconeAPIKey, cfg.PineconeIndex,
		cfg.PineconeControlURL, cfg.PineconeIndexHost, httpClient)
	gen := textgen.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	desc := describe.New(gen, cfg.DescribeSentenceMax)

	rec := recommend.New(store, embedder, index, gen, desc)
	h := handlers.New(cfg, store, rec, desc)
	router := apphttp.NewRouter(cfg, h)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	log.Fatal(srv.ListenAndServe())
}
