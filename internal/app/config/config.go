package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string
	CORSAllowOrigin string
	InternalToken   string

	CatalogCSV string
	CatalogDSN string

	OllamaURL            string
	OllamaEmbeddingModel string

	OpenAIBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string

	PineconeAPIKey     string
	PineconeIndex      string
	PineconeControlURL string
	PineconeIndexHost  string

	DescribeSentenceMax int
}

// Load reads configuration from the environment (and an optional .env file).
// The vector index credential and index name are deliberately not required at
// startup: their absence fails the requests that need them, not the process.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		CORSAllowOrigin: env("CORS_ALLOW_ORIGIN", "*"),
		InternalToken:   env("INTERNAL_TOKEN", ""),

		CatalogCSV: env("CATALOG_CSV", "data/products.csv"),
		CatalogDSN: env("CATALOG_DSN", ""),

		OllamaURL:            env("OLLAMA_URL", "http://127.0.0.1:11434"),
		OllamaEmbeddingModel: env("OLLAMA_EMBEDDING_MODEL", "all-minilm"),

		OpenAIBaseURL: env("OPENAI_BASE_URL", "http://127.0.0.1:11434/v1"),
		OpenAIAPIKey:  env("OPENAI_API_KEY", "local"),
		OpenAIModel:   env("OPENAI_MODEL", "qwen2.5:0.5b"),

		PineconeAPIKey:     env("PINECONE_API_KEY", ""),
		PineconeIndex:      env("PINECONE_INDEX", ""),
		PineconeControlURL: env("PINECONE_CONTROL_URL", "https://api.pinecone.io"),
		PineconeIndexHost:  env("PINECONE_INDEX_HOST", ""),

		DescribeSentenceMax: envInt("DESCRIBE_SENTENCE_MAX", 120),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return n
	}
	return def
}
