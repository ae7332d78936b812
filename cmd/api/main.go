package main

import (
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/jaltareyr/edumind-api/config"
	"github.com/jaltareyr/edumind-api/internal/bootstrap"
	"github.com/jaltareyr/edumind-api/internal/contentgen/agent"
	"github.com/jaltareyr/edumind-api/internal/contentgen/cleanup"
	"github.com/jaltareyr/edumind-api/internal/contentgen/knowledge"
	"github.com/jaltareyr/edumind-api/internal/contentgen/llm"
	"github.com/jaltareyr/edumind-api/internal/contentgen/render"
	"github.com/jaltareyr/edumind-api/internal/contentgen/service"
)

const serviceName = "edumind-api"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var engine knowledge.Engine = knowledge.NewHTTPEngine(
		cfg.Retrieval.BaseURL,
		cfg.Retrieval.APIKey,
		cfg.Retrieval.Timeout,
	)

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		engine = knowledge.NewCachedEngine(engine, client, cfg.Redis.CacheTTL)
		log.Printf("retrieval cache enabled addr=%s ttl=%s", cfg.Redis.Addr, cfg.Redis.CacheTTL)
	}

	hasGeneratorKey := cfg.Generator.APIKey != ""
	var client llm.Client
	if hasGeneratorKey {
		client, err = llm.NewOpenAIClient(llm.Settings{
			APIKey:    cfg.Generator.APIKey,
			BaseURL:   cfg.Generator.BaseURL,
			Model:     cfg.Generator.Model,
			RateLimit: cfg.Generator.RateLimit,
		})
		if err != nil {
			log.Fatalf("failed to build llm client: %v", err)
		}
	} else {
		log.Println("Warning: OPENAI_API_KEY not set, generation requests will fail")
	}

	gen := service.NewGenerationService(
		agent.New(client),
		engine,
		cfg.Generator.OutputDir,
		render.DefaultOptions(),
	)

	sweeper := cleanup.NewSweeper(cfg.Generator.OutputDir, cfg.Generator.RetentionDays)
	sweeper.Start()
	defer sweeper.Stop()

	bootstrap.SetGinMode(cfg.App.Environment)
	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:     serviceName,
		Version:         cfg.App.Version,
		OutputDir:       cfg.Generator.OutputDir,
		HasGeneratorKey: hasGeneratorKey,
		Generator:       gen,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
