package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"pdf-rag-chat/internal/chromemdb"
	"pdf-rag-chat/internal/config"
	"pdf-rag-chat/internal/embedding"
	"pdf-rag-chat/internal/helper"
	"pdf-rag-chat/internal/llmservice"
	"pdf-rag-chat/internal/rag"
	"pdf-rag-chat/internal/server"
)

const (
	defaultConfigFilePath = "./configs/config.yaml"
	shutdownTimeout       = 10 * time.Second
)

func main() {
	configFilePath := flag.String("config", defaultConfigFilePath, "Path to the yaml config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFilePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	if err := helper.SetupLogger(cfg.Log.Level, cfg.Log.Pretty); err != nil {
		log.Fatal().Err(err).Msg("Error configuring logger")
	}
	log.Debug().
		Str("addr", cfg.Server.Addr).
		Str("embed_provider", cfg.EmbedLLM.Provider).
		Str("embed_model", cfg.EmbedLLM.Model).
		Str("chat_provider", cfg.ChatLLM.Provider).
		Str("chat_model", cfg.ChatLLM.Model).
		Msg("Loaded config")

	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	chatModel, err := llmservice.NewChatModel(&cfg.ChatLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing chat model")
	}

	index, err := chromemdb.NewIndex(embedder, cfg.RAG.CollectionName)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating vector index")
	}

	srv := server.NewServer(rag.NewRAG(index, chatModel), index, &cfg.Server, log.Logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}
}
