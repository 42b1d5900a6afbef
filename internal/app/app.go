package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	config "github.com/DRSN-tech/semantic-search/internal/cfg"
	v1Http "github.com/DRSN-tech/semantic-search/internal/delivery/v1/http"
	"github.com/DRSN-tech/semantic-search/internal/infrastructure/clip"
	"github.com/DRSN-tech/semantic-search/internal/infrastructure/fetcher"
	qdrantRepo "github.com/DRSN-tech/semantic-search/internal/repository/qdrant"
	"github.com/DRSN-tech/semantic-search/internal/repository/redis"
	redisConv "github.com/DRSN-tech/semantic-search/internal/repository/redis/converter"
	"github.com/DRSN-tech/semantic-search/internal/usecase"
	"github.com/DRSN-tech/semantic-search/pkg/clients"
	"github.com/DRSN-tech/semantic-search/pkg/closer"
	"github.com/DRSN-tech/semantic-search/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// Run поднимает поисковый сервис: Qdrant, Redis, CLIP-кодировщик,
// HTTP-доставку, и блокируется до сигнала остановки или фатальной ошибки.
func Run(cfg *config.Config, log logger.Logger) error {
	cl := closer.New()

	qdrantClient, err := clients.NewQdrantClient(cfg.Qdrant)
	if err != nil {
		log.Errorf(err, "failed to initialize qdrant client")
		return err
	}
	cl.Add(func(ctx context.Context) error {
		return qdrantClient.Close()
	})

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = redisClient.Ping(redisCtx)
	redisCancel()
	if err != nil {
		log.Errorf(err, "failed to connect to redis")
		return err
	}
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	embRepo := qdrantRepo.NewEmbeddingRepo(qdrantClient.Client, cfg.Qdrant)
	cacheRepo := redis.NewSearchCacheRepo(redisClient, redisConv.NewSearchResultConverter(), cfg.Redis, log)

	encoder := clip.NewClient(cfg.Clip, cfg.Qdrant.VectorSize, log)
	mediaFetcher := fetcher.New(cfg.Fetcher, log)

	searchUC := usecase.NewSearchUC(embRepo, cacheRepo, encoder, mediaFetcher, cfg.Qdrant, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(searchUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	errCh := make(chan error, 1)
	go func() {
		log.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		log.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		log.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpSrv.Stop(shutdownCtx); err != nil {
		log.Errorf(err, "HTTP server shutdown error")
	} else {
		log.Infof("HTTP server stopped")
	}

	if err := cl.Close(shutdownCtx); err != nil {
		log.Warnf("Resource close error: %v", err)
	}

	log.Infof("Application shutdown complete")
	return appErr
}
