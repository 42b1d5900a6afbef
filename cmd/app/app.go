package main

import (
	"os"

	"github.com/DRSN-tech/semantic-search/internal/app"
	config "github.com/DRSN-tech/semantic-search/internal/cfg"
	"github.com/DRSN-tech/semantic-search/pkg/logger"
)

//	@title			Semantic Search API
//	@version		1.0
//	@description	Семантический поиск по каталогу товаров: текстовые и картиночные запросы.

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	if err := app.Run(cfg, log); err != nil {
		os.Exit(1)
	}
}
