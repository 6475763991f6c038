package main

import (
	"context"

	"godata/godata_d1_adapter/config"
	"godata/godata_d1_adapter/models"
	"godata/godata_d1_adapter/pkg/jaeger"
	"godata/godata_d1_adapter/pkg/logger"
	d1pool "godata/godata_d1_adapter/pool"
	"godata/godata_d1_adapter/storage/d1"
)

func main() {
	cfg := config.Load()

	loggerLevel := logger.LevelInfo

	switch cfg.Environment {
	case config.DebugMode, config.TestMode:
		loggerLevel = logger.LevelDebug
	}

	if cfg.Debug {
		loggerLevel = logger.LevelDebug
	}

	log := logger.NewLogger(cfg.ServiceName, loggerLevel)
	defer logger.Cleanup(log)
	log.Info("Service env", logger.Any("cfg", cfg))

	closer, err := jaeger.InitGlobalTracer(cfg.ServiceName, cfg.JaegerHostPort)
	if err != nil {
		log.Warn("jaeger.InitGlobalTracer", logger.Error(err))
	} else {
		defer closer.Close()
	}

	store, err := d1.NewAdapter(context.Background(), cfg, log)
	if err != nil {
		log.Panic("d1.NewAdapter", logger.Error(err))
	}
	defer store.CloseDB()

	d1pool.Add(cfg.D1DatabaseID, &d1pool.Pool{Client: d1.NewClient(cfg, log)})

	// smoke round against the configured database
	mapper := &models.Mapper{Name: "AdapterSmoke", IDAttribute: "id"}

	record, meta, err := store.Record().Create(context.Background(), mapper, models.Record{"name": "ping"})
	if err != nil {
		log.Panic("record.Create", logger.Error(err))
	}
	log.Info("created", logger.Any("record", record), logger.Any("meta", meta))

	records, findMeta, err := store.Record().FindAll(context.Background(), mapper, models.Query{"limit": 5})
	if err != nil {
		log.Panic("record.FindAll", logger.Error(err))
	}

	if cfg.Raw {
		log.Info("found", logger.Int("count", len(records)), logger.Any("meta", findMeta))
	} else {
		log.Info("found", logger.Int("count", len(records)))
	}
}
