package main

import (
	"path/filepath"

	"github.com/jonathan/fire-protocols/internal/contracts"
	"github.com/jonathan/fire-protocols/internal/notify"
	"github.com/jonathan/fire-protocols/internal/observability"
	"github.com/jonathan/fire-protocols/internal/pipeline"
	"github.com/jonathan/fire-protocols/internal/rendering"
	"github.com/jonathan/fire-protocols/internal/store"
	"github.com/jonathan/fire-protocols/internal/validation"
	"github.com/jonathan/fire-protocols/internal/weather"
)

func historyStore() *store.HistoryStore {
	return store.NewHistoryStore(appConfig.HistoryFile, logger)
}

func contractStore() *store.ContractStore {
	return store.NewContractStore(appConfig.ContractsDBFile, logger)
}

func scanner() *contracts.Scanner {
	return contracts.NewScanner(appConfig.ContractsDir, appConfig.ScanWorkers, logger)
}

// weatherSource is nil when the lookup is disabled in the config.
func weatherSource() pipeline.WeatherSource {
	if !appConfig.Weather.Enabled {
		return nil
	}
	return weather.NewClient(appConfig.Weather, logger)
}

// newGenerator wires the generator from appConfig. outDir overrides the
// configured reports directory when set.
func newGenerator(outDir string, p *observability.Printer) *pipeline.Generator {
	if outDir == "" {
		outDir = appConfig.ReportsDir
	}
	gen := &pipeline.Generator{
		Validator: validation.New(),
		Render:    rendering.OptionsFromConfig(appConfig),
		OutputDir: filepath.Clean(outDir),
		History:   historyStore(),
		Mailer:    notify.NewMailer(appConfig.Email, logger),
		Logger:    logger,
		Printer:   p,
	}
	if ws := weatherSource(); ws != nil {
		gen.Weather = ws
	}
	return gen
}
