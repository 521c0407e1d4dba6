package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sebastiankruger/chemlab-simulator/internal/config"
	"github.com/sebastiankruger/chemlab-simulator/internal/core"
	"github.com/sebastiankruger/chemlab-simulator/internal/dataset"
	"github.com/sebastiankruger/chemlab-simulator/internal/lab"
	"github.com/sebastiankruger/chemlab-simulator/internal/labs"
	"github.com/sebastiankruger/chemlab-simulator/internal/plotting"
	"github.com/sebastiankruger/chemlab-simulator/internal/raman"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// A .env file is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to read .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	if cfg.SpectrumFile != "" {
		log.Info().Str("file", cfg.SpectrumFile).Int("peaks", cfg.FitPeaks).Msg("Fitting spectrum")
		if err := runFit(cfg); err != nil {
			log.Fatal().Err(err).Msg("Fit failed")
		}
		return
	}

	log.Info().Str("lab", cfg.Lab).Msg("Starting virtual lab")
	if err := runLab(cfg); err != nil {
		log.Fatal().Err(err).Msg("Lab run failed")
	}
}

func runLab(cfg *config.Config) error {
	model, err := labs.New(cfg.Lab)
	if err != nil {
		return err
	}
	rt, err := lab.New(model, lab.WithOutputDir(cfg.OutputDir))
	if err != nil {
		return err
	}
	if cfg.StudentID != "" {
		if err := rt.SetIdentifier(cfg.StudentID); err != nil {
			return err
		}
	}
	if err := rt.SetParameters(cfg.Parameters()); err != nil {
		return err
	}

	ds, err := rt.CreateData()
	if errors.Is(err, core.ErrSampleNotSelected) {
		log.Error().Strs("samples", rt.Samples()).Msg("Set SAMPLE to one of the available samples")
	}
	if err != nil {
		return err
	}

	file, err := rt.WriteToFile("")
	if err != nil {
		return err
	}
	fmt.Println(file)

	if cfg.PlotFile == "" {
		return nil
	}
	p, err := plotting.QuickPlot(plotting.Options{
		Scatter: plotting.One(ds),
		Columns: ds.Columns,
	})
	if err != nil {
		return err
	}
	if err := plotting.Save(p, cfg.PlotFile); err != nil {
		return err
	}
	log.Info().Str("file", cfg.PlotFile).Msg("Plot written")
	return nil
}

func runFit(cfg *config.Config) error {
	x, y, err := raman.ReadSpectrumFile(cfg.SpectrumFile)
	if err != nil {
		return err
	}
	fitter, err := raman.NewFitter(x, y)
	if err != nil {
		return err
	}
	if cfg.FitRangeMin != nil {
		if err := fitter.SelectRange(*cfg.FitRangeMin, *cfg.FitRangeMax); err != nil {
			return err
		}
	}

	_, err = fitter.Fit(raman.FitOptions{
		Peaks:            cfg.FitPeaks,
		Fixed:            cfg.FitFixed,
		RemoveBackground: cfg.FitBackground,
		Positions:        cfg.FitPositions,
	})
	if errors.Is(err, raman.ErrFitDidNotConverge) {
		if guess := fitter.Guess(); guess != nil {
			log.Info().Msg("Initial guess was:\n" + raman.RenderParams(guess))
		}
	}
	if err != nil {
		return err
	}
	fmt.Println(fitter.RenderResults())

	if cfg.PlotFile == "" {
		return nil
	}
	ax, ay := fitter.Active()
	cx, cy, err := fitter.FitCurve()
	if err != nil {
		return err
	}
	columns := []string{"Raman shift (cm-1)", "Intensity"}
	p, err := plotting.QuickPlot(plotting.Options{
		Scatter: plotting.One(dataset.New(columns, ax, ay)),
		Line:    plotting.One(dataset.New(columns, cx, cy)),
		Columns: columns,
	})
	if err != nil {
		return err
	}
	return plotting.Save(p, cfg.PlotFile)
}
