package main

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"time"

	"go.uber.org/zap"

	gui "github.com/grindlemire/go-gui"
)

// render builds cfg.Markup, runs cfg.Frames frames and writes the last
// one to cfg.Out.
func render(cfg config, logger *zap.Logger) error {
	if cfg.Frames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", cfg.Frames)
	}

	doc, err := os.ReadFile(cfg.Markup)
	if err != nil {
		return fmt.Errorf("read markup: %w", err)
	}
	instrs, err := parseMarkup(bytes.NewReader(doc))
	if err != nil {
		return err
	}

	var steps []step
	if cfg.Events != "" {
		data, err := os.ReadFile(cfg.Events)
		if err != nil {
			return fmt.Errorf("read events: %w", err)
		}
		if steps, err = loadScript(data); err != nil {
			return err
		}
	}

	opts := []gui.Option{
		gui.WithLogger(logger),
		gui.WithOutputSize(cfg.Width, cfg.Height),
	}
	if cfg.Background != "" {
		opts = append(opts, gui.WithBackground(cfg.Background))
	}
	if cfg.FontSize > 0 {
		opts = append(opts, gui.WithFontSize(cfg.FontSize))
	}
	var fetcher *diskFetcher
	if cfg.Assets != "" {
		fetcher = newDiskFetcher(os.DirFS(cfg.Assets), logger.Named("assets"))
		opts = append(opts, gui.WithAssetFetcher(fetcher))
	}
	if cfg.State != "" {
		data, err := os.ReadFile(cfg.State)
		if err != nil {
			return fmt.Errorf("read state: %w", err)
		}
		opts = append(opts, gui.WithState(data))
	}

	inst, err := gui.Init(opts...)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if _, err := inst.Build(gui.Handle{}, instrs); err != nil {
		return fmt.Errorf("build: %w", err)
	}

	diagnostics := 0
	for frame := range cfg.Frames {
		if fetcher != nil {
			fetcher.Drain()
		}
		for len(steps) > 0 && steps[0].Frame <= frame {
			if err := steps[0].apply(inst); err != nil {
				logger.Warn("input step failed",
					zap.Int("frame", frame),
					zap.String("type", steps[0].Type),
					zap.Error(err))
			}
			steps = steps[1:]
		}
		stats := inst.Frame(time.Duration(frame) * cfg.Interval)
		diagnostics += len(inst.Diagnostics())
		logger.Debug("frame done",
			zap.Uint64("frame", stats.Frame),
			zap.Int("damage", len(stats.Damage)),
			zap.Int("painted", stats.Painted))
	}

	if err := writePNG(cfg.Out, inst); err != nil {
		return err
	}
	if cfg.SaveState != "" {
		data, err := inst.SaveState()
		if err != nil {
			return fmt.Errorf("save state: %w", err)
		}
		if err := os.WriteFile(cfg.SaveState, data, 0o644); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
	}

	logger.Info("rendered",
		zap.String("out", cfg.Out),
		zap.Int("frames", cfg.Frames),
		zap.Int("diagnostics", diagnostics))
	return nil
}

func writePNG(name string, inst *gui.Instance) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("write output: %w", cerr)
		}
	}()
	if err := png.Encode(f, inst.Output()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
