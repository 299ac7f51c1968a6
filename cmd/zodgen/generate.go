package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/zodgen/compiler/gen"
	"github.com/syssam/zodgen/compiler/load"
)

var watchMode bool

var generateCmd = &cobra.Command{
	Use:   "generate [model files]",
	Short: "Generate Zod schemas from model documents",
	Long: `Generate reads one or more model documents (JSON or YAML) and writes
one TypeScript schema document per model into the output directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if watchMode {
			return watchLoop(cmd.Context(), args)
		}
		return generateAll(cmd.Context(), args)
	},
}

func init() {
	generateCmd.Flags().StringP("out", "o", ".", "output directory for generated documents")
	generateCmd.Flags().String("import", "zod", "module specifier of the import preamble")
	generateCmd.Flags().String("namespace", "z", "base schema namespace token")
	generateCmd.Flags().String("suffix", "Schema", "suffix for generated schema identifiers")
	generateCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "regenerate whenever a model document changes")

	for _, key := range []string{"out", "import", "namespace", "suffix"} {
		cobra.CheckErr(viper.BindPFlag(key, generateCmd.Flags().Lookup(key)))
	}
}

// generateAll processes the given model documents concurrently. Each model
// still runs its own single sequential generation pass.
func generateAll(ctx context.Context, files []string) error {
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, file := range files {
		file := file
		eg.Go(func() error {
			return generateOne(file)
		})
	}
	return eg.Wait()
}

func generateOne(file string) error {
	buf, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	var model *load.Model
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		model, err = load.UnmarshalModelYAML(buf)
	default:
		model, err = load.UnmarshalModel(buf)
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", file, err)
	}
	cfg, err := gen.NewConfig(
		gen.WithImport(viper.GetString("import")),
		gen.WithNamespace(viper.GetString("namespace")),
		gen.WithSuffix(viper.GetString("suffix")),
	)
	if err != nil {
		return err
	}
	graph, err := gen.NewGraph(cfg, model)
	if err != nil {
		return err
	}
	doc, err := gen.Generate(graph)
	if err != nil {
		return err
	}
	outDir := viper.GetString("out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	out := filepath.Join(outDir, base+".ts")
	if err := os.WriteFile(out, []byte(doc), 0o644); err != nil {
		return err
	}
	zap.S().Infow("generated schemas",
		"model", file,
		"output", out,
		"entities", len(graph.Nodes),
		"bytes", len(doc),
	)
	return nil
}

// watchLoop regenerates a model document whenever it changes on disk.
func watchLoop(ctx context.Context, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	for _, file := range files {
		if err := watcher.Add(file); err != nil {
			return fmt.Errorf("watch %s: %w", file, err)
		}
	}
	if err := generateAll(ctx, files); err != nil {
		zap.S().Errorw("generation failed", "error", err)
	}
	zap.S().Infow("watching model documents", "files", files)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := generateOne(ev.Name); err != nil {
				zap.S().Errorw("generation failed", "model", ev.Name, "error", err)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			zap.S().Errorw("watch error", "error", werr)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
