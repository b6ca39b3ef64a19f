package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aqua777/ragspace/config"
	"github.com/aqua777/ragspace/rag"
	"github.com/aqua777/ragspace/rag/index"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "ragspace",
	Short: "Retrieval-augmented question answering over document spaces",
	Long: `ragspace ingests documents into named spaces, embeds their chunks,
and answers questions grounded in the most relevant passages.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
}

// buildSystem assembles a System from the active configuration.
func buildSystem() (*rag.System, error) {
	var (
		cfg *config.AppConfig
		err error
	)
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, _, err = config.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	sys, err := rag.NewSystem(rag.Config{
		OpenAIKey:      cfg.APIKey(),
		OpenAIBaseURL:  cfg.OpenAI.BaseURL,
		LLMModel:       cfg.OpenAI.LLMModel,
		EmbeddingModel: cfg.OpenAI.EmbeddingModel,
		ChunkSize:      cfg.Chunker.ChunkSize,
		ChunkOverlap:   cfg.Chunker.ChunkOverlap,
		TopK:           cfg.Retrieval.TopK,
		PersistPath:    cfg.Storage.PersistPath,
	})
	if err != nil {
		return nil, err
	}

	switch cfg.Retrieval.IndexBackend {
	case "", "brute":
		// default
	case "chromem":
		sys.WithIndexBuilder(index.NewChromemBuilder())
	default:
		return nil, fmt.Errorf("unknown index backend: %s", cfg.Retrieval.IndexBackend)
	}
	return sys, nil
}
