package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AmbroTall/ask-the-web/internal/cache"
	"github.com/AmbroTall/ask-the-web/internal/model"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached search, scrape and answer results",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached results",
	Long: `Remove every cached stage result (search responses, scraped page
text and generated answers). The next ask re-fetches everything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := model.DefaultConfig()
		dir := cfg.Cache.Dir
		if dir == "" {
			dir = defaultCacheDir()
		}

		c := cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
		if err := c.Clear(); err != nil {
			return fmt.Errorf("error clearing cache: %w", err)
		}

		fmt.Printf("✓ Cleared cache: %s\n", dir)
		return nil
	},
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".askweb-cache"
	}
	return filepath.Join(home, ".askweb", "cache")
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
