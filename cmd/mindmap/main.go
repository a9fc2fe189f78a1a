// mindmap 脑图格式转换命令行工具
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version 编译时通过ldflags设置
var Version = "dev"

var (
	logger  = zap.NewNop()
	verbose bool
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	_ = logger.Sync()
	os.Exit(exitCode(err))
}

var rootCmd = &cobra.Command{
	Use:   "mindmap",
	Short: "Convert xmind and freemind files to mind map documents",
	Long: `mindmap converts xmind (*.xmind) and freemind (*.mm) files, or custom
flat node lists, into a unified mind map document and exports it as
json, markdown, html or a static outline page.

Environment (also read from .env):
  MINDMAP_ENV        development enables human readable logs
  MINDMAP_LOG_LEVEL  debug, info, warn, error (default info)
  MINDMAP_DESKTOP    desktop service address (default http://127.0.0.1:6595)`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		l, err := newLogger(os.Getenv("MINDMAP_ENV"), os.Getenv("MINDMAP_LOG_LEVEL"))
		if err != nil {
			return &configError{err: err}
		}
		logger = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Version = Version
	rootCmd.AddCommand(convertCmd, watchCmd, openCmd)
}

func newLogger(env, level string) (*zap.Logger, error) {
	if verbose {
		level = "debug"
	}

	cfg := zap.NewProductionConfig()
	if strings.EqualFold(env, "development") {
		cfg = zap.NewDevelopmentConfig()
	}
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("MINDMAP_LOG_LEVEL: %w", err)
		}
		cfg.Level = lvl
	}
	return cfg.Build()
}
