package main

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jan-bar/mindmap/desktop"
)

var (
	openURL     string
	openTimeout time.Duration
	openType    string
	openSheet   int
)

var openCmd = &cobra.Command{
	Use:   "open <file>",
	Short: "Import a file and open it in the desktop client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		docs, err := loadDocuments(&Config{FromType: openType}, path, logger)
		if err != nil {
			return err
		}
		if openSheet < 0 || openSheet >= len(docs) {
			return errors.New("sheet index out of range")
		}

		url := openURL
		if url == "" {
			url = os.Getenv("MINDMAP_DESKTOP")
		}
		client := desktop.NewClient(url, logger)
		client.Timeout = openTimeout

		logger.Debug("open in desktop", zap.String("path", path), zap.String("url", client.BaseURL))
		return client.Launch(cmd.Context(), docs[openSheet], filepath.Base(path))
	},
}

func init() {
	openCmd.Flags().StringVar(&openURL, "url", "", "Desktop service address, overrides MINDMAP_DESKTOP")
	openCmd.Flags().DurationVar(&openTimeout, "timeout", desktop.DefaultTimeout, "How long to wait for the desktop service")
	openCmd.Flags().StringVar(&openType, "type", "auto", "Source format: auto, xmind, freemind, edrawmax, json, youdao")
	openCmd.Flags().IntVar(&openSheet, "sheet", 0, "Sheet index for xmind files with several sheets")
}
