package main

import (
	"embed"
	"io/fs"
	"os"

	"github.com/arthur-debert/assetwatch/pkg/cobrax/topics"
	"github.com/arthur-debert/assetwatch/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// installHelpTopics adds the embedded topics to "assetwatch help"
func installHelpTopics(rootCmd *cobra.Command) {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}

	var renderer topics.Renderer = topics.PlainRenderer{}
	if style.ColorEnabled(os.Stdout) {
		renderer = topics.GlamourRenderer{Width: 80}
	}

	m, err := topics.Load(sub, topics.Options{Renderer: renderer})
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}
	topics.Install(rootCmd, m)
}
