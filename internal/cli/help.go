package cli

import (
	"embed"
	"io/fs"

	"github.com/arthur-debert/eventmgr/pkg/cobrax/topics"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var helpTopics embed.FS

// installTopics adds the embedded help topics to rootCmd
func installTopics(rootCmd *cobra.Command, renderer topics.Renderer) {
	sub, err := fs.Sub(helpTopics, "topics")
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}
	tm, err := topics.New(sub, topics.Options{Renderer: renderer})
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}
	tm.Install(rootCmd)
}
