package main

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oGsLP/lyrics-download-and-translate/config"
)

func init() {
	log.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
	})
	log.SetOutput(os.Stdout)

	if err := godotenv.Load(); err != nil {
		log.Debugf("No .env file loaded: %v", err)
	}

	env := config.LoadEnv()
	if level, err := log.ParseLevel(env.LogLevel); err == nil {
		log.SetLevel(level)
	}
}

func main() {
	root := &cobra.Command{
		Use:           "lyrics-dl",
		Short:         "Download lyrics from public sources and translate them to Chinese",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newDownloadCommand())
	root.AddCommand(newTranslateCommand())
	root.AddCommand(newSourcesCommand())

	cobra.CheckErr(root.Execute())
}
