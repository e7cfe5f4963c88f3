package cmd

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/bibliotheca/internal/config"
	"github.com/lepinkainen/bibliotheca/internal/openlibrary"
	"github.com/lepinkainen/bibliotheca/internal/storage"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"
)

// CLI represents the complete command structure for the bibliotheca application
type CLI struct {
	// Global flags
	DBFile    string `help:"Path to the catalog database file" default:"./bibliotheca.db"`
	CoversDir string `help:"Directory for downloaded cover images" default:"./covers"`

	Book   BookCmd   `cmd:"" help:"Manage books in the local catalog"`
	Author AuthorCmd `cmd:"" help:"Manage authors in the local catalog"`
	Search SearchCmd `cmd:"" help:"Search OpenLibrary for books"`
	Enrich EnrichCmd `cmd:"" help:"Backfill missing book metadata from OpenLibrary"`
	Stats  StatsCmd  `cmd:"" help:"Show library statistics"`
	Status StatusCmd `cmd:"" help:"Test OpenLibrary connectivity"`
	Covers CoversCmd `cmd:"" help:"Download cover images for the catalog"`
	Reset  ResetCmd  `cmd:"" help:"Reset the catalog to the sample data"`
}

// App is the composition root handed to every command. The storage gateway
// and the metadata client are constructed once here and passed down
// explicitly; no command reaches into ambient state.
type App struct {
	Gateway *storage.Gateway
	Client  *openlibrary.Client
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	// Create CLI instance
	var cli CLI

	// Parse command line with Kong
	ctx := kong.Parse(&cli,
		kong.Name("bibliotheca"),
		kong.Description("A personal library catalog with OpenLibrary enrichment."),
		kong.UsageOnError(),
	)

	// Update global config based on parsed flags
	updateGlobalConfig(&cli)

	app, err := newApp()
	if err != nil {
		slog.Error("Startup failed", "error", err)
		os.Exit(1)
	}

	// Execute the selected command
	runErr := ctx.Run(app)
	if err := app.Gateway.Close(); err != nil {
		slog.Warn("Closing catalog store failed", "error", err)
	}
	if runErr != nil {
		slog.Error("Command failed", "error", runErr)
		os.Exit(1)
	}
}

func newApp() (*App, error) {
	gateway, err := storage.Open(config.DBFile)
	if err != nil {
		return nil, err
	}

	client := openlibrary.NewClient(
		openlibrary.WithBaseURL(config.OpenLibraryBaseURL),
		openlibrary.WithTimeout(config.OpenLibraryTimeout),
		openlibrary.WithStatusFunc(logStatus),
	)

	return &App{Gateway: gateway, Client: client}, nil
}

// logStatus is the default observable status sink: transitions land in the
// log rather than a status panel.
func logStatus(status openlibrary.Status, message string) {
	switch status {
	case openlibrary.StatusError, openlibrary.StatusOffline:
		slog.Warn("OpenLibrary status", "status", string(status), "message", message)
	default:
		slog.Debug("OpenLibrary status", "status", string(status))
	}
}

func initConfig() {
	viper.SetDefault("dbfile", "./bibliotheca.db")
	viper.SetDefault("coversdir", "./covers")

	// OpenLibrary defaults
	viper.SetDefault("openlibrary.baseurl", "https://openlibrary.org")
	viper.SetDefault("openlibrary.timeout", "10s")

	// Enrichment defaults
	viper.SetDefault("enrich.maxperrun", 5)
	viper.SetDefault("enrich.pause", "1s")

	// Enable environment variable support
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	// Update config based on CLI flags
	config.SetDBFile(cli.DBFile)
	config.SetCoversDir(cli.CoversDir)
}

func initLogging() {
	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
