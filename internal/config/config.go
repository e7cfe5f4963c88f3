package config

import (
	"time"

	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// DBFile is the path to the catalog database file
	DBFile string
	// CoversDir is the directory downloaded cover images are written to
	CoversDir string
	// OpenLibraryBaseURL is the base URL of the OpenLibrary API
	OpenLibraryBaseURL string
	// OpenLibraryTimeout bounds each data call to the API
	OpenLibraryTimeout time.Duration
	// EnrichMaxPerRun caps remote lookups per batch enrichment run
	EnrichMaxPerRun int
	// EnrichPause is the fixed delay between successive remote calls
	EnrichPause time.Duration
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("dbfile", "./bibliotheca.db")
	viper.SetDefault("coversdir", "./covers")
	viper.SetDefault("openlibrary.baseurl", "https://openlibrary.org")
	viper.SetDefault("openlibrary.timeout", "10s")
	viper.SetDefault("enrich.maxperrun", 5)
	viper.SetDefault("enrich.pause", "1s")

	// Get values from viper
	DBFile = viper.GetString("dbfile")
	CoversDir = viper.GetString("coversdir")
	OpenLibraryBaseURL = viper.GetString("openlibrary.baseurl")
	OpenLibraryTimeout = viper.GetDuration("openlibrary.timeout")
	EnrichMaxPerRun = viper.GetInt("enrich.maxperrun")
	EnrichPause = viper.GetDuration("enrich.pause")
}

// SetDBFile sets the catalog database path
func SetDBFile(path string) {
	if path != "" {
		DBFile = path
	}
}

// SetCoversDir sets the cover image directory
func SetCoversDir(dir string) {
	if dir != "" {
		CoversDir = dir
	}
}
