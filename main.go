package main

import (
	"net/http"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"spindex/archive"
	"spindex/config"
	"spindex/handlers"
	"spindex/moods"
	"spindex/sentry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
	config.NewConfig()

	log.SetFormatter(&nested.Formatter{
		HideKeys:        true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	level, err := log.ParseLevel(config.Config.Options.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	sentry.Init()

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if path := config.Config.Archive.MoodMappingsPath; path != "" {
		if err := moods.LoadMappings(path); err != nil {
			log.Fatalf("Error loading mood mappings: %v", err)
		}
	}

	data, err := archive.Get()
	if err != nil {
		log.Fatalf("Error loading archive: %v", err)
	}

	manager := handlers.NewManager(data)

	router := gin.Default()
	router.Use(sentry.GetSentryGin())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ok":        true,
			"playlists": len(data.Playlists),
			"artists":   len(data.AllArtists),
		})
	})

	router.GET("/tools", manager.ListToolsHTTP)
	router.POST("/tools/:name", manager.HandleHTTP)

	port := config.Config.Options.Port
	log.Infof("Starting server on :%s", port)
	return http.ListenAndServe(":"+port, router)
}
