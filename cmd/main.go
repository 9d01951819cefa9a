package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
	"github.com/spf13/cobra"

	"powerball-news/internal/config"
	"powerball-news/internal/handlers"
	"powerball-news/internal/scraper"
	"powerball-news/internal/services"
	"powerball-news/internal/writer"
)

const appName = "powerball-news"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          appName,
		Short:        "Writes news articles about the latest Powerball drawing",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", config.Path(), "path to the YAML config file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(configPath, runServer)
		},
	}

	var useAI bool
	article := &cobra.Command{
		Use:   "article",
		Short: "Write one article and print it as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(configPath, func(cfg *config.Config, service *services.ArticleService) error {
				return printArticle(cmd, service, useAI)
			})
		},
	}
	article.Flags().BoolVar(&useAI, "use-ai", true, "use the text generation service (--use-ai=false for the template)")

	install := &cobra.Command{
		Use:   "install-browser",
		Short: "Download the playwright driver and Chromium",
		RunE: func(*cobra.Command, []string) error {
			return scraper.InstallBrowser()
		},
	}

	root.AddCommand(serve, article, install)
	root.RunE = serve.RunE
	return root
}

// withApp loads the configuration, sets up logging and wires the article
// pipeline before handing over to run.
func withApp(configPath string, run func(*config.Config, *services.ArticleService) error) error {
	// 1. Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logging; logger.Close also closes the log file.
	logFile, err := openLogFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logger.Init(appName, cfg.Log.Verbose, false, logFile).Close()
	if cfg.Log.Verbose {
		logger.SetLevel(1)
	}
	if cfg.Generator.APIKey == "" {
		logger.Warning("ANTHROPIC_API_KEY is not set, generated articles will fail")
	}

	// 3. Wire the scrape and render steps
	fetcher := scraper.NewBrowserFetcher(scraper.BrowserOptions{
		ExecutablePath:    cfg.Scraper.BrowserPath,
		NavigationTimeout: cfg.Scraper.NavigationTimeout,
		WindowWidth:       cfg.Scraper.WindowWidth,
		WindowHeight:      cfg.Scraper.WindowHeight,
	})
	source := scraper.NewPowerballScraper(fetcher, cfg.Scraper.URL)
	generator := writer.NewAnthropicGenerator(writer.AnthropicOptions{
		APIKey:      cfg.Generator.APIKey,
		BaseURL:     cfg.Generator.BaseURL,
		Model:       cfg.Generator.Model,
		MaxTokens:   cfg.Generator.MaxTokens,
		Temperature: cfg.Generator.Temperature,
	})
	service := services.NewArticleService(source, writer.New(generator))

	if err := run(cfg, service); err != nil {
		logger.Errorf("%v", err)
		return err
	}
	return nil
}

func openLogFile(path string) (io.Writer, error) {
	if path == "" {
		return io.Discard, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return f, nil
}

func runServer(cfg *config.Config, service *services.ArticleService) error {
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Set up the Gin router
	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestIDMiddleware(), handlers.LoggerMiddleware())

	handlers.NewHTTPHandler(service).RegisterRoutes(r)

	logger.Infof("Server starting on %s", cfg.Server.Address)
	if err := r.Run(cfg.Server.Address); err != nil {
		return fmt.Errorf("run server: %w", err)
	}
	return nil
}

func printArticle(cmd *cobra.Command, service *services.ArticleService, useAI bool) error {
	article, err := service.GenerateArticle(cmd.Context(), useAI)
	if err != nil {
		return fmt.Errorf("generate article: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(article)
}
