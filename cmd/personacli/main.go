package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"reddit-persona/internal/config"
	"reddit-persona/internal/format"
	"reddit-persona/internal/llm"
	"reddit-persona/internal/persona"
	"reddit-persona/internal/reddit"
	"reddit-persona/internal/service"
	"reddit-persona/internal/taxonomy"
)

func main() {
	output := flag.String("o", "", "output filename (default <username>_persona.txt)")
	outFormat := flag.String("format", "text", "output format: text or json")
	narrative := flag.Bool("narrative", false, "append an LLM-written narrative (requires LLM_API_KEY)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: personacli [flags] <reddit profile url>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	username, err := reddit.ExtractUsername(flag.Arg(0))
	if err != nil {
		log.Fatalf("extract username: %v", err)
	}

	tax := taxonomy.Default()
	if cfg.TaxonomyPath != "" {
		tax, err = taxonomy.LoadFile(cfg.TaxonomyPath)
		if err != nil {
			log.Fatalf("load taxonomy: %v", err)
		}
	}

	analyzer, err := persona.NewAnalyzer(cfg.AnalysisConfig(), tax, logger)
	if err != nil {
		log.Fatalf("analyzer config: %v", err)
	}

	fetcher := reddit.NewClient(cfg.RedditBaseURL, cfg.RedditUserAgent, logger)
	personaSvc := service.NewPersonaService(logger, fetcher, analyzer, nil, nil, cfg.FetchLimit, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fmt.Printf("Analyzing user: %s\n", username)
	run, err := personaSvc.GeneratePersona(ctx, username)
	if err != nil {
		log.Fatalf("generate persona: %v", err)
	}
	if run.ItemCount == 0 {
		fmt.Println("Warning: no usable content found, persona contains fallbacks only")
	}

	var out []byte
	switch *outFormat {
	case "text":
		report := format.Text(run)
		if *narrative {
			if cfg.LLMAPIKey == "" {
				log.Fatal("narrative requested but LLM_API_KEY not set")
			}
			narrativeSvc := service.NewNarrativeService(llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger))
			prose, err := narrativeSvc.WriteNarrative(ctx, run)
			if err != nil {
				log.Fatalf("write narrative: %v", err)
			}
			report += "NARRATIVE:\n--------------------\n" + prose + "\n"
		}
		out = []byte(report)
	case "json":
		out, err = format.JSON(run)
		if err != nil {
			log.Fatalf("render json: %v", err)
		}
	default:
		log.Fatalf("unknown format %q", *outFormat)
	}

	filename := *output
	if filename == "" {
		ext := "txt"
		if *outFormat == "json" {
			ext = "json"
		}
		filename = fmt.Sprintf("%s_persona.%s", username, ext)
	}

	if err := os.WriteFile(filename, out, 0o644); err != nil {
		log.Fatalf("write output: %v", err)
	}

	fmt.Printf("Analysis complete: %s (%d items, %d citations)\n", filename, run.ItemCount, len(run.Citations))
}
