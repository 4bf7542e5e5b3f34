package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fitfuel/fitfuel-server/pkg/catalog"
	"github.com/fitfuel/fitfuel-server/pkg/domain/file_generators"
	"github.com/fitfuel/fitfuel-server/pkg/domain/planner"
	"github.com/fitfuel/fitfuel-server/pkg/oauth"
	"github.com/fitfuel/fitfuel-server/pkg/render"
)

func main() {
	catalogFile := flag.String("catalog", "", "Path to exercise catalog JSON file")
	apiURL := flag.String("api", "", "Base URL of the exercise catalog API (instead of -catalog)")
	token := flag.String("token", os.Getenv("CATALOG_API_TOKEN"), "Bearer token for -api")
	days := flag.Int("days", 3, "Training days per week")
	goal := flag.String("goal", "", "Training goal (strength, endurance, balanced)")
	seed := flag.Uint64("seed", 0, "Random seed; omit for a random plan")
	format := flag.String("format", "text", "Output format: json or text")
	fitDir := flag.String("fit-dir", "", "Directory to write one FIT workout per day")
	xlsxPath := flag.String("xlsx", "", "Path to write the plan workbook")
	configPath := flag.String("config", "", "Path to a YAML program file")
	flag.Parse()

	if (*catalogFile == "") == (*apiURL == "") {
		fmt.Fprintln(os.Stderr, "Exactly one of -catalog or -api is required")
		flag.Usage()
		os.Exit(1)
	}
	if *format != "json" && *format != "text" {
		log.Fatalf("Unknown format %q", *format)
	}

	seedSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})
	if !seedSet {
		*seed = rand.Uint64()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// 1. Load program tables
	cfg, err := planner.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load program file: %v", err)
	}

	// 2. Load catalog
	var src catalog.Source = catalog.FileSource{Path: *catalogFile}
	if *apiURL != "" {
		src = catalog.NewHTTPSource(*apiURL, oauth.StaticTokenSource(*token))
	}
	exercises, err := src.ListExercises(ctx)
	if err != nil {
		log.Fatalf("Failed to load exercise catalog: %v", err)
	}

	// 3. Generate
	gen := planner.NewGenerator(cfg, planner.NewSeededSource(*seed))
	if *goal == "" {
		*goal = gen.Options().DefaultGoal
	}
	plan := gen.Generate(*days, *goal, exercises)

	// 4. Print
	switch *format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(plan); err != nil {
			log.Fatalf("Failed to write plan: %v", err)
		}
	default:
		if err := render.Text(os.Stdout, plan); err != nil {
			log.Fatalf("Failed to write plan: %v", err)
		}
	}
	fmt.Fprintf(os.Stderr, "Seed: %d (%d exercises from a catalog of %d)\n", *seed, plan.ExerciseCount(), len(exercises))

	// 5. Artifacts
	if *fitDir != "" {
		if err := writeFitFiles(*fitDir, plan); err != nil {
			log.Fatalf("Failed to write FIT workouts: %v", err)
		}
	}
	if *xlsxPath != "" {
		data, err := file_generators.GenerateWorkbook(plan)
		if err != nil {
			log.Fatalf("Failed to build workbook: %v", err)
		}
		if err := os.WriteFile(*xlsxPath, data, 0644); err != nil {
			log.Fatalf("Failed to write workbook: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote workbook to %s (%d bytes)\n", *xlsxPath, len(data))
	}
}

func writeFitFiles(dir string, plan planner.WorkoutPlan) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	createdAt := time.Now()
	for i, day := range plan.Plan {
		if len(day.Exercises) == 0 {
			fmt.Fprintf(os.Stderr, "Skipping day %d (no exercises)\n", day.Day)
			continue
		}
		data, err := file_generators.GenerateWorkoutFit(plan, i, createdAt)
		if err != nil {
			return fmt.Errorf("day %d: %w", day.Day, err)
		}
		out := filepath.Join(dir, fmt.Sprintf("day-%d.fit", day.Day))
		if err := os.WriteFile(out, data, 0644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", out, len(data))
	}
	return nil
}
