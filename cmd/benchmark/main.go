// ABOUTME: Command-line benchmark runner for RAGAS tests
// ABOUTME: Executes RAGAS benchmarks against the live backend and outputs JSON results

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/acmecloud/askdocs/benchmarks/ragas"
	"github.com/acmecloud/askdocs/internal/config"
)

func main() {
	testID := flag.String("test", "", "Run specific test (sla, pricing, followup). If empty, runs all tests.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (continuing anyway): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required for benchmarks")
	}

	fmt.Println("========================================")
	fmt.Println("askdocs RAGAS Benchmarks")
	fmt.Println("========================================")
	fmt.Println()

	runner, err := ragas.NewBenchmarkRunner(cfg, *verbose)
	if err != nil {
		log.Fatalf("Failed to create benchmark runner: %v", err)
	}

	ctx := context.Background()
	var results []ragas.Result

	if *testID == "" {
		fmt.Println("Running all RAGAS benchmark tests...")
		fmt.Println()

		results, err = runner.RunAllScenarios(ctx)
		if err != nil {
			log.Fatalf("Benchmark failed: %v", err)
		}
	} else {
		var scenario ragas.Scenario

		switch *testID {
		case "sla":
			scenario = ragas.GetScenarioSLA()
		case "pricing":
			scenario = ragas.GetScenarioPricing()
		case "followup":
			scenario = ragas.GetScenarioFollowUp()
		default:
			log.Fatalf("Unknown test ID: %s (valid options: sla, pricing, followup)", *testID)
		}

		fmt.Printf("Running test: %s\n\n", scenario.Name)

		result, err := runner.RunScenario(ctx, scenario)
		if err != nil {
			log.Fatalf("Test failed: %v", err)
		}

		results = []ragas.Result{result}
	}

	fmt.Println("\n========================================")
	fmt.Println("BENCHMARK SUMMARY")
	fmt.Println("========================================")

	passed := 0
	failed := 0

	for _, result := range results {
		fmt.Printf("\n%s: %s\n", result.TestID, result.TestName)
		fmt.Printf("  Faithfulness: %.2f\n", result.FaithfulnessScore)
		fmt.Printf("  Context Recall: %.2f\n", result.ContextRecallScore)
		fmt.Printf("  Overall: %.2f\n", result.OverallScore)
		fmt.Printf("  Status: %s\n", result.Status)

		if result.Status == "PASS" {
			passed++
		} else {
			failed++
		}
	}

	fmt.Println("\n========================================")
	fmt.Printf("Total Tests: %d\n", len(results))
	fmt.Printf("Passed: %d\n", passed)
	fmt.Printf("Failed: %d\n", failed)
	fmt.Println("========================================")

	if err := runner.ExportResults(results, *outputPath); err != nil {
		log.Fatalf("Failed to export results: %v", err)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
