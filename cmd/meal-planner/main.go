package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"daily-meal-planner/internal/api"
	"daily-meal-planner/internal/app"
	"daily-meal-planner/internal/config"
	"daily-meal-planner/internal/render"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	application, cleanup, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer cleanup()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "plan":
		planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
		dateFlag := planCmd.String("date", "", "Plan date as YYYY-MM-DD (default: today)")
		jsonFlag := planCmd.Bool("json", false, "Print the raw planning result as JSON")
		planCmd.Parse(os.Args[2:])

		date, err := resolveDate(*dateFlag)
		if err != nil {
			log.Fatalf("Invalid date: %v", err)
		}

		result, err := application.PlanDay(ctx, date)
		if err != nil {
			log.Fatalf("Planning failed: %v", err)
		}

		if *jsonFlag {
			data, err := render.JSON(result)
			if err != nil {
				log.Fatalf("Failed to render result: %v", err)
			}
			fmt.Println(string(data))
		} else {
			fmt.Print(render.Markdown(result))
			if advice, err := application.Advise(ctx, result); err != nil {
				log.Printf("Warning: failed to get plan advice: %v", err)
			} else if advice != "" {
				fmt.Printf("\nCoach says: %s\n", advice)
			}
		}

		if !result.Success {
			os.Exit(2)
		}

	case "import":
		importCmd := flag.NewFlagSet("import", flag.ExitOnError)
		importCmd.Parse(os.Args[2:])
		if importCmd.NArg() < 1 {
			log.Fatal("Usage: meal-planner import <url>")
		}

		rec, err := application.ImportRecipe(ctx, importCmd.Arg(0))
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		fmt.Printf("Imported %q (%d min, %d ingredients) as %s\n",
			rec.Name, rec.CookingTimeMinutes, len(rec.Ingredients), rec.ID)

	case "recipes":
		recipes, err := application.ListRecipes(ctx)
		if err != nil {
			log.Fatalf("Failed to list recipes: %v", err)
		}
		if len(recipes) == 0 {
			fmt.Println("No recipes in the catalog. Import one with: meal-planner import <url>")
			return
		}
		for _, rec := range recipes {
			fmt.Printf("%-24s %s (%d min)\n", rec.ID, rec.Name, rec.CookingTimeMinutes)
		}

	case "token":
		tokenCmd := flag.NewFlagSet("token", flag.ExitOnError)
		ttl := tokenCmd.Duration("ttl", time.Hour, "Token lifetime")
		tokenCmd.Parse(os.Args[2:])

		if err := cfg.ValidateServer(); err != nil {
			log.Fatalf("Cannot issue token: %v", err)
		}
		token, err := api.IssueToken(cfg.APISecret, *ttl)
		if err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		fmt.Println(token)

	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := application.CleanupMetrics(ctx, *days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func resolveDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", raw)
}

func printUsage() {
	fmt.Println("Usage: meal-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan               Plan a day of meals (-date YYYY-MM-DD, -json)")
	fmt.Println("  import <url>       Import a recipe from a web page")
	fmt.Println("  recipes            List the recipe catalog")
	fmt.Println("  token              Issue an API bearer token (-ttl duration)")
	fmt.Println("  metrics-cleanup    Remove old metric records (-days N)")
}
