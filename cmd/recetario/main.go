package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		if err := runSeed(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("recetario %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`recetario - a recipe publishing engine built with Go, Echo, and templ

Usage:
  recetario <command> [arguments]

Commands:
  seed          Ensure baseline tags plus a demo user and recipe exist
  version       Print the recetario version
  help          Show this help message

Environment:
  DATABASE_PATH    SQLite database file (default "data/recetas.db")`)
}
