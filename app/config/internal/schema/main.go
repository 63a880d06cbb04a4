package main

import (
	"log"
	"os"

	"github.com/umputun/blog/app/config"
)

func main() {
	data, err := config.Schema()
	if err != nil {
		log.Fatalf("failed to make schema: %v", err)
	}

	outputPath := "site.schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil { //nolint:gosec // schema file is not sensitive
		log.Fatalf("failed to write schema file: %v", err)
	}
}
