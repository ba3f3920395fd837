package main

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"storefront/internal/seed"
)

// generateSampleCatalog writes a gzipped seed file for local development.
// Import it with: storefrontctl seed --file data/seeds/catalog.csv.gz
func main() {
	dataDir := "data/seeds"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	rows := []seed.Row{
		{Category: "Tools", Name: "Claw Hammer", Description: "16 oz steel head", Stock: 25, Price: 24.50},
		{Category: "Tools", Name: "Adjustable Wrench", Description: "8 inch, chrome finish", Stock: 40, Price: 15.75},
		{Category: "Tools", Name: "Screwdriver Set", Description: "Six pieces", Stock: 18, Price: 19.99},
		{Category: "Garden", Name: "Leaf Rake", Description: "", Stock: 12, Price: 12.00},
		{Category: "Garden", Name: "Hose Reel", Description: "Holds 30 m of hose", Stock: 0, Price: 54.90},
		{Category: "Widgets", Name: "Widget", Description: "A widget", Stock: 10, Price: 9.99},
		{Category: "Widgets", Name: "Sprocket", Description: "Twelve teeth", Stock: 100, Price: 1.20},
	}

	filePath := filepath.Join(dataDir, "catalog.csv.gz")
	if err := createSeedFile(filePath, rows); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d products\n", filePath, len(rows))
}

func createSeedFile(filePath string, rows []seed.Row) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	writer := csv.NewWriter(gzipWriter)
	if err := writer.Write(seed.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Category,
			row.Name,
			row.Description,
			strconv.Itoa(row.Stock),
			strconv.FormatFloat(row.Price, 'f', 2, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %q: %w", row.Name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
