//go:build ignore

package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"mini-shop/internal/catalog"
)

// generateSampleCatalog writes a gzipped catalogue snapshot that the
// "file" catalog source and the snapshot fallback can serve.
func main() {
	filePath := "data/catalog/products.json.gz"
	if len(os.Args) > 1 {
		filePath = os.Args[1]
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := []catalog.ProductResponse{
		{ID: "1", Name: "Bentley Focus", Image: "https://loremflickr.com/640/480/food", Price: "51.00", Description: "Quasi adipisci sint veniam delectus.", Model: "CTS", Brand: "Lamborghini", CreatedAt: "2023-07-17T07:21:02.529Z"},
		{ID: "2", Name: "Stingray Land Cruiser", Image: "https://loremflickr.com/640/480/people", Price: "682.00", Description: "Ipsum excepturi aperiam.", Model: "Roadster", Brand: "Smart", CreatedAt: "2023-07-16T20:51:52.139Z"},
		{ID: "3", Name: "Charger Aventador", Image: "https://loremflickr.com/640/480/city", Price: "216.00", Description: "Ab consequatur soluta.", Model: "Cruze", Brand: "Bugatti", CreatedAt: "2023-07-17T02:49:46.692Z"},
		{ID: "4", Name: "Golf Mustang", Image: "https://loremflickr.com/640/480/transport", Price: "1190.00", Description: "Nemo ducimus sed.", Model: "Golf", Brand: "Volkswagen", CreatedAt: "2023-07-16T23:40:00.000Z"},
		{ID: "5", Name: "Model Y", Image: "https://loremflickr.com/640/480/technics", Price: "980.50", Description: "Delectus numquam facilis.", Model: "Model Y", Brand: "Tesla", CreatedAt: "2023-07-17T11:02:17.101Z"},
	}

	if err := createSnapshotFile(filePath, products); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d products\n", filePath, len(products))
}

func createSnapshotFile(filePath string, products []catalog.ProductResponse) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	if err := json.NewEncoder(gzipWriter).Encode(products); err != nil {
		return fmt.Errorf("failed to write products: %w", err)
	}

	return nil
}
