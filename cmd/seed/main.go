package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/craftify/craftify-backend/config"
	"github.com/craftify/craftify-backend/internal/app/model"
	"github.com/craftify/craftify-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Bulk-imports item listings from an XLSX sheet with the columns:
// seller_id, name, description, price, quantity.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	items, err := readItemsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total items to import: %d\n", len(items))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 1000
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := db.GetDB().CreateInBatches(items, batchSize).Error; err != nil {
		log.Fatal("Failed to bulk create items:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total items imported: %d\n", len(items))
}

func readItemsFromXLSX(filePath string) ([]model.Item, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet has no data rows")
	}

	var items []model.Item
	// Row 0 is the header
	for i, row := range rows[1:] {
		if len(row) < 5 {
			fmt.Printf("Skipping row %d: expected 5 columns, got %d\n", i+2, len(row))
			continue
		}

		sellerID, err := strconv.ParseUint(strings.TrimSpace(row[0]), 10, 32)
		if err != nil {
			fmt.Printf("Skipping row %d: invalid seller_id %q\n", i+2, row[0])
			continue
		}
		name := strings.TrimSpace(row[1])
		if name == "" {
			fmt.Printf("Skipping row %d: empty name\n", i+2)
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil || price < model.ItemMinPrice || price > model.ItemMaxPrice {
			fmt.Printf("Skipping row %d: invalid price %q\n", i+2, row[3])
			continue
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(row[4]))
		if err != nil || quantity < model.ItemMinQuantity || quantity > model.ItemMaxQuantity {
			fmt.Printf("Skipping row %d: invalid quantity %q\n", i+2, row[4])
			continue
		}

		items = append(items, model.Item{
			SellerID:    uint(sellerID),
			Name:        name,
			Description: strings.TrimSpace(row[2]),
			Price:       price,
			Quantity:    quantity,
		})
	}

	return items, nil
}
