package main

import (
	"context"
	"flag"
	"log"
	"os"

	"grocerystore/internal/config"
	"grocerystore/internal/db"
	"grocerystore/internal/importer"
	productrepo "grocerystore/internal/repository/product"
)

func main() {
	path := flag.String("file", "", "path to a product CSV export")
	flag.Parse()

	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC)
	if *path == "" {
		logger.Fatal("usage: importer -file products.csv")
	}

	f, err := os.Open(*path)
	if err != nil {
		logger.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	cfg := config.FromEnv()
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	repo := productrepo.NewPostgres(pool, logger)
	imp := importer.NewCSVImporter(f, repo)

	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed after %d products: %v", count, err)
	}
	logger.Printf("imported %d products", count)
}
