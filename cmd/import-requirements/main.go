package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/timtruong/timtruong-backend/internal/config"
	"github.com/timtruong/timtruong-backend/internal/database"
	"github.com/timtruong/timtruong-backend/internal/logger"
	"github.com/timtruong/timtruong-backend/internal/repository"
	"github.com/timtruong/timtruong-backend/internal/service"
)

func main() {
	var filePath, universityCode string
	flag.StringVar(&filePath, "file", "", "Path to the .xlsx workbook")
	flag.StringVar(&universityCode, "university", "", "3-letter code of the university the workbook belongs to")
	flag.Parse()

	if filePath == "" || universityCode == "" {
		fmt.Println("Usage: import-requirements -file <workbook.xlsx> -university <CODE>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	importService := service.NewImportService(
		repository.NewUniversityRepository(pool),
		repository.NewMajorRepository(pool),
		repository.NewAdmissionRequirementRepository(pool),
		log,
	)

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatal().Err(err).Str("file", filePath).Msg("Failed to open workbook")
	}
	defer f.Close()

	report, err := importService.ImportWorkbook(ctx, f, universityCode)
	if err != nil {
		log.Fatal().Err(err).Str("file", filePath).Msg("Import failed")
	}

	fmt.Printf("=== Import %s into %s ===\n", report.BatchID, report.UniversityCode)
	fmt.Printf("Sheets: %d, rows: %d, majors created: %d\n", report.Sheets, report.Rows, report.MajorsCreated)
	fmt.Printf("Requirements inserted: %d, updated: %d\n", report.Inserted, report.Updated)
	for _, e := range report.Errors {
		fmt.Printf("  skipped %s line %d: %s\n", e.Sheet, e.Line, e.Message)
	}
	if len(report.Errors) > 0 {
		os.Exit(1)
	}
}
