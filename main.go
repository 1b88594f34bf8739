package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/hanbot/internal/database"
	"github.com/example/hanbot/internal/excel"
	"github.com/example/hanbot/internal/notify"
	"github.com/example/hanbot/internal/practice"
	"github.com/example/hanbot/internal/scheduler"
)

func main() {
	importFile := flag.String("import", "", "Import vocabulary from an Excel or CSV file and exit")
	exportFile := flag.String("export", "", "Export review records to a backup file and exit")
	restoreFile := flag.String("restore", "", "Restore review records from a backup file and exit")
	flag.Parse()

	// Optional .env file for local runs
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if *importFile != "" {
		runImport(*importFile)
		return
	}

	service := practice.NewService(database.NewReviewRecordRepository())

	if *exportFile != "" {
		runExport(service, *exportFile)
		return
	}
	if *restoreFile != "" {
		runRestore(service, *restoreFile)
		return
	}

	// Reminder daemon: hourly due checks delivered over Telegram
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	chatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64)
	if err != nil {
		log.Fatal("TELEGRAM_CHAT_ID environment variable is not a valid chat id")
	}

	notifier, err := notify.NewTelegramNotifier(token, chatID)
	if err != nil {
		log.Fatalf("Failed to create notifier: %v", err)
	}

	s := scheduler.New(notifier)
	s.Start()
	defer s.Stop()

	log.Println("Reminder scheduler started. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Received signal: %v, shutting down", sig)
}

func runImport(path string) {
	config := excel.DefaultImportConfig()
	config.FilePath = path
	if lang := os.Getenv("IMPORT_LANGUAGE"); lang != "" {
		config.Language = lang
	}

	result, err := excel.ImportWords(config, time.Now())
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import finished: %d processed, %d created, %d updated, %d skipped",
		result.TotalProcessed, result.Created, result.Updated, result.Skipped)
	for _, e := range result.Errors {
		log.Printf("Import error: %s", e)
	}
}

func runExport(service *practice.Service, path string) {
	data, err := service.ExportRecords(time.Now())
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Fatalf("Failed to write backup file: %v", err)
	}
	log.Printf("Exported review records to %s", path)
}

func runRestore(service *practice.Service, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read backup file: %v", err)
	}
	count, err := service.ImportRecords(data)
	if err != nil {
		log.Fatalf("Restore failed: %v", err)
	}
	log.Printf("Restored %d review records from %s", count, path)
}
