package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"telegram-chat-stats/internal/adapters/exporter"
	"telegram-chat-stats/internal/server"
)

func main() {
	var serverAddr, hash string
	var asJSON bool
	flag.StringVar(&serverAddr, "server", "http://localhost:8080", "Server address")
	flag.StringVar(&hash, "hash", "", "Получить ранее построенный отчет по хешу архива")
	flag.BoolVar(&asJSON, "json", false, "Вывести отчет в JSON")
	flag.Parse()

	client := server.NewClient(serverAddr, 2*time.Minute)
	ctx := context.Background()

	var resp *server.ReportResponse
	var err error
	switch {
	case hash != "":
		resp, err = client.Report(ctx, hash)
	case flag.NArg() == 1:
		resp, err = uploadFile(ctx, client, flag.Arg(0))
	default:
		log.Fatal("Требуется путь к архиву. Usage: client [flags] <result.json>")
	}
	if err != nil {
		log.Fatalf("Не удалось получить отчет: %v", err)
	}

	fmt.Printf("Отчет %s (hash %s, cached: %t)\n", resp.ReportID, resp.Hash, resp.Cached)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp.Report); err != nil {
			log.Fatalf("Не удалось вывести отчет: %v", err)
		}
		return
	}
	if err := exporter.NewConsoleExporter().Export(resp.Report); err != nil {
		log.Fatalf("Не удалось вывести отчет: %v", err)
	}
}

func uploadFile(ctx context.Context, client *server.Client, path string) (*server.ReportResponse, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл %s: %w", path, err)
	}
	defer file.Close()
	return client.Upload(ctx, file.Name(), file)
}
