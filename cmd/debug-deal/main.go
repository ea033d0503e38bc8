// Диагностическая утилита: выкачивает сделку со связанными сделками и
// задачами и сохраняет их структуру в JSON-файл. Удобна, чтобы подсмотреть
// реальные имена кастомных полей аккаунта.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/crmcustoms/megaplan-expenses/config"
	"github.com/crmcustoms/megaplan-expenses/internal/megaplan"
)

func main() {
	dealID := flag.String("deal", "", "идентификатор сделки")
	taskLimit := flag.Int("tasks", 50, "сколько задач сделки выкачивать")
	flag.Parse()

	if *dealID == "" {
		fmt.Fprintln(os.Stderr, "использование: debug-deal -deal <id> [-tasks N]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("ошибка конфигурации", "error", err)
		os.Exit(1)
	}

	client := megaplan.NewClient(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	deal, err := client.Deal(ctx, *dealID)
	if err != nil {
		slog.Error("не удалось получить сделку", "dealId", *dealID, "error", err)
		os.Exit(1)
	}

	linked, err := client.LinkedDeals(ctx, *dealID)
	if err != nil {
		slog.Error("не удалось получить связанные сделки", "dealId", *dealID, "error", err)
		os.Exit(1)
	}

	tasks, err := client.TasksByDeal(ctx, *dealID, *taskLimit)
	if err != nil {
		// Задачи вспомогательные, без них дамп всё равно полезен.
		slog.Warn("не удалось получить задачи сделки", "dealId", *dealID, "error", err)
	}

	dump := map[string]any{
		"deal":        deal,
		"linkedDeals": linked,
		"tasks":       tasks,
	}

	out, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		slog.Error("ошибка сериализации дампа", "error", err)
		os.Exit(1)
	}

	filename := fmt.Sprintf("deal-%s-structure.json", *dealID)
	if err := os.WriteFile(filename, out, 0o644); err != nil {
		slog.Error("ошибка записи файла", "file", filename, "error", err)
		os.Exit(1)
	}

	fmt.Printf("сделка %q, связанных сделок: %d, задач: %d\n", *dealID, len(linked), len(tasks))
	fmt.Println("структура сохранена в", filename)
}
