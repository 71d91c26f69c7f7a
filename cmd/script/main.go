package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"portfoliowidget/cmd"
	"portfoliowidget/internal/logger"
)

// prints the history payload the api would serve, without starting gin
func main() {
	handler, _, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}

	ctx := logger.WithContext(context.Background(), handler.Logger)
	history, err := handler.PortfolioHistoryService.GetHistory(ctx, handler.HistoryDays)
	if err != nil {
		log.Fatal(err)
	}

	bytes, err := json.MarshalIndent(history, "", "    ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(bytes))
}
