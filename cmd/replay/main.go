// Command replay drives a single-symbol order book engine against a
// historical CSV capture and reports top-of-book and throughput summary
// statistics. It is the CLI shim explicitly kept outside the core engine
// (spec.md §1); the engine itself never touches a file or a flag.
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Aidin1998/lobreplay/internal/config"
	"github.com/Aidin1998/lobreplay/internal/replay"
	"github.com/Aidin1998/lobreplay/internal/trading/orderbook"
	"github.com/Aidin1998/lobreplay/pkg/logger"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, using environment variables")
	}

	cfg := config.MustLoad()

	runID := uuid.New().String()
	zapLogger, err := logger.NewLogger(cfg.LogLevel, zap.String("run_id", runID), zap.String("symbol", cfg.Symbol))
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.MetricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			zapLogger.Info("serving metrics", zap.String("addr", cfg.MetricsAddr))
			if err := http.ListenAndServe(cfg.MetricsAddr, nil); err != nil {
				zapLogger.Warn("metrics server stopped", zap.Error(err))
			}
		}()
	}

	book := orderbook.NewBookWithCapacity(cfg.Symbol, cfg.InitialCapacity)

	summary, err := runReplay(cfg.InputPath, book, zapLogger)
	if err != nil {
		zapLogger.Fatal("replay run failed", zap.Error(err))
	}

	bid, hasBid := book.BestBidPrice()
	ask, hasAsk := book.BestAskPrice()
	fmt.Printf("processed %d messages (%d parse errors) in %s\n",
		summary.MessagesProcessed, summary.ParseErrors, summary.Duration)
	fmt.Printf("resting orders: %d, bid levels: %d, ask levels: %d\n",
		summary.FinalOrderCount, book.BidLevelCount(), book.AskLevelCount())
	if hasBid {
		fmt.Printf("best bid: %d\n", bid)
	}
	if hasAsk {
		fmt.Printf("best ask: %d\n", ask)
	}
	if mid, ok := book.MidPrice(); ok {
		fmt.Printf("mid price: %d\n", mid)
	}
}

// runReplay wraps replay.Run and recovers *orderbook.IntegrityFault panics,
// which mark corruption in the book's own bookkeeping rather than a
// malformed input row (spec.md §7: only ErrUnknownOrder is a normal
// outcome of processing a message; everything else terminates the
// session). zapLog.Fatal both records the fault and exits the process, so
// the corrupted book is never mistaken for a completed run. Any other
// panic is not ours to interpret and is re-raised unchanged.
func runReplay(path string, book *orderbook.Book, zapLog *zap.Logger) (summary replay.Summary, err error) {
	defer func() {
		if r := recover(); r != nil {
			fault, ok := r.(*orderbook.IntegrityFault)
			if !ok {
				panic(r)
			}
			zapLog.Fatal("integrity fault, terminating session", zap.Error(fault))
		}
	}()
	return replay.Run(path, book, zapLog)
}
