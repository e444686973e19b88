package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/offsync/internal/models"
	"github.com/iudanet/offsync/internal/netmon"
	"github.com/iudanet/offsync/internal/queue"
	"github.com/iudanet/offsync/internal/queue/boltdb"
	"github.com/iudanet/offsync/internal/queue/sqlite"
	"github.com/iudanet/offsync/internal/remote/httpclient"
	syncsvc "github.com/iudanet/offsync/internal/sync"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// storage объединяет очередь и хранилище снимков одного бэкенда
type storage interface {
	queue.Store
	queue.SnapshotStore
}

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Sync server URL")
	token := flag.String("token", "", "Bearer token for the sync server")
	dbPath := flag.String("db", "offsync.db", "Path to local database")
	storeKind := flag.String("store", "bolt", "Queue storage backend: bolt or sqlite")
	interval := flag.Duration("interval", 5*time.Minute, "Periodic sync interval")
	batchSize := flag.Int("batch", 100, "Max items per sync pass")
	probeURL := flag.String("probe", "", "Connectivity probe URL (empty = assume online)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	ctx := context.Background()

	store, err := openStorage(ctx, *storeKind, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	clientCfg := httpclient.DefaultConfig(*serverURL)
	clientCfg.Token = *token
	endpoint := httpclient.NewClient(clientCfg)

	var monitor netmon.Monitor = netmon.Static(true)
	var probe *netmon.HTTPProbe
	if *probeURL != "" {
		probe = netmon.NewHTTPProbe(netmon.DefaultProbeConfig(*probeURL), logger)
		probe.Start(ctx)
		defer probe.Stop()
		monitor = probe
	}

	cfg := syncsvc.DefaultConfig()
	cfg.Interval = *interval
	cfg.BatchSize = *batchSize
	svc := syncsvc.NewService(cfg, store, store, endpoint, monitor, logger)

	switch command {
	case "run":
		err = runDaemon(ctx, svc, logger)
	case "sync":
		err = runSyncOnce(ctx, svc)
	case "enqueue":
		err = runEnqueue(ctx, svc, args[1:])
	case "status":
		err = runStatus(ctx, svc)
	case "pending":
		fmt.Println(svc.PendingCount(ctx))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openStorage открывает выбранный бэкенд хранилища
func openStorage(ctx context.Context, kind, dbPath string) (storage, error) {
	switch kind {
	case "bolt":
		return boltdb.New(ctx, dbPath)
	case "sqlite":
		return sqlite.New(ctx, dbPath)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", kind)
	}
}

// runDaemon запускает периодический драйвер до сигнала остановки
func runDaemon(ctx context.Context, svc syncsvc.Service, logger *slog.Logger) error {
	unsubscribe := svc.SubscribeStateChanges(func(c models.StateChange) {
		logger.Info("Sync state changed",
			"old", c.Old,
			"new", c.New,
			"message", c.Message)
	})
	defer unsubscribe()

	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start sync driver: %w", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	return svc.Stop()
}

// runSyncOnce выполняет один проход синхронизации
func runSyncOnce(ctx context.Context, svc syncsvc.Service) error {
	result, err := svc.SyncNow(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Synced:   %d\n", result.SyncedCount)
	fmt.Printf("Failed:   %d\n", result.FailedCount)
	fmt.Printf("Duration: %s\n", result.Duration)
	return nil
}

// runEnqueue ставит мутацию в очередь: enqueue <type> <id> <op> [json]
func runEnqueue(ctx context.Context, svc syncsvc.Service, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: enqueue <entity-type> <entity-id> <create|update|delete> [json-payload]")
	}

	op := models.Operation(args[2])
	if !op.Valid() {
		return fmt.Errorf("invalid operation: %s", args[2])
	}

	var entity any
	if len(args) > 3 {
		if err := json.Unmarshal([]byte(args[3]), &entity); err != nil {
			return fmt.Errorf("invalid payload: %w", err)
		}
	}

	return svc.QueueForSync(ctx, args[0], args[1], op, entity)
}

// runStatus печатает снимок состояния оркестратора
func runStatus(ctx context.Context, svc syncsvc.Service) error {
	snapshot := svc.Snapshot(ctx)

	fmt.Printf("State:     %s\n", snapshot.State)
	if snapshot.LastSyncTime.IsZero() {
		fmt.Printf("Last sync: never\n")
	} else {
		fmt.Printf("Last sync: %s\n", snapshot.LastSyncTime.Format(time.RFC3339))
	}
	fmt.Printf("Pending:   %d\n", snapshot.PendingCount)
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `offsync - offline-first mutation sync engine

Usage:
  offsync [flags] <command> [args]

Commands:
  run       Run the periodic sync daemon
  sync      Run a single sync pass
  enqueue   Queue a mutation: enqueue <type> <id> <op> [json]
  status    Show sync state, last sync time and pending count
  pending   Print the number of pending mutations

Flags:
`)
	flag.PrintDefaults()
}

func printVersion() {
	fmt.Printf("offsync\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
