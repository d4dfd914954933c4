package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/banshee-data/allision.report/internal/ais"
	"github.com/banshee-data/allision.report/internal/api"
	"github.com/banshee-data/allision.report/internal/assess"
	"github.com/banshee-data/allision.report/internal/config"
	"github.com/banshee-data/allision.report/internal/db"
	"github.com/banshee-data/allision.report/internal/site"
	"github.com/banshee-data/allision.report/internal/timeutil"
	"github.com/banshee-data/allision.report/internal/track"
	"github.com/banshee-data/allision.report/internal/units"
	"github.com/banshee-data/allision.report/internal/version"
)

var (
	devMode    = flag.Bool("dev", false, "Replay AIS fixtures instead of connecting to the live stream")
	listen     = flag.String("listen", ":8080", "Listen address")
	dbFile     = flag.String("db", "allision_data.db", "SQLite database path")
	configPath = flag.String("config", "", "Application config JSON file (built-in defaults when empty)")
	sitePath   = flag.String("site", "", "Bridge site JSON file (built-in defaults when empty)")
	speedUnits = flag.String("units", units.KN, "Speed units for API responses ("+units.GetValidUnitsString()+")")
	fixtures   = flag.String("fixtures", "fixtures/ais_packets.jsonl", "AIS fixture file replayed in dev mode")
)

func main() {
	flag.Parse()

	if *listen == "" {
		log.Fatal("Listen address is required")
	}
	if !units.IsValid(*speedUnits) {
		log.Fatalf("Invalid units %q (valid: %s)", *speedUnits, units.GetValidUnitsString())
	}

	cfg := config.EmptyAppConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadAppConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	var bridge *site.Bridge
	if *sitePath != "" {
		var err error
		bridge, err = site.Load(*sitePath)
		if err != nil {
			log.Fatalf("Failed to load site: %v", err)
		}
	} else {
		bridge = site.MustLoadDefault()
	}

	database, err := db.NewDB(*dbFile)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// "migrate up|down|version|force N" runs the schema command and exits.
	if args := flag.Args(); len(args) > 0 && args[0] == "migrate" {
		if err := runMigrate(database, args[1:]); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		return
	}

	harbor := track.NewHarbor()
	engine := assess.NewEngine(bridge)
	clock := timeutil.RealClock{}

	log.Printf("allision.report %s (%s)", version.Version, version.GitSHA)
	log.Printf("Assessing traffic around %s (%d piers)", bridge.Name, len(bridge.Piers))

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Message source: live aisstream subscription, or fixture replay in
	// dev mode for iterating without an API key.
	var source <-chan []byte
	if *devMode {
		replayCh := make(chan []byte, 64)
		source = replayCh
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := replayFixtures(ctx, *fixtures, replayCh); err != nil {
				log.Printf("fixture replay stopped: %v", err)
			}
		}()
	} else {
		if cfg.GetAISAPIKey() == "" {
			log.Fatal("AIS API key is required outside dev mode (set ais_api_key in config)")
		}
		client := ais.NewClient(ais.Config{
			URL:                cfg.GetAISURL(),
			APIKey:             cfg.GetAISAPIKey(),
			BoundingBoxes:      cfg.GetBoundingBoxes(),
			FilterMessageTypes: cfg.GetFilterMessageTypes(),
		})
		source = client.Msg
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := client.Run(ctx); err != nil && err != context.Canceled {
				log.Printf("AIS stream terminated: %v", err)
			}
		}()
	}

	// Assessment workers share the message source.
	p := newPipeline(engine, harbor, database, clock, cfg.GetMinAssessSpeed())
	for i := 0; i < cfg.GetAssessWorkers(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.run(ctx, source)
		}()
	}

	// Janitor prunes vessels that left the coverage area.
	janitor := track.NewJanitor(harbor, clock, cfg.GetJanitorPeriod(), cfg.GetVesselExpiry())
	wg.Add(1)
	go func() {
		defer wg.Done()
		janitor.Run(ctx)
	}()

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		mux := api.NewServer(harbor, database, bridge, *speedUnits).ServeMux()

		server := &http.Server{
			Addr:    *listen,
			Handler: api.LoggingMiddleware(mux),
		}

		go func() {
			log.Printf("HTTP server listening on %s", *listen)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}()

	wg.Wait()
	log.Printf("Graceful shutdown complete")
}

// replayFixtures streams one JSON packet per line from path to out,
// pacing delivery so dev mode behaves like a slow live feed.
func replayFixtures(ctx context.Context, path string, out chan<- []byte) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open fixtures file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		payload := make([]byte, len(line))
		copy(payload, line)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- payload:
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read fixtures file: %w", err)
	}
	log.Printf("fixture replay complete")
	return nil
}

func runMigrate(database *db.DB, args []string) error {
	migrationsDir := "migrations"
	if len(args) == 0 {
		return fmt.Errorf("usage: migrate up|down|version|force <N>")
	}

	switch args[0] {
	case "up":
		if err := database.MigrateUp(migrationsDir); err != nil {
			return err
		}
		log.Println("All migrations applied")
	case "down":
		if err := database.MigrateDown(migrationsDir); err != nil {
			return err
		}
		log.Println("Rolled back one migration")
	case "version":
		version, dirty, err := database.MigrateVersion(migrationsDir)
		if err != nil {
			return err
		}
		log.Printf("Schema version %d (dirty=%v)", version, dirty)
	case "force":
		if len(args) < 2 {
			return fmt.Errorf("usage: migrate force <version>")
		}
		var version int
		if _, err := fmt.Sscanf(args[1], "%d", &version); err != nil {
			return fmt.Errorf("invalid version %q", args[1])
		}
		if err := database.MigrateForce(migrationsDir, version); err != nil {
			return err
		}
		log.Printf("Forced schema version to %d", version)
	default:
		return fmt.Errorf("unknown migrate command %q", args[0])
	}
	return nil
}
