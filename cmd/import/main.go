// Command import loads the legacy inventory CSV into the devices table.
// Every imported row gets a fresh 6 character id from the report code
// alphabet.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/akvideo/technikliste-backend/internal/db"
	"github.com/akvideo/technikliste-backend/internal/logger"
	"github.com/akvideo/technikliste-backend/internal/reportid"
	"github.com/akvideo/technikliste-backend/internal/repos"
	"github.com/akvideo/technikliste-backend/internal/reports"
	"github.com/akvideo/technikliste-backend/internal/types"
	"github.com/akvideo/technikliste-backend/internal/utils"
)

func main() {
	csvPath := flag.String("csv", "Inventar_akvideo.csv", "path to the inventory csv")
	wipe := flag.Bool("wipe", false, "delete every stored device before importing")
	flag.Parse()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	dbConfig := db.Config{
		URL:        utils.GetEnv("DATABASE_URL", "postgres://postgres@localhost:5432/technikliste", log),
		RequireSSL: utils.GetEnvAsBool("REQUIRE_SSL", false, log),
	}
	postgresService, err := db.NewPostgresService(dbConfig, log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	deviceRepo := repos.NewDeviceRepo(postgresService.DB(), log)

	ctx := context.Background()
	if *wipe {
		log.Warn("Deleting every stored device before import")
		if err := deviceRepo.DeleteAll(ctx); err != nil {
			log.Fatal("Wipe failed", "error", err)
		}
	}

	devices, err := readInventoryCSV(*csvPath)
	if err != nil {
		log.Fatal("Reading inventory csv failed", "path", *csvPath, "error", err)
	}

	takenIDs, err := deviceRepo.IDs(ctx)
	if err != nil {
		log.Fatal("Loading existing device ids failed", "error", err)
	}
	taken := make(map[string]struct{}, len(takenIDs))
	for _, id := range takenIDs {
		taken[id] = struct{}{}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	imported := 0
	for i := range devices {
		id := reportid.RandomSuffix(rng)
		for {
			if _, exists := taken[id]; !exists {
				break
			}
			id = reportid.RandomSuffix(rng)
		}
		taken[id] = struct{}{}
		devices[i].ID = id

		if err := deviceRepo.Insert(ctx, &devices[i]); err != nil {
			log.Error("Insert failed, skipping row", "index", devices[i].Index, "error", err)
			continue
		}
		imported++
	}
	log.Info("Import finished", "rows", len(devices), "imported", imported)
}

// readInventoryCSV parses the legacy sheet. The header row names the
// columns, unknown columns are ignored.
func readInventoryCSV(path string) ([]types.Device, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv has no header row")
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	get := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var devices []types.Device
	for lineNo, row := range rows[1:] {
		index, err := strconv.Atoi(get(row, "Index"))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad Index: %w", lineNo+2, err)
		}
		amount := 1
		if raw := get(row, "Menge"); raw != "" {
			amount, err = strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad Menge: %w", lineNo+2, err)
			}
		}
		price, err := reports.ParsePrice(get(row, "Preis"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", lineNo+2, err)
		}
		devices = append(devices, types.Device{
			Index:        index,
			Amount:       amount,
			Description:  get(row, "Gerätebezeichnung"),
			Location:     get(row, "Lagerort"),
			LocationPrec: get(row, "Lagerort_konkret"),
			Container:    get(row, "Behälter"),
			Category:     get(row, "Kategorie"),
			Brand:        get(row, "Marke"),
			Price:        price,
			Store:        get(row, "wo_gekauft"),
			Comments:     get(row, "Anmerkungen"),
		})
	}
	return devices, nil
}
