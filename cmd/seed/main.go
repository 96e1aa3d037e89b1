package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/levenlabs/go-lflag"

	"github.com/voltbos/voltbos/pkg/catalog"
	"github.com/voltbos/voltbos/pkg/log"
	"github.com/voltbos/voltbos/pkg/storage"
	"github.com/voltbos/voltbos/pkg/types"
)

func main() {
	os.Setenv("FIRESTORE_EMULATOR_HOST", "127.0.0.1:8087")
	s := storage.Configured()
	lflag.Configure()

	ctx := context.Background()

	log.Ctx(ctx).InfoContext(ctx, "seeding catalog and demo project")

	rows, err := catalog.Static{}.List(ctx)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to load built-in catalog", "error", err)
		os.Exit(1)
	}
	if err := s.SeedCatalog(ctx, rows); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to seed catalog", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Seeded %d catalog rows\n", len(rows))

	now := time.Now()
	project := types.Project{
		ID:          uuid.NewString(),
		Name:        "Demo: Enphase + IQ Battery (APS)",
		UtilityName: "Arizona Public Service (APS)",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.CreateProject(ctx, project); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to seed project", "error", err)
		os.Exit(1)
	}

	// A complete single-system Enphase record: microinverters, two stacked
	// IQ batteries, an SMS, and whole-home backup.
	details := map[string]any{
		"utility": project.UtilityName,

		"sys1_solar_panel_make":                "QCells",
		"sys1_solar_panel_model":               "Q.PEAK DUO BLK ML-G10+ 400",
		"sys1_solar_panel_qty":                 "24",
		"sys1_solar_panel_wattage":             "400",
		"sys1_micro_inverter_make":             "Enphase",
		"sys1_micro_inverter_model":            "IQ8PLUS-72-2-US",
		"sys1_micro_inverter_qty":              "24",
		"sys1_inv_max_continuous_output":       "32",
		"sys1_aggregate_pv_breaker":            "40",
		"sys1_battery_1_make":                  "Enphase",
		"sys1_battery_1_model":                 "IQ Battery 5P",
		"sys1_battery_1_qty":                   "2",
		"sys1_battery_1_max_continuous_output": "30",
		"sys1_sms_make":                        "Enphase",
		"sys1_sms_model":                       "IQ System Controller 3",
		"sys1_backup_option":                   "Whole Home",
		"bls1_backup_load_sub_panel_make":      "SQUARE D",
		"bls1_backup_load_sub_panel_model":     "QO142M200PC",
		"bls1_backuploader_bus_bar_rating":     "200",
	}
	if err := s.SaveSystemDetails(ctx, project.ID, details); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to seed system details", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded project %s (%s)\n", project.ID, project.Name)
	log.Ctx(ctx).InfoContext(ctx, "seeded successfully")
}
