package api

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"carstock/internal/store"
)

// ExportHandler streams the catalog as CSV.
type ExportHandler struct {
	DB *sql.DB
}

// Export handles GET /api/inventory/export.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	vehicles, err := store.ListVehicles(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to export inventory", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to export inventory")
		return
	}

	filename := fmt.Sprintf("inventory-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"id", "manufacturer", "category", "engine_capacity", "year",
		"exterior_color", "interior_color", "status", "import_type",
		"location", "chassis_number", "price", "notes", "entry_date",
		"sold_date", "reserved_by",
	}
	if err := cw.Write(header); err != nil {
		slog.Error("failed to write CSV header", "error", err)
		return
	}

	for _, v := range vehicles {
		price := ""
		if v.Price != nil {
			price = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", *v.Price), "0"), ".")
		}
		soldDate := ""
		if v.SoldDate != nil {
			soldDate = v.SoldDate.Format(time.RFC3339)
		}

		record := []string{
			fmt.Sprintf("%d", v.ID),
			v.Manufacturer,
			v.Category,
			v.EngineCapacity,
			fmt.Sprintf("%d", v.Year),
			v.ExteriorColor,
			v.InteriorColor,
			v.Status,
			v.ImportType,
			v.Location,
			v.ChassisNumber,
			price,
			v.Notes,
			v.EntryDate.Format(time.RFC3339),
			soldDate,
			v.ReservedBy,
		}
		if err := cw.Write(record); err != nil {
			slog.Error("failed to write CSV record", "error", err)
			return
		}
	}
}
