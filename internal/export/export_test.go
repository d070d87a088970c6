package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-calc/internal/calculator"
)

func generateTestSnapshots(t *testing.T) []calculator.Snapshot {
	t.Helper()
	logger := zap.NewNop()

	btc := calculator.NewSession(calculator.DefaultInput(), logger)
	btc.SetCurrentPrice(2)
	btc.SetInvestmentAmount(1000)
	btc.SetTargetCurrency(calculator.Some(4))
	btc.SetTradingFees(0.0005)
	btc.SetUpcomingUnlock(10)

	eth := calculator.NewSession(calculator.DefaultInput(), logger)
	eth.SetTokenName("ETH")
	eth.SetCurrentPrice(3000)
	eth.SetInvestmentAmount(600)

	return []calculator.Snapshot{btc.Snapshot(), eth.Snapshot()}
}

func newTestExporter() *SnapshotExporter {
	exporter := NewSnapshotExporter(zap.NewNop())
	exporter.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }
	return exporter
}

func TestSnapshotExportCSV(t *testing.T) {
	exporter := newTestExporter()
	tempDir := t.TempDir()

	outputPath, err := exporter.Export(generateTestSnapshots(t), ExportOptions{
		Format:    FormatCSV,
		OutputDir: tempDir,
	})
	if err != nil {
		t.Fatalf("Failed to export: %v", err)
	}
	if filepath.Base(outputPath) != "portfolio_20240501_123000.csv" {
		t.Errorf("unexpected file name %s", outputPath)
	}

	file, err := os.Open(outputPath)
	if err != nil {
		t.Fatalf("Failed to open export: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}

	header := records[0]
	row := make(map[string]string, len(header))
	for i, col := range header {
		row[col] = records[1][i]
	}

	want := map[string]string{
		"token_name":                   "BTC",
		"tokens_purchased":             "500.000000000000",
		"future_value":                 "2000.000000000000",
		"break_even_price":             "2.002000000000",
		"new_price_after_unlock":       "1.800000000000",
		"expected_price_target":        "4.000000000000",
		"expected_price_target_tokens": "2.000000000000",
	}
	for col, value := range want {
		if row[col] != value {
			t.Errorf("%s = %q, want %q", col, row[col], value)
		}
	}

	// ETH has no target: future value stays empty.
	if got := records[2][14]; got != "" {
		t.Errorf("future_value for untargeted row = %q, want empty", got)
	}
}

func TestSnapshotExportJSON(t *testing.T) {
	exporter := newTestExporter()
	tempDir := t.TempDir()

	outputPath, err := exporter.Export(generateTestSnapshots(t), ExportOptions{
		Format:    FormatJSON,
		OutputDir: tempDir,
	})
	if err != nil {
		t.Fatalf("Failed to export: %v", err)
	}

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read export file: %v", err)
	}

	var doc struct {
		Count   int `json:"count"`
		Summary struct {
			Calculators   int    `json:"calculators"`
			Targeted      int    `json:"targeted"`
			TotalInvested string `json:"total_invested"`
		} `json:"summary"`
		Calculators []struct {
			Output struct {
				FutureValue *float64 `json:"future_value"`
			} `json:"output"`
		} `json:"calculators"`
	}
	if err := json.Unmarshal(content, &doc); err != nil {
		t.Fatalf("Failed to decode export: %v", err)
	}

	if doc.Count != 2 || doc.Summary.Calculators != 2 || doc.Summary.Targeted != 1 {
		t.Errorf("unexpected counts: %+v", doc)
	}
	if doc.Summary.TotalInvested != "1600" {
		t.Errorf("total_invested = %q, want 1600", doc.Summary.TotalInvested)
	}
	if doc.Calculators[0].Output.FutureValue == nil || doc.Calculators[1].Output.FutureValue != nil {
		t.Error("future_value must be a number only for the targeted calculator")
	}
}

func TestSnapshotExportFilters(t *testing.T) {
	exporter := newTestExporter()
	tempDir := t.TempDir()
	snaps := generateTestSnapshots(t)

	outputPath, err := exporter.Export(snaps, ExportOptions{
		Format:      FormatCSV,
		TokenFilter: "eth",
		OutputDir:   tempDir,
	})
	if err != nil {
		t.Fatalf("Failed to export: %v", err)
	}
	if !strings.Contains(filepath.Base(outputPath), "portfolio_eth_") {
		t.Errorf("filter missing from file name: %s", outputPath)
	}

	_, err = exporter.Export(snaps, ExportOptions{
		Format:       FormatCSV,
		TokenFilter:  "ETH",
		OnlyTargeted: true,
		OutputDir:    tempDir,
	})
	if err == nil {
		t.Error("expected an error when nothing matches")
	}
}

func TestSnapshotExportSameSecondKeepsBothFiles(t *testing.T) {
	exporter := newTestExporter()
	tempDir := t.TempDir()
	snaps := generateTestSnapshots(t)

	first, err := exporter.Export(snaps, ExportOptions{Format: FormatJSON, OutputDir: tempDir})
	if err != nil {
		t.Fatalf("Failed to export: %v", err)
	}
	second, err := exporter.Export(snaps[:1], ExportOptions{Format: FormatJSON, OutputDir: tempDir})
	if err != nil {
		t.Fatalf("Failed to export: %v", err)
	}

	if filepath.Base(first) != "portfolio_20240501_123000.json" {
		t.Errorf("unexpected first file name %s", first)
	}
	if filepath.Base(second) != "portfolio_20240501_123000_1.json" {
		t.Errorf("unexpected second file name %s", second)
	}

	content, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("Failed to read first export: %v", err)
	}
	var doc struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(content, &doc); err != nil {
		t.Fatalf("Failed to decode export: %v", err)
	}
	if doc.Count != 2 {
		t.Errorf("first export was overwritten: count = %d, want 2", doc.Count)
	}
}

func TestSnapshotExportUnsupportedFormat(t *testing.T) {
	exporter := newTestExporter()
	if _, err := exporter.Export(generateTestSnapshots(t), ExportOptions{Format: "xml", OutputDir: t.TempDir()}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(" CSV "); err != nil || f != FormatCSV {
		t.Errorf("ParseFormat(CSV) = %q, %v", f, err)
	}
	if _, err := ParseFormat("xlsx"); err == nil {
		t.Error("expected error for xlsx")
	}
}
