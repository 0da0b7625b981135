package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestListingsMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_listings_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no listings migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS listings",
		"NUMERIC(10,2)",
		"CHECK (price > 0)",
		"FOREIGN KEY (seller_id) REFERENCES users(id) ON DELETE CASCADE",
		"CREATE INDEX IF NOT EXISTS idx_listings_active_created",
		"DROP TABLE IF EXISTS listings",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
