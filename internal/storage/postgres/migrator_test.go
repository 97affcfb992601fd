package postgres

import (
	"strings"
	"testing"
	"testing/fstest"
)

func migrationFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys["sql/migrations/"+name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func TestLoadMigrationsFromFS(t *testing.T) {
	t.Parallel()

	migrations, err := loadMigrationsFromFS(migrationFS(map[string]string{
		"0001_catalog.up.sql":   "CREATE TABLE products (id TEXT PRIMARY KEY);",
		"0001_catalog.down.sql": "DROP TABLE IF EXISTS products;",
		"0002_hearts.up.sql":    "CREATE TABLE hearts (user_id TEXT, product_id TEXT);",
		"0002_hearts.down.sql":  "DROP TABLE IF EXISTS hearts;",
	}))
	if err != nil {
		t.Fatalf("loadMigrationsFromFS failed: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "catalog" {
		t.Fatalf("unexpected first migration: %+v", migrations[0])
	}
	if migrations[1].Version != 2 || migrations[1].Name != "hearts" {
		t.Fatalf("unexpected second migration: %+v", migrations[1])
	}
}

func TestLoadMigrationsFromFS_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name: "missing down pair",
			files: map[string]string{
				"0001_catalog.up.sql": "CREATE TABLE products (id TEXT);",
			},
			wantErr: "both up and down",
		},
		{
			name: "invalid file name",
			files: map[string]string{
				"notes.sql": "SELECT 1;",
			},
			wantErr: "invalid migration file name",
		},
		{
			name: "empty body",
			files: map[string]string{
				"0001_catalog.up.sql":   "   \n",
				"0001_catalog.down.sql": "DROP TABLE IF EXISTS products;",
			},
			wantErr: "migration file is empty",
		},
		{
			name: "name mismatch within version",
			files: map[string]string{
				"0001_catalog.up.sql": "CREATE TABLE products (id TEXT);",
				"0001_orders.down.sql": "DROP TABLE IF EXISTS orders;",
			},
			wantErr: "name mismatch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := loadMigrationsFromFS(migrationFS(tt.files))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	t.Parallel()

	migrations, err := loadMigrationsFromFS(migrationsFS)
	if err != nil {
		t.Fatalf("embedded migrations are broken: %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("expected at least one embedded migration")
	}
	if migrations[0].Version != 1 || migrations[0].Name != "init" {
		t.Fatalf("unexpected first migration: %+v", migrations[0])
	}
}
