package migration

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"hire-portal/internal/database"
)

const lockKey int64 = 746295114

// Runner applies V<n>__<name>.sql files from FS (rooted at Dir) in version
// order. Applied versions are recorded with a checksum; editing an applied
// file is an error.
type Runner struct {
	FS  fs.FS
	Dir string
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	if r.FS == nil {
		return errors.New("nil migration fs")
	}

	migs, err := Load(r.FS, r.Dir)
	if err != nil {
		return err
	}
	if len(migs) == 0 {
		return nil
	}

	if err := ensureSchemaMigrations(ctx, db); err != nil {
		return err
	}

	if _, err := db.Exec(ctx, `SELECT pg_advisory_lock($1)`, lockKey); err != nil {
		return err
	}
	defer func() {
		_, _ = db.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, lockKey)
	}()

	applied, err := getApplied(ctx, db)
	if err != nil {
		return err
	}
	if err := Verify(migs, applied); err != nil {
		return err
	}

	for _, m := range Pending(migs, applied) {
		if err := applyOne(ctx, db, m); err != nil {
			return err
		}
	}
	return nil
}

type Migration struct {
	Version  int64
	Name     string
	Filename string
	SQL      string
	Checksum string
}

var fileRe = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

// Load reads and orders the migration files under dir.
func Load(fsys fs.FS, dir string) ([]Migration, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	migs := make([]Migration, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		m := fileRe.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		v, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid migration version: %s", name)
		}

		b, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, err
		}
		sqlText := strings.TrimSpace(string(b))
		if sqlText == "" {
			return nil, fmt.Errorf("empty migration file: %s", name)
		}

		h := sha256.Sum256([]byte(sqlText))
		migs = append(migs, Migration{
			Version:  v,
			Name:     m[2],
			Filename: name,
			SQL:      sqlText,
			Checksum: hex.EncodeToString(h[:]),
		})
	}

	sort.Slice(migs, func(i, j int) bool { return migs[i].Version < migs[j].Version })
	for i := 1; i < len(migs); i++ {
		if migs[i].Version == migs[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version: %d", migs[i].Version)
		}
	}
	return migs, nil
}

// ErrChecksumMismatch reports an applied migration whose file has changed.
var ErrChecksumMismatch = errors.New("migration checksum mismatch")

// Pending returns the migrations not yet applied, in order.
func Pending(migs []Migration, applied map[int64]string) []Migration {
	out := make([]Migration, 0, len(migs))
	for _, m := range migs {
		if _, ok := applied[m.Version]; ok {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Verify reports the first applied migration whose checksum differs.
func Verify(migs []Migration, applied map[int64]string) error {
	for _, m := range migs {
		if sum, ok := applied[m.Version]; ok && sum != m.Checksum {
			return fmt.Errorf("%w: version=%d name=%s", ErrChecksumMismatch, m.Version, m.Name)
		}
	}
	return nil
}

func ensureSchemaMigrations(ctx context.Context, db database.Querier) error {
	_, err := db.Exec(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	return err
}

func getApplied(ctx context.Context, db database.Querier) (map[int64]string, error) {
	rows, err := db.Query(ctx, `SELECT version, checksum FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64]string{}
	for rows.Next() {
		var v int64
		var c string
		if err := rows.Scan(&v, &c); err != nil {
			return nil, err
		}
		out[v] = c
	}
	return out, rows.Err()
}

func applyOne(ctx context.Context, db database.DB, m Migration) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx, m.SQL); err != nil {
		return fmt.Errorf("apply migration failed: version=%d file=%s: %w", m.Version, m.Filename, err)
	}

	_, err = tx.Exec(
		ctx,
		`INSERT INTO schema_migrations (version, name, checksum, applied_at) VALUES ($1, $2, $3, $4)`,
		m.Version,
		m.Name,
		m.Checksum,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
