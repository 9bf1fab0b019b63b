// Package store persists the evolving population: genomes keyed by ID,
// per-generation fitness records, lineage edges, and run metadata. It
// is backed by SQLite so a finished run can be inspected offline.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	errs "github.com/predictive-selection/evoagent/pkg/errors"
	"github.com/predictive-selection/evoagent/pkg/genome"
	"github.com/predictive-selection/evoagent/pkg/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS genomes (
	id TEXT PRIMARY KEY,
	generation INTEGER NOT NULL,
	data TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS fitness (
	genome_id TEXT NOT NULL,
	generation INTEGER NOT NULL,
	fitness REAL NOT NULL,
	PRIMARY KEY (genome_id, generation)
);

CREATE TABLE IF NOT EXISTS lineage (
	child_id TEXT NOT NULL,
	parent_id TEXT NOT NULL,
	generation INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS generation_stats (
	generation INTEGER PRIMARY KEY,
	data TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_genomes_generation ON genomes(generation);
CREATE INDEX IF NOT EXISTS idx_fitness_generation ON fitness(generation);
CREATE INDEX IF NOT EXISTS idx_lineage_child ON lineage(child_id);
CREATE INDEX IF NOT EXISTS idx_lineage_parent ON lineage(parent_id);
`

// PopulationStore persists genomes, fitness rankings, and lineage in a
// SQLite database. All methods are safe for concurrent use; within one
// generation the orchestrator is the sole writer, so no multi-statement
// transactions are needed beyond what each method does itself.
type PopulationStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the population store at path. Use
// ":memory:" for an ephemeral store in tests.
func Open(path string) (*PopulationStore, error) {
	if path == "" {
		path = "evoagent.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errs.WithFields(
			errs.Wrap(err, errs.StoreUnavailable, "failed to open population store"),
			errs.Fields{"path": path})
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errs.Wrap(err, errs.StoreUnavailable, "failed to initialize schema")
	}

	// WAL lets readers inspect a live run without blocking the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		logging.GetLogger().Warn(context.Background(), "failed to enable WAL mode: %v", err)
	}

	return &PopulationStore{db: db}, nil
}

// Ping verifies store connectivity. The orchestrator calls it once
// before INIT; a failure here aborts the run before anything is
// written.
func (s *PopulationStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return errs.Wrap(err, errs.StoreUnavailable, "population store unreachable")
	}
	return nil
}

// Close releases the underlying database handle.
func (s *PopulationStore) Close() error {
	return s.db.Close()
}

// SaveGenome persists a genome, overwriting any previous record with
// the same ID.
func (s *PopulationStore) SaveGenome(ctx context.Context, g genome.AgentGenome) error {
	data, err := json.Marshal(g)
	if err != nil {
		return errs.Wrap(err, errs.InvalidInput, "failed to encode genome")
	}

	query := `INSERT INTO genomes (id, generation, data) VALUES (?, ?, ?)
	          ON CONFLICT(id) DO UPDATE SET generation = excluded.generation, data = excluded.data`
	if _, err := s.db.ExecContext(ctx, query, g.ID, g.Generation, string(data)); err != nil {
		return errs.WithFields(
			errs.Wrap(err, errs.StoreUnavailable, "failed to save genome"),
			errs.Fields{"genome_id": g.ID})
	}
	return nil
}

// GetGenome fetches one genome by ID.
func (s *PopulationStore) GetGenome(ctx context.Context, id string) (genome.AgentGenome, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM genomes WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return genome.AgentGenome{}, errs.WithFields(
			errs.New(errs.ResourceNotFound, "genome not found"),
			errs.Fields{"genome_id": id})
	}
	if err != nil {
		return genome.AgentGenome{}, errs.Wrap(err, errs.StoreUnavailable, "failed to get genome")
	}
	return decodeGenome(data)
}

// GetGeneration returns every genome stored for generation n. The
// lookup is index-backed, not a scan over all genomes.
func (s *PopulationStore) GetGeneration(ctx context.Context, n int) ([]genome.AgentGenome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM genomes WHERE generation = ? ORDER BY id`, n)
	if err != nil {
		return nil, errs.Wrap(err, errs.StoreUnavailable, "failed to query generation")
	}
	defer rows.Close()
	return collectGenomes(rows)
}

// GetAllGenomes returns every genome across all generations.
func (s *PopulationStore) GetAllGenomes(ctx context.Context) ([]genome.AgentGenome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM genomes ORDER BY generation, id`)
	if err != nil {
		return nil, errs.Wrap(err, errs.StoreUnavailable, "failed to query genomes")
	}
	defer rows.Close()
	return collectGenomes(rows)
}

// RecordFitness stores a genome's aggregate fitness for one generation
// and appends the value to the genome's fitness history.
func (s *PopulationStore) RecordFitness(ctx context.Context, genomeID string, generation int, fitness float64) error {
	query := `INSERT INTO fitness (genome_id, generation, fitness) VALUES (?, ?, ?)
	          ON CONFLICT(genome_id, generation) DO UPDATE SET fitness = excluded.fitness`
	if _, err := s.db.ExecContext(ctx, query, genomeID, generation, fitness); err != nil {
		return errs.WithFields(
			errs.Wrap(err, errs.StoreUnavailable, "failed to record fitness"),
			errs.Fields{"genome_id": genomeID, "generation": generation})
	}

	g, err := s.GetGenome(ctx, genomeID)
	if err != nil {
		return err
	}
	g.FitnessHistory = append(g.FitnessHistory, fitness)
	return s.SaveGenome(ctx, g)
}

// GetGenerationFitness returns genome ID -> recorded fitness for one
// generation.
func (s *PopulationStore) GetGenerationFitness(ctx context.Context, generation int) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT genome_id, fitness FROM fitness WHERE generation = ?`, generation)
	if err != nil {
		return nil, errs.Wrap(err, errs.StoreUnavailable, "failed to query fitness")
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var id string
		var f float64
		if err := rows.Scan(&id, &f); err != nil {
			return nil, errs.Wrap(err, errs.StoreUnavailable, "failed to scan fitness row")
		}
		out[id] = f
	}
	return out, rows.Err()
}

// GetTopGenomes returns the k best genomes of one generation by
// recorded fitness, best first. Ties break on genome ID so the order
// is stable.
func (s *PopulationStore) GetTopGenomes(ctx context.Context, generation, k int) ([]genome.AgentGenome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.data FROM genomes g
		 JOIN fitness f ON f.genome_id = g.id AND f.generation = ?
		 WHERE g.generation = ?
		 ORDER BY f.fitness DESC, g.id
		 LIMIT ?`, generation, generation, k)
	if err != nil {
		return nil, errs.Wrap(err, errs.StoreUnavailable, "failed to query top genomes")
	}
	defer rows.Close()
	return collectGenomes(rows)
}

// RecordLineage stores one parent edge per parent for a child genome.
func (s *PopulationStore) RecordLineage(ctx context.Context, childID string, parentIDs []string, generation int) error {
	for _, pid := range parentIDs {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO lineage (child_id, parent_id, generation) VALUES (?, ?, ?)`,
			childID, pid, generation); err != nil {
			return errs.WithFields(
				errs.Wrap(err, errs.StoreUnavailable, "failed to record lineage"),
				errs.Fields{"child_id": childID, "parent_id": pid})
		}
	}
	return nil
}

// GetChildren returns the IDs of genomes descended from id.
func (s *PopulationStore) GetChildren(ctx context.Context, id string) ([]string, error) {
	return s.lineageQuery(ctx,
		`SELECT child_id FROM lineage WHERE parent_id = ? ORDER BY child_id`, id)
}

// GetParents returns the parent IDs recorded for id.
func (s *PopulationStore) GetParents(ctx context.Context, id string) ([]string, error) {
	return s.lineageQuery(ctx,
		`SELECT parent_id FROM lineage WHERE child_id = ? ORDER BY parent_id`, id)
}

// SaveGenerationStats persists one generation's aggregate statistics
// as JSON, overwriting on re-save. The stats type lives upstream, so
// the store treats it as opaque.
func (s *PopulationStore) SaveGenerationStats(ctx context.Context, generation int, stats interface{}) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return errs.Wrap(err, errs.InvalidInput, "failed to encode generation stats")
	}
	query := `INSERT INTO generation_stats (generation, data) VALUES (?, ?)
	          ON CONFLICT(generation) DO UPDATE SET data = excluded.data`
	if _, err := s.db.ExecContext(ctx, query, generation, string(data)); err != nil {
		return errs.WithFields(
			errs.Wrap(err, errs.StoreUnavailable, "failed to save generation stats"),
			errs.Fields{"generation": generation})
	}
	return nil
}

// GetGenerationStats unmarshals one generation's stats into out.
func (s *PopulationStore) GetGenerationStats(ctx context.Context, generation int, out interface{}) error {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM generation_stats WHERE generation = ?`, generation).Scan(&data)
	if err == sql.ErrNoRows {
		return errs.WithFields(
			errs.New(errs.ResourceNotFound, "generation stats not found"),
			errs.Fields{"generation": generation})
	}
	if err != nil {
		return errs.Wrap(err, errs.StoreUnavailable, "failed to get generation stats")
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return errs.Wrap(err, errs.Unknown, "failed to decode generation stats")
	}
	return nil
}

// SetCurrentGeneration advances the stored generation marker.
func (s *PopulationStore) SetCurrentGeneration(ctx context.Context, n int) error {
	query := `INSERT INTO meta (key, value) VALUES ('current_generation', ?)
	          ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := s.db.ExecContext(ctx, query, n); err != nil {
		return errs.Wrap(err, errs.StoreUnavailable, "failed to set current generation")
	}
	return nil
}

// GetCurrentGeneration reads the generation marker; a fresh store
// reports 0.
func (s *PopulationStore) GetCurrentGeneration(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE key = 'current_generation'`).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, errs.Wrap(err, errs.StoreUnavailable, "failed to get current generation")
	}
	return n, nil
}

// ClearAll wipes every table. The orchestrator calls it in INIT so a
// reused database file never mixes runs.
func (s *PopulationStore) ClearAll(ctx context.Context) error {
	for _, table := range []string{"genomes", "fitness", "lineage", "generation_stats", "meta"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return errs.WithFields(
				errs.Wrap(err, errs.StoreUnavailable, "failed to clear store"),
				errs.Fields{"table": table})
		}
	}
	return nil
}

func (s *PopulationStore) lineageQuery(ctx context.Context, query, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, errs.Wrap(err, errs.StoreUnavailable, "failed to query lineage")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, errs.Wrap(err, errs.StoreUnavailable, "failed to scan lineage row")
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func collectGenomes(rows *sql.Rows) ([]genome.AgentGenome, error) {
	var out []genome.AgentGenome
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, errs.Wrap(err, errs.StoreUnavailable, "failed to scan genome row")
		}
		g, err := decodeGenome(data)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func decodeGenome(data string) (genome.AgentGenome, error) {
	var g genome.AgentGenome
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		return genome.AgentGenome{}, errs.Wrap(err, errs.Unknown, "failed to decode stored genome")
	}
	return g, nil
}
