package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/zoharazr/code-quality-mcp/internal/quality"
)

// PathKey returns the fixed-width hash key used to index a project path.
func PathKey(projectPath string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(projectPath))
}

// SaveSnapshot stores a report for its project path, replacing any snapshot
// previously stored for the same path.
func (db *DB) SaveSnapshot(report *quality.QualityReport) error {
	if report == nil {
		return fmt.Errorf("nil report")
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	_, err = db.conn.Exec(
		"INSERT OR REPLACE INTO snapshots (path_hash, project_path, taken_at, report) VALUES (?, ?, ?, ?)",
		PathKey(report.ProjectPath), report.ProjectPath,
		time.Now().UTC().Format(time.RFC3339), string(payload),
	)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the stored snapshot for a project path, or nil if
// the path has never been analyzed.
func (db *DB) LatestSnapshot(projectPath string) (*Snapshot, error) {
	row := db.conn.QueryRow(
		"SELECT path_hash, project_path, taken_at, report FROM snapshots WHERE path_hash = ?",
		PathKey(projectPath),
	)
	return scanSnapshot(row)
}

// LatestReport returns the stored report for a project path, or nil if the
// path has never been analyzed.
func (db *DB) LatestReport(projectPath string) (*quality.QualityReport, error) {
	snap, err := db.LatestSnapshot(projectPath)
	if err != nil || snap == nil {
		return nil, err
	}
	return snap.Report, nil
}

// ListSnapshots returns all stored snapshots, most recent first.
func (db *DB) ListSnapshots() ([]*Snapshot, error) {
	rows, err := db.conn.Query(
		"SELECT path_hash, project_path, taken_at, report FROM snapshots ORDER BY taken_at DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*Snapshot
	for rows.Next() {
		var s Snapshot
		var takenAt, payload string
		if err := rows.Scan(&s.PathHash, &s.ProjectPath, &takenAt, &payload); err != nil {
			return nil, err
		}
		s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
		if err := json.Unmarshal([]byte(payload), &s.Report); err != nil {
			return nil, fmt.Errorf("decoding report for %s: %w", s.ProjectPath, err)
		}
		snaps = append(snaps, &s)
	}
	return snaps, rows.Err()
}

// DeleteSnapshot removes the stored snapshot for a project path.
func (db *DB) DeleteSnapshot(projectPath string) error {
	_, err := db.conn.Exec("DELETE FROM snapshots WHERE path_hash = ?", PathKey(projectPath))
	return err
}

func scanSnapshot(row *sql.Row) (*Snapshot, error) {
	var s Snapshot
	var takenAt, payload string
	err := row.Scan(&s.PathHash, &s.ProjectPath, &takenAt, &payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	if err := json.Unmarshal([]byte(payload), &s.Report); err != nil {
		return nil, fmt.Errorf("decoding report for %s: %w", s.ProjectPath, err)
	}
	return &s, nil
}
