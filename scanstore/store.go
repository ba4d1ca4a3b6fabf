// Package scanstore persists range scans and their fitted shapes in sqlite.
//
// A scan is a point cloud captured (or synthesized) at one moment; a fit is
// the output of running one of the scanfit algorithms against a stored scan,
// kept alongside the parameters that produced it so a run can be replayed or
// compared later. The schema is managed by embedded golang-migrate
// migrations, applied automatically on Open.
package scanstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/scangeom/geom"
)

// Scan describes a stored point cloud without its points.
type Scan struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	CreatedAtNs int64  `json:"created_at_ns"`
	PointCount  int    `json:"point_count"`
}

// Fit records one fitting run against a stored scan.
type Fit struct {
	ID          string          `json:"id"`
	ScanID      string          `json:"scan_id"`
	Algorithm   string          `json:"algorithm"`
	ParamsJSON  json.RawMessage `json:"params_json,omitempty"`
	CreatedAtNs int64           `json:"created_at_ns"`
}

// Store provides persistence for scans and fit results.
type Store struct {
	*sql.DB
}

// Open opens (creating if needed) the scan database at path and applies any
// pending schema migrations.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=temp_store(MEMORY)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open scan database: %w", err)
	}

	s := &Store{db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// SaveScan stores a point cloud under a fresh id and returns the id.
// The insertion order of pts is preserved and round-trips through GetScan.
func (s *Store) SaveScan(label string, pts []geom.Point) (string, error) {
	id := uuid.New().String()
	createdAt := time.Now().UnixNano()

	tx, err := s.Begin()
	if err != nil {
		return "", fmt.Errorf("begin save scan tx: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO scans (id, label, created_at_ns, point_count)
		VALUES (?, ?, ?, ?)`,
		id, label, createdAt, len(pts),
	)
	if err != nil {
		tx.Rollback()
		return "", fmt.Errorf("insert scan: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO scan_points (scan_id, idx, x, y)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return "", fmt.Errorf("prepare scan points: %w", err)
	}
	defer stmt.Close()

	for i, pt := range pts {
		if _, err := stmt.Exec(id, i, pt.X, pt.Y); err != nil {
			tx.Rollback()
			return "", fmt.Errorf("insert scan point %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit save scan tx: %w", err)
	}

	log.Printf("[ScanStore] saved scan %s (%d points)", id, len(pts))
	return id, nil
}

// GetScan returns a scan's metadata and its points in stored order.
func (s *Store) GetScan(id string) (*Scan, []geom.Point, error) {
	var scan Scan
	err := s.QueryRow(`
		SELECT id, label, created_at_ns, point_count
		FROM scans
		WHERE id = ?`, id).Scan(&scan.ID, &scan.Label, &scan.CreatedAtNs, &scan.PointCount)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("scan not found: %s", id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get scan: %w", err)
	}

	rows, err := s.Query(`
		SELECT x, y
		FROM scan_points
		WHERE scan_id = ?
		ORDER BY idx ASC`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("query scan points: %w", err)
	}
	defer rows.Close()

	pts := make([]geom.Point, 0, scan.PointCount)
	for rows.Next() {
		var pt geom.Point
		if err := rows.Scan(&pt.X, &pt.Y); err != nil {
			return nil, nil, fmt.Errorf("scan point row: %w", err)
		}
		pts = append(pts, pt)
	}

	return &scan, pts, rows.Err()
}

// ListScans returns all stored scans, newest first.
func (s *Store) ListScans() ([]*Scan, error) {
	rows, err := s.Query(`
		SELECT id, label, created_at_ns, point_count
		FROM scans
		ORDER BY created_at_ns DESC`)
	if err != nil {
		return nil, fmt.Errorf("query scans: %w", err)
	}
	defer rows.Close()

	var scans []*Scan
	for rows.Next() {
		var scan Scan
		if err := rows.Scan(&scan.ID, &scan.Label, &scan.CreatedAtNs, &scan.PointCount); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		scans = append(scans, &scan)
	}

	return scans, rows.Err()
}

// DeleteScan removes a scan, its points, and all fits recorded against it.
func (s *Store) DeleteScan(id string) error {
	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("begin delete scan tx: %w", err)
	}

	steps := []string{
		`DELETE FROM fit_segments WHERE fit_id IN (SELECT id FROM fits WHERE scan_id = ?)`,
		`DELETE FROM fit_circles WHERE fit_id IN (SELECT id FROM fits WHERE scan_id = ?)`,
		`DELETE FROM fits WHERE scan_id = ?`,
		`DELETE FROM scan_points WHERE scan_id = ?`,
	}
	for _, query := range steps {
		if _, err := tx.Exec(query, id); err != nil {
			tx.Rollback()
			return fmt.Errorf("delete scan step failed: %w", err)
		}
	}

	result, err := tx.Exec(`DELETE FROM scans WHERE id = ?`, id)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("delete scan: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		tx.Rollback()
		return fmt.Errorf("scan not found: %s", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete scan tx: %w", err)
	}

	return nil
}

// SaveFit records a segment-fitting run against a stored scan and returns the
// fit id. params is marshalled to JSON so the run can be reproduced; a nil
// params stores NULL.
func (s *Store) SaveFit(scanID, algorithm string, params any, segments []geom.LineSegment) (string, error) {
	id := uuid.New().String()

	tx, err := s.beginFit(id, scanID, algorithm, params)
	if err != nil {
		return "", err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO fit_segments (fit_id, idx, start_x, start_y, end_x, end_y)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return "", fmt.Errorf("prepare fit segments: %w", err)
	}
	defer stmt.Close()

	for i, seg := range segments {
		if _, err := stmt.Exec(id, i, seg.Start.X, seg.Start.Y, seg.End.X, seg.End.Y); err != nil {
			tx.Rollback()
			return "", fmt.Errorf("insert fit segment %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit save fit tx: %w", err)
	}

	log.Printf("[ScanStore] saved %s fit %s (%d segments)", algorithm, id, len(segments))
	return id, nil
}

// SaveCircleFit records a circle-fitting run against a stored scan and
// returns the fit id. circles and scores are stored pairwise; they must be
// the same length.
func (s *Store) SaveCircleFit(scanID string, params any, circles []geom.Circle, scores []float64) (string, error) {
	if len(circles) != len(scores) {
		return "", fmt.Errorf("circle/score count mismatch: %d vs %d", len(circles), len(scores))
	}

	id := uuid.New().String()

	tx, err := s.beginFit(id, scanID, "circle", params)
	if err != nil {
		return "", err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO fit_circles (fit_id, idx, center_x, center_y, radius, score)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return "", fmt.Errorf("prepare fit circles: %w", err)
	}
	defer stmt.Close()

	for i, c := range circles {
		if _, err := stmt.Exec(id, i, c.Center.X, c.Center.Y, c.Radius, scores[i]); err != nil {
			tx.Rollback()
			return "", fmt.Errorf("insert fit circle %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit save circle fit tx: %w", err)
	}

	log.Printf("[ScanStore] saved circle fit %s (%d circles)", id, len(circles))
	return id, nil
}

// beginFit opens a transaction and inserts the fits row shared by segment and
// circle fits. On error the transaction is already rolled back.
func (s *Store) beginFit(id, scanID, algorithm string, params any) (*sql.Tx, error) {
	var paramsStr interface{}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("marshal fit params: %w", err)
		}
		paramsStr = string(raw)
	}

	tx, err := s.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin save fit tx: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO fits (id, scan_id, algorithm, params_json, created_at_ns)
		VALUES (?, ?, ?, ?, ?)`,
		id, scanID, algorithm, paramsStr, time.Now().UnixNano(),
	)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("insert fit: %w", err)
	}

	return tx, nil
}

// ListFits returns all fits recorded against a scan, newest first.
func (s *Store) ListFits(scanID string) ([]*Fit, error) {
	rows, err := s.Query(`
		SELECT id, scan_id, algorithm, params_json, created_at_ns
		FROM fits
		WHERE scan_id = ?
		ORDER BY created_at_ns DESC`, scanID)
	if err != nil {
		return nil, fmt.Errorf("query fits: %w", err)
	}
	defer rows.Close()

	var fits []*Fit
	for rows.Next() {
		var fit Fit
		var paramsStr sql.NullString
		if err := rows.Scan(&fit.ID, &fit.ScanID, &fit.Algorithm, &paramsStr, &fit.CreatedAtNs); err != nil {
			return nil, fmt.Errorf("scan fit row: %w", err)
		}
		if paramsStr.Valid {
			fit.ParamsJSON = json.RawMessage(paramsStr.String)
		}
		fits = append(fits, &fit)
	}

	return fits, rows.Err()
}

// GetFitSegments returns the segments stored for a fit in index order.
func (s *Store) GetFitSegments(fitID string) ([]geom.LineSegment, error) {
	rows, err := s.Query(`
		SELECT start_x, start_y, end_x, end_y
		FROM fit_segments
		WHERE fit_id = ?
		ORDER BY idx ASC`, fitID)
	if err != nil {
		return nil, fmt.Errorf("query fit segments: %w", err)
	}
	defer rows.Close()

	var segments []geom.LineSegment
	for rows.Next() {
		var seg geom.LineSegment
		if err := rows.Scan(&seg.Start.X, &seg.Start.Y, &seg.End.X, &seg.End.Y); err != nil {
			return nil, fmt.Errorf("scan fit segment row: %w", err)
		}
		segments = append(segments, seg)
	}

	return segments, rows.Err()
}

// GetFitCircles returns the circles and scores stored for a fit in index order.
func (s *Store) GetFitCircles(fitID string) ([]geom.Circle, []float64, error) {
	rows, err := s.Query(`
		SELECT center_x, center_y, radius, score
		FROM fit_circles
		WHERE fit_id = ?
		ORDER BY idx ASC`, fitID)
	if err != nil {
		return nil, nil, fmt.Errorf("query fit circles: %w", err)
	}
	defer rows.Close()

	var circles []geom.Circle
	var scores []float64
	for rows.Next() {
		var c geom.Circle
		var score float64
		if err := rows.Scan(&c.Center.X, &c.Center.Y, &c.Radius, &score); err != nil {
			return nil, nil, fmt.Errorf("scan fit circle row: %w", err)
		}
		circles = append(circles, c)
		scores = append(scores, score)
	}

	return circles, scores, rows.Err()
}
