package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blackwell-systems/funnelplan/internal/diagnostic"
	"github.com/google/uuid"
)

// timeLayout is fixed-width so that saved_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SaveDiagnostic stores a confirmed snapshot with its metrics and returns the
// saved record. Recommendations keep their rule order.
func (db *DB) SaveDiagnostic(ctx context.Context, clientID string, s diagnostic.Snapshot, m diagnostic.Metrics) (*Diagnostic, error) {
	snapshotJSON, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}

	d := &Diagnostic{
		ID:       uuid.NewString(),
		ClientID: clientID,
		SavedAt:  time.Now().UTC(),
		Snapshot: s,
		Metrics:  m,
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO diagnostics
		(id, client_id, saved_at, business_type, max_cac, required_sales, required_leads,
		 required_clicks, required_reach, viable_investment, snapshot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.ClientID, d.SavedAt.Format(timeLayout), string(s.Benchmark.BusinessType),
		m.MaxCAC, m.RequiredSales, m.RequiredLeads, m.RequiredClicks, m.RequiredReach,
		m.ViableInvestment, string(snapshotJSON),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting diagnostic: %w", err)
	}

	for i, r := range m.Recommendations {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recommendations (diagnostic_id, position, type, title, description)
			VALUES (?, ?, ?, ?, ?)`,
			d.ID, i, string(r.Type), r.Title, r.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("inserting recommendation %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return d, nil
}

// GetDiagnostic returns a saved diagnostic by ID, or nil if it does not exist.
func (db *DB) GetDiagnostic(ctx context.Context, id string) (*Diagnostic, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, client_id, saved_at, max_cac, required_sales, required_leads,
		        required_clicks, required_reach, viable_investment, snapshot
		FROM diagnostics WHERE id = ?`, id)

	var d Diagnostic
	var savedAt, snapshotJSON string
	err := row.Scan(&d.ID, &d.ClientID, &savedAt, &d.Metrics.MaxCAC, &d.Metrics.RequiredSales,
		&d.Metrics.RequiredLeads, &d.Metrics.RequiredClicks, &d.Metrics.RequiredReach,
		&d.Metrics.ViableInvestment, &snapshotJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d.SavedAt, _ = time.Parse(timeLayout, savedAt)

	if err := json.Unmarshal([]byte(snapshotJSON), &d.Snapshot); err != nil {
		return nil, fmt.Errorf("decoding snapshot for %s: %w", id, err)
	}

	recs, err := db.recommendations(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Metrics.Recommendations = recs
	return &d, nil
}

func (db *DB) recommendations(ctx context.Context, diagnosticID string) ([]diagnostic.Recommendation, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT type, title, description FROM recommendations
		WHERE diagnostic_id = ? ORDER BY position`, diagnosticID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []diagnostic.Recommendation{}
	for rows.Next() {
		var r diagnostic.Recommendation
		var typ string
		if err := rows.Scan(&typ, &r.Title, &r.Description); err != nil {
			return nil, err
		}
		r.Type = diagnostic.Severity(typ)
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// ListDiagnostics returns saved diagnostics, newest first. An empty clientID
// lists every client; limit <= 0 means no limit.
func (db *DB) ListDiagnostics(ctx context.Context, clientID string, limit int) ([]DiagnosticSummary, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT d.id, d.client_id, d.saved_at, d.business_type, d.max_cac,
		        d.required_sales, d.required_leads, d.viable_investment,
		        COALESCE((SELECT MAX(CASE r.type
		                     WHEN 'error' THEN 3
		                     WHEN 'warning' THEN 2
		                     WHEN 'success' THEN 1
		                     ELSE 0 END)
		                  FROM recommendations r WHERE r.diagnostic_id = d.id), 0)
		FROM diagnostics d
		WHERE ? = '' OR d.client_id = ?
		ORDER BY d.saved_at DESC, d.rowid DESC
		LIMIT ?`,
		clientID, clientID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DiagnosticSummary
	for rows.Next() {
		var s DiagnosticSummary
		var savedAt, businessType string
		var worst int
		if err := rows.Scan(&s.ID, &s.ClientID, &savedAt, &businessType, &s.MaxCAC,
			&s.RequiredSales, &s.RequiredLeads, &s.ViableInvestment, &worst); err != nil {
			return nil, err
		}
		s.SavedAt, _ = time.Parse(timeLayout, savedAt)
		s.BusinessType = diagnostic.BusinessType(businessType)
		s.Worst = severityForRank(worst)
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteDiagnostic removes a saved diagnostic and its recommendations.
// It reports whether a row was deleted.
func (db *DB) DeleteDiagnostic(ctx context.Context, id string) (bool, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM recommendations WHERE diagnostic_id = ?", id); err != nil {
		return false, err
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM diagnostics WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, tx.Commit()
}

func severityForRank(rank int) diagnostic.Severity {
	for _, s := range []diagnostic.Severity{diagnostic.SeveritySuccess, diagnostic.SeverityWarning, diagnostic.SeverityError} {
		if s.Rank() == rank {
			return s
		}
	}
	return ""
}
