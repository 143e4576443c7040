package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/fwojciec/leaders"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ leaders.DatasetWriter = (*Store)(nil)

// Run describes one stored dataset.
type Run struct {
	ID        string
	Countries []string
	Leaders   int
	CreatedAt time.Time
}

// Store persists datasets as runs.
type Store struct {
	db *DB
}

// NewStore creates a new Store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// WriteDataset stores dataset as a new run.
func (s *Store) WriteDataset(ctx context.Context, dataset leaders.Dataset) error {
	_, err := s.CreateRun(ctx, dataset)
	return err
}

// CreateRun stores dataset in a single transaction and returns its run.
func (s *Store) CreateRun(ctx context.Context, dataset leaders.Dataset) (*Run, error) {
	run := &Run{
		ID:        uuid.New().String(),
		Countries: slices.Sorted(maps.Keys(dataset)),
		Leaders:   dataset.Len(),
		CreatedAt: time.Now().UTC(),
	}
	if run.Countries == nil {
		run.Countries = []string{}
	}

	countries, err := json.Marshal(run.Countries)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin run: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, countries, leader_count, created_at)
		VALUES (?, ?, ?, ?)
	`, run.ID, string(countries), run.Leaders, run.CreatedAt.Format(time.RFC3339)); err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	for _, country := range run.Countries {
		for position, l := range dataset[country] {
			if err := insertLeader(ctx, tx, run.ID, country, position, l); err != nil {
				return nil, fmt.Errorf("insert leader %s: %w", l.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit run: %w", err)
	}
	return run, nil
}

func insertLeader(ctx context.Context, tx *sql.Tx, runID, country string, position int, l *leaders.Leader) error {
	hasDetails := l.PersonalDetails != nil
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO leaders (run_id, country, position, id, first_name, last_name, birth_date, death_date,
			place_of_birth, wikipedia_url, start_mandate, end_mandate, first_wiki_para, bio_hash, has_details)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, country, position, l.ID, l.FirstName, l.LastName, l.BirthDate, nullString(l.DeathDate),
		l.PlaceOfBirth, l.WikipediaURL, l.StartMandate, nullString(l.EndMandate),
		l.FirstWikiPara, hashContent(l.FirstWikiPara), hasDetails); err != nil {
		return err
	}
	if !hasDetails {
		return nil
	}

	for i, label := range l.PersonalDetails.Labels() {
		values, _ := l.PersonalDetails.Get(label)
		encoded, err := json.Marshal(values)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO personal_details (run_id, country, leader_position, position, label, value_list)
			VALUES (?, ?, ?, ?, ?, ?)
		`, runID, country, position, i, label, string(encoded)); err != nil {
			return err
		}
	}
	return nil
}

// FindRuns returns stored runs, newest first. A positive limit caps the
// number of runs returned.
func (s *Store) FindRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := "SELECT id, countries, leader_count, created_at FROM runs ORDER BY created_at DESC, rowid DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var countries, createdAt string
	if err := row.Scan(&run.ID, &countries, &run.Leaders, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(countries), &run.Countries); err != nil {
		return nil, fmt.Errorf("failed to parse countries: %w", err)
	}
	var err error
	if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &run, nil
}

// LoadDataset rebuilds the dataset stored by a run.
// Returns ENOTFOUND if the run does not exist.
func (s *Store) LoadDataset(ctx context.Context, runID string) (leaders.Dataset, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx,
		"SELECT id, countries, leader_count, created_at FROM runs WHERE id = ?", runID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, leaders.Errorf(leaders.ENOTFOUND, "run %s not found", runID)
	}
	if err != nil {
		return nil, err
	}

	dataset := make(leaders.Dataset, len(run.Countries))
	for _, country := range run.Countries {
		dataset[country] = []*leaders.Leader{}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT country, id, first_name, last_name, birth_date, death_date, place_of_birth,
			wikipedia_url, start_mandate, end_mandate, first_wiki_para, has_details
		FROM leaders
		WHERE run_id = ?
		ORDER BY country, position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l leaders.Leader
		var deathDate, endMandate sql.NullString
		var hasDetails bool
		if err := rows.Scan(&l.Country, &l.ID, &l.FirstName, &l.LastName, &l.BirthDate, &deathDate,
			&l.PlaceOfBirth, &l.WikipediaURL, &l.StartMandate, &endMandate, &l.FirstWikiPara, &hasDetails); err != nil {
			return nil, err
		}
		l.DeathDate = stringPtr(deathDate)
		l.EndMandate = stringPtr(endMandate)
		if hasDetails {
			l.PersonalDetails = leaders.NewPersonalDetails()
		}
		dataset[l.Country] = append(dataset[l.Country], &l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Release the single connection before the next query.
	rows.Close()

	if err := s.loadDetails(ctx, runID, dataset); err != nil {
		return nil, err
	}
	return dataset, nil
}

func (s *Store) loadDetails(ctx context.Context, runID string, dataset leaders.Dataset) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT country, leader_position, label, value_list
		FROM personal_details
		WHERE run_id = ?
		ORDER BY country, leader_position, position
	`, runID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var country, label, encoded string
		var position int
		if err := rows.Scan(&country, &position, &label, &encoded); err != nil {
			return err
		}
		var values []string
		if err := json.Unmarshal([]byte(encoded), &values); err != nil {
			return fmt.Errorf("failed to parse values of %q: %w", label, err)
		}
		list := dataset[country]
		if position >= len(list) || list[position].PersonalDetails == nil {
			return fmt.Errorf("personal details for missing leader %s/%d", country, position)
		}
		list[position].PersonalDetails.Set(label, values)
	}
	return rows.Err()
}
