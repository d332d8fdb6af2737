package profilestore

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"crawshaw.io/sqlite"
	"crawshaw.io/sqlite/sqlitex"

	"github.com/localrivet/edmundson/internal/errortypes"
	"github.com/localrivet/edmundson/internal/summarizer"
	"github.com/localrivet/edmundson/internal/telemetry"
)

var errNotInitialized = errors.New("profile store not initialized")

var schema = []string{
	`CREATE TABLE IF NOT EXISTS word_profile (
		name TEXT PRIMARY KEY,
		revision TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS profile_word (
		profile TEXT NOT NULL REFERENCES word_profile(name) ON DELETE CASCADE,
		kind TEXT NOT NULL,
		word TEXT NOT NULL,
		PRIMARY KEY (profile, kind, word)
	);`,
}

// SQLiteProfileStore is an implementation of ProfileStore that uses SQLite.
// A single connection is shared and guarded by a mutex.
type SQLiteProfileStore struct {
	conn    *sqlite.Conn
	dbPath  string
	metrics *telemetry.MetricsCollector
	mu      sync.Mutex
}

// NewSQLiteProfileStore creates a new SQLiteProfileStore instance. A nil
// metrics collector is replaced by a fresh one.
func NewSQLiteProfileStore(metrics *telemetry.MetricsCollector) *SQLiteProfileStore {
	if metrics == nil {
		metrics = telemetry.NewMetricsCollector()
	}
	return &SQLiteProfileStore{metrics: metrics}
}

// Initialize opens the database at dbPath and creates the tables.
func (s *SQLiteProfileStore) Initialize(dbPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dbPath = dbPath

	conn, err := sqlite.OpenConn(dbPath, sqlite.SQLITE_OPEN_CREATE|sqlite.SQLITE_OPEN_READWRITE)
	if err != nil {
		return errortypes.DatabaseError(err, "failed to open SQLite database").WithField("path", dbPath)
	}
	s.conn = conn

	if err := s.createTables(); err != nil {
		// Close the connection on error
		s.conn.Close()
		s.conn = nil
		return errortypes.DatabaseError(err, "failed to create tables").WithField("path", dbPath)
	}

	return nil
}

func (s *SQLiteProfileStore) createTables() error {
	if err := sqlitex.Exec(s.conn, "PRAGMA foreign_keys = ON;", nil); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	for _, stmt := range schema {
		if err := sqlitex.Exec(s.conn, stmt, nil); err != nil {
			return fmt.Errorf("failed to execute create table statement: %w", err)
		}
	}
	return nil
}

// Close closes the store and releases any resources.
func (s *SQLiteProfileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// Save creates or replaces a profile. The words of an existing profile are
// replaced as a whole.
func (s *SQLiteProfileStore) Save(profile Profile) (Profile, error) {
	p, err := Normalize(profile)
	if err != nil {
		return Profile{}, err
	}
	p.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return Profile{}, s.fail(errortypes.DatabaseError(errNotInitialized, "cannot save profile"))
	}

	if err := s.save(p); err != nil {
		return Profile{}, s.fail(errortypes.DatabaseError(err, "failed to save profile").WithField("profile", p.Name))
	}

	s.metrics.IncrementCounter(telemetry.MetricProfileSaves, 1)
	return p, nil
}

func (s *SQLiteProfileStore) save(p Profile) (err error) {
	defer sqlitex.Save(s.conn)(&err)

	err = sqlitex.Exec(s.conn,
		`INSERT INTO word_profile (name, revision, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET revision = excluded.revision, updated_at = excluded.updated_at;`,
		nil, p.Name, p.Revision, p.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	if err = sqlitex.Exec(s.conn, `DELETE FROM profile_word WHERE profile = ?;`, nil, p.Name); err != nil {
		return fmt.Errorf("failed to clear profile words: %w", err)
	}

	stmt, err := s.conn.Prepare(`INSERT INTO profile_word (profile, kind, word) VALUES (?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	for _, kind := range kinds {
		for _, word := range p.List(kind) {
			// Bind parameters - indices in sqlite are 1-based
			stmt.BindText(1, p.Name)
			stmt.BindText(2, string(kind))
			stmt.BindText(3, word)
			if _, err = stmt.Step(); err != nil {
				stmt.Reset()
				return fmt.Errorf("failed to insert %s word %q: %w", kind, word, err)
			}
			if err = stmt.Reset(); err != nil {
				return fmt.Errorf("failed to reset insert statement: %w", err)
			}
		}
	}
	return nil
}

// Load returns the named profile.
func (s *SQLiteProfileStore) Load(name string) (Profile, error) {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return Profile{}, s.fail(errortypes.DatabaseError(errNotInitialized, "cannot load profile"))
	}

	p := Profile{Name: name}
	found := false
	err := sqlitex.Exec(s.conn,
		`SELECT revision, updated_at FROM word_profile WHERE name = ?;`,
		func(stmt *sqlite.Stmt) error {
			found = true
			// Column indices are 0-based
			p.Revision = stmt.ColumnText(0)
			p.UpdatedAt = time.Unix(stmt.ColumnInt64(1), 0).UTC()
			return nil
		}, name)
	if err != nil {
		return Profile{}, s.fail(errortypes.DatabaseError(err, "failed to load profile").WithField("profile", name))
	}
	if !found {
		return Profile{}, errortypes.NotFoundError(
			fmt.Errorf("%w: %s", ErrProfileNotFound, name),
			"word profile not found",
		).WithField("profile", name)
	}

	err = sqlitex.Exec(s.conn,
		`SELECT kind, word FROM profile_word WHERE profile = ? ORDER BY kind, word;`,
		func(stmt *sqlite.Stmt) error {
			word := stmt.ColumnText(1)
			switch summarizer.WordSetKind(stmt.ColumnText(0)) {
			case summarizer.BonusWords:
				p.Bonus = append(p.Bonus, word)
			case summarizer.StigmaWords:
				p.Stigma = append(p.Stigma, word)
			case summarizer.NullWords:
				p.Null = append(p.Null, word)
			}
			return nil
		}, name)
	if err != nil {
		return Profile{}, s.fail(errortypes.DatabaseError(err, "failed to load profile words").WithField("profile", name))
	}

	s.metrics.IncrementCounter(telemetry.MetricProfileLoads, 1)
	return p, nil
}

// List returns a summary of every profile ordered by name.
func (s *SQLiteProfileStore) List() ([]Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil, s.fail(errortypes.DatabaseError(errNotInitialized, "cannot list profiles"))
	}

	summaries := []Summary{}
	err := sqlitex.Exec(s.conn, `
	SELECT p.name, p.revision, p.updated_at,
		COALESCE(SUM(w.kind = 'bonus'), 0),
		COALESCE(SUM(w.kind = 'stigma'), 0),
		COALESCE(SUM(w.kind = 'null'), 0)
	FROM word_profile p
	LEFT JOIN profile_word w ON w.profile = p.name
	GROUP BY p.name
	ORDER BY p.name;`,
		func(stmt *sqlite.Stmt) error {
			summaries = append(summaries, Summary{
				Name:      stmt.ColumnText(0),
				Revision:  stmt.ColumnText(1),
				UpdatedAt: time.Unix(stmt.ColumnInt64(2), 0).UTC(),
				Bonus:     stmt.ColumnInt(3),
				Stigma:    stmt.ColumnInt(4),
				Null:      stmt.ColumnInt(5),
			})
			return nil
		})
	if err != nil {
		return nil, s.fail(errortypes.DatabaseError(err, "failed to list profiles"))
	}

	return summaries, nil
}

// Delete removes the named profile and its words.
func (s *SQLiteProfileStore) Delete(name string) error {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return s.fail(errortypes.DatabaseError(errNotInitialized, "cannot delete profile"))
	}

	if err := s.delete(name); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return errortypes.NotFoundError(err, "word profile not found").WithField("profile", name)
		}
		return s.fail(errortypes.DatabaseError(err, "failed to delete profile").WithField("profile", name))
	}

	s.metrics.IncrementCounter(telemetry.MetricProfileDeletes, 1)
	return nil
}

func (s *SQLiteProfileStore) delete(name string) (err error) {
	defer sqlitex.Save(s.conn)(&err)

	if err = sqlitex.Exec(s.conn, `DELETE FROM profile_word WHERE profile = ?;`, nil, name); err != nil {
		return err
	}
	if err = sqlitex.Exec(s.conn, `DELETE FROM word_profile WHERE name = ?;`, nil, name); err != nil {
		return err
	}
	if s.conn.Changes() == 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return nil
}

func (s *SQLiteProfileStore) fail(err *errortypes.AppError) error {
	s.metrics.IncrementCounter(telemetry.MetricProfileErrors, 1)
	return err
}
