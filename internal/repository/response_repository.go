package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/godilite/survey-stats/internal/repository/models"
	"github.com/godilite/survey-stats/internal/survey"
	"github.com/google/uuid"
)

const schema = `
	CREATE TABLE IF NOT EXISTS datasets (
		name        TEXT PRIMARY KEY,
		import_id   TEXT NOT NULL,
		source      TEXT NOT NULL,
		respondents INTEGER NOT NULL,
		questions   TEXT NOT NULL,
		imported_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS responses (
		dataset    TEXT NOT NULL,
		respondent INTEGER NOT NULL,
		question   INTEGER NOT NULL,
		code       TEXT NOT NULL,
		PRIMARY KEY (dataset, respondent, question),
		FOREIGN KEY (dataset) REFERENCES datasets(name) ON DELETE CASCADE
	);
`

type ResponseRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewResponseRepository(db *sql.DB) *ResponseRepository {
	return &ResponseRepository{db: db, now: time.Now}
}

// Migrate creates the tables if they do not exist.
func (r *ResponseRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func joinQuestions(qs []survey.Question) string {
	parts := make([]string, len(qs))
	for i, q := range qs {
		parts[i] = q.String()
	}
	return strings.Join(parts, ",")
}

func splitQuestions(s string) ([]survey.Question, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]survey.Question, len(parts))
	for i, p := range parts {
		q, err := survey.ParseQuestion(p)
		if err != nil {
			return nil, err
		}
		out[i] = q
	}
	return out, nil
}

// validName rejects names that would make cache keys ambiguous.
func validName(name string) error {
	if strings.TrimSpace(name) == "" || strings.Contains(name, ":") {
		return fmt.Errorf("%w: %q", models.ErrInvalidDatasetName, name)
	}
	return nil
}

// SaveMatrix replaces the named dataset with m in a single transaction.
func (r *ResponseRepository) SaveMatrix(ctx context.Context, name, source string, m *survey.Matrix) (models.Dataset, error) {
	if err := validName(name); err != nil {
		return models.Dataset{}, err
	}
	ds := models.Dataset{
		Name:        name,
		ImportID:    uuid.NewString(),
		Source:      source,
		Respondents: m.Respondents(),
		ImportedAt:  r.now().UTC().Truncate(time.Second),
	}
	questions := m.Questions()
	for _, q := range questions {
		ds.Questions = append(ds.Questions, q.String())
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("begin SaveMatrix: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM responses WHERE dataset = ?`, name); err != nil {
		return models.Dataset{}, fmt.Errorf("clear responses: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM datasets WHERE name = ?`, name); err != nil {
		return models.Dataset{}, fmt.Errorf("clear dataset: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO datasets (name, import_id, source, respondents, questions, imported_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ds.Name, ds.ImportID, ds.Source, ds.Respondents, joinQuestions(questions), ds.ImportedAt.Format(time.RFC3339))
	if err != nil {
		return models.Dataset{}, fmt.Errorf("insert dataset: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO responses (dataset, respondent, question, code) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("prepare responses insert: %w", err)
	}
	defer stmt.Close()

	for row, cells := range m.Rows() {
		for i, code := range cells {
			if _, err := stmt.ExecContext(ctx, name, row+1, int(questions[i]), string(code)); err != nil {
				return models.Dataset{}, fmt.Errorf("insert response %d/%s: %w", row+1, questions[i], err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Dataset{}, fmt.Errorf("commit SaveMatrix: %w", err)
	}
	return ds, nil
}

// LoadMatrix rebuilds the stored matrix. Stored cells are validated again,
// so a tampered table surfaces as a matrix error rather than bad statistics.
func (r *ResponseRepository) LoadMatrix(ctx context.Context, name string) (*survey.Matrix, error) {
	var qs string
	var respondents int
	err := r.db.QueryRowContext(ctx,
		`SELECT questions, respondents FROM datasets WHERE name = ?`, name,
	).Scan(&qs, &respondents)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrDatasetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query dataset: %w", err)
	}

	questions, err := splitQuestions(qs)
	if err != nil {
		return nil, fmt.Errorf("dataset %q questions: %w", name, err)
	}
	column := make(map[int]int, len(questions))
	for i, q := range questions {
		column[int(q)] = i
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT respondent, question, code
		FROM responses
		WHERE dataset = ?
		ORDER BY respondent, question
	`, name)
	if err != nil {
		return nil, fmt.Errorf("query LoadMatrix: %w", err)
	}
	defer rows.Close()

	cells := make([][]string, respondents)
	for i := range cells {
		cells[i] = make([]string, len(questions))
	}

	for rows.Next() {
		var rr models.ResponseRow
		if err := rows.Scan(&rr.Respondent, &rr.Question, &rr.Code); err != nil {
			return nil, fmt.Errorf("scan LoadMatrix row: %w", err)
		}
		i, ok := column[rr.Question]
		if !ok || rr.Respondent < 1 || rr.Respondent > respondents {
			return nil, fmt.Errorf("%w: stray response respondent=%d question=%d", survey.ErrRaggedRow, rr.Respondent, rr.Question)
		}
		cells[rr.Respondent-1][i] = rr.Code
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate LoadMatrix: %w", err)
	}

	return survey.NewMatrix(questions, cells)
}

// ListDatasets returns every stored dataset ordered by name.
func (r *ResponseRepository) ListDatasets(ctx context.Context) ([]models.Dataset, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, import_id, source, respondents, questions, imported_at
		FROM datasets
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query ListDatasets: %w", err)
	}
	defer rows.Close()

	results := make([]models.Dataset, 0)
	for rows.Next() {
		var d models.Dataset
		var qs, importedAt string
		if err := rows.Scan(&d.Name, &d.ImportID, &d.Source, &d.Respondents, &qs, &importedAt); err != nil {
			return nil, fmt.Errorf("scan ListDatasets row: %w", err)
		}
		if qs != "" {
			d.Questions = strings.Split(qs, ",")
		}
		if d.ImportedAt, err = time.Parse(time.RFC3339, importedAt); err != nil {
			return nil, fmt.Errorf("parse imported_at for %q: %w", d.Name, err)
		}
		results = append(results, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListDatasets: %w", err)
	}
	return results, nil
}
