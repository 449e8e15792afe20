package scorecard

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) GetScorecards(ctx context.Context) ([]Scorecard, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, COALESCE(department, ''), COALESCE(responsible_person, ''), created_at
    FROM scorecards
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []Scorecard
	for rows.Next() {
		var sc Scorecard
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.Department, &sc.ResponsiblePerson, &sc.CreatedAt); err != nil {
			return nil, err
		}
		cards = append(cards, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	kpisByCard, err := s.kpisByScorecard(ctx)
	if err != nil {
		return nil, err
	}
	for i := range cards {
		cards[i].KPIs = kpisByCard[cards[i].ID]
	}
	return cards, nil
}

func (s *Store) GetScorecard(ctx context.Context, scorecardID string) (*Scorecard, error) {
	var sc Scorecard
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, COALESCE(department, ''), COALESCE(responsible_person, ''), created_at
    FROM scorecards
    WHERE id = $1
  `, scorecardID).Scan(&sc.ID, &sc.Name, &sc.Department, &sc.ResponsiblePerson, &sc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT id, scorecard_id, name, target, weight, COALESCE(unit, '')
    FROM scorecard_kpis
    WHERE scorecard_id = $1
    ORDER BY name
  `, scorecardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var kpi KPI
		if err := rows.Scan(&kpi.ID, &kpi.ScorecardID, &kpi.Name, &kpi.Target, &kpi.Weight, &kpi.Unit); err != nil {
			return nil, err
		}
		sc.KPIs = append(sc.KPIs, kpi)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *Store) kpisByScorecard(ctx context.Context) (map[string][]KPI, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, scorecard_id, name, target, weight, COALESCE(unit, '')
    FROM scorecard_kpis
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byCard := make(map[string][]KPI)
	for rows.Next() {
		var kpi KPI
		if err := rows.Scan(&kpi.ID, &kpi.ScorecardID, &kpi.Name, &kpi.Target, &kpi.Weight, &kpi.Unit); err != nil {
			return nil, err
		}
		byCard[kpi.ScorecardID] = append(byCard[kpi.ScorecardID], kpi)
	}
	return byCard, rows.Err()
}

func (s *Store) CreateScorecard(ctx context.Context, sc *Scorecard) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
    INSERT INTO scorecards (name, department, responsible_person)
    VALUES ($1, $2, NULLIF($3, ''))
    RETURNING id, created_at
  `, sc.Name, sc.Department, sc.ResponsiblePerson).Scan(&sc.ID, &sc.CreatedAt)
	if err != nil {
		return err
	}

	for i := range sc.KPIs {
		sc.KPIs[i].ScorecardID = sc.ID
		err = tx.QueryRow(ctx, `
      INSERT INTO scorecard_kpis (scorecard_id, name, target, weight, unit)
      VALUES ($1, $2, $3, $4, $5)
      RETURNING id
    `, sc.ID, sc.KPIs[i].Name, sc.KPIs[i].Target, sc.KPIs[i].Weight, sc.KPIs[i].Unit).Scan(&sc.KPIs[i].ID)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) UpdateScorecard(ctx context.Context, sc *Scorecard) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
    UPDATE scorecards
    SET name = $2, department = $3, responsible_person = NULLIF($4, '')
    WHERE id = $1
  `, sc.ID, sc.Name, sc.Department, sc.ResponsiblePerson)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, "DELETE FROM scorecard_kpis WHERE scorecard_id = $1", sc.ID); err != nil {
		return err
	}
	for i := range sc.KPIs {
		sc.KPIs[i].ScorecardID = sc.ID
		err = tx.QueryRow(ctx, `
      INSERT INTO scorecard_kpis (scorecard_id, name, target, weight, unit)
      VALUES ($1, $2, $3, $4, $5)
      RETURNING id
    `, sc.ID, sc.KPIs[i].Name, sc.KPIs[i].Target, sc.KPIs[i].Weight, sc.KPIs[i].Unit).Scan(&sc.KPIs[i].ID)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) DeleteScorecard(ctx context.Context, scorecardID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM scorecards WHERE id = $1", scorecardID)
	return err
}

func (s *Store) GetScorecardAssignments(ctx context.Context) ([]Assignment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, scorecard_id, user_id, COALESCE(department, ''), is_active
    FROM scorecard_assignments
    ORDER BY id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.ScorecardID, &a.UserID, &a.Department, &a.IsActive); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

const resultColumns = `
    id, scorecard_id, COALESCE(user_id::text, ''), period_month, period_year,
    COALESCE(kpi_values, '{}'::jsonb), COALESCE(status, ''),
    submitted_at, approved_at, COALESCE(approved_by, ''),
    created_at, updated_at
`

func (s *Store) GetScorecardResults(ctx context.Context) ([]Result, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+resultColumns+" FROM scorecard_results ORDER BY period_year, period_month")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.ID, &r.ScorecardID, &r.UserID, &r.PeriodMonth, &r.PeriodYear, &r.KPIValues, &r.Status, &r.SubmittedAt, &r.ApprovedAt, &r.ApprovedBy, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *Store) GetResult(ctx context.Context, scorecardID string, month, year int) (*Result, error) {
	var r Result
	err := s.DB.QueryRow(ctx, "SELECT "+resultColumns+" FROM scorecard_results WHERE scorecard_id = $1 AND period_month = $2 AND period_year = $3", scorecardID, month, year).
		Scan(&r.ID, &r.ScorecardID, &r.UserID, &r.PeriodMonth, &r.PeriodYear, &r.KPIValues, &r.Status, &r.SubmittedAt, &r.ApprovedAt, &r.ApprovedBy, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// SaveDraft upserts the one result row for a period, keeping its status at
// draft. The unique (scorecard_id, period_month, period_year) constraint
// enforces the single-row-per-period invariant.
func (s *Store) SaveDraft(ctx context.Context, r *Result) error {
	return s.DB.QueryRow(ctx, `
    INSERT INTO scorecard_results (scorecard_id, user_id, period_month, period_year, kpi_values, status)
    VALUES ($1, $2, $3, $4, $5, $6)
    ON CONFLICT (scorecard_id, period_month, period_year)
    DO UPDATE SET kpi_values = EXCLUDED.kpi_values, user_id = EXCLUDED.user_id, updated_at = now()
    RETURNING id, created_at, updated_at
  `, r.ScorecardID, r.UserID, r.PeriodMonth, r.PeriodYear, r.KPIValues, ResultStatusDraft).
		Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
}

func (s *Store) SubmitResult(ctx context.Context, scorecardID string, month, year int) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE scorecard_results
    SET status = $4, submitted_at = now(), updated_at = now()
    WHERE scorecard_id = $1 AND period_month = $2 AND period_year = $3
  `, scorecardID, month, year, ResultStatusSubmitted)
	return err
}

func (s *Store) ApproveResult(ctx context.Context, scorecardID string, month, year int, approvedBy string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE scorecard_results
    SET status = $4, approved_at = now(), approved_by = $5, updated_at = now()
    WHERE scorecard_id = $1 AND period_month = $2 AND period_year = $3
  `, scorecardID, month, year, ResultStatusApproved, approvedBy)
	return err
}
