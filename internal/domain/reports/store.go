package reports

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

func (s *Store) GetReportTypes(ctx context.Context) ([]ReportType, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, COALESCE(department, ''), frequency, COALESCE(format, ''), created_at
    FROM report_types
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []ReportType
	for rows.Next() {
		var rt ReportType
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.Department, &rt.Frequency, &rt.Format, &rt.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, rt)
	}
	return types, rows.Err()
}

func (s *Store) CreateReportType(ctx context.Context, rt *ReportType) error {
	return s.DB.QueryRow(ctx, `
    INSERT INTO report_types (name, department, frequency, format)
    VALUES ($1, $2, $3, $4)
    RETURNING id, created_at
  `, rt.Name, rt.Department, rt.Frequency, rt.Format).Scan(&rt.ID, &rt.CreatedAt)
}

func (s *Store) UpdateReportType(ctx context.Context, rt *ReportType) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE report_types
    SET name = $2, department = $3, frequency = $4, format = $5
    WHERE id = $1
  `, rt.ID, rt.Name, rt.Department, rt.Frequency, rt.Format)
	return err
}

func (s *Store) DeleteReportType(ctx context.Context, reportTypeID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM report_types WHERE id = $1", reportTypeID)
	return err
}

func (s *Store) GetReports(ctx context.Context) ([]Report, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, report_type_id, COALESCE(department, ''), date, status,
           COALESCE(file_name, ''), COALESCE(file_path, ''), COALESCE(uploaded_by, ''), created_at
    FROM reports
    ORDER BY date DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []Report
	for rows.Next() {
		var r Report
		if err := rows.Scan(&r.ID, &r.ReportTypeID, &r.Department, &r.Date, &r.Status, &r.FileName, &r.FilePath, &r.UploadedBy, &r.CreatedAt); err != nil {
			return nil, err
		}
		submissions = append(submissions, r)
	}
	return submissions, rows.Err()
}

func (s *Store) GetReport(ctx context.Context, reportID string) (*Report, error) {
	var r Report
	err := s.DB.QueryRow(ctx, `
    SELECT id, report_type_id, COALESCE(department, ''), date, status,
           COALESCE(file_name, ''), COALESCE(file_path, ''), COALESCE(uploaded_by, ''), created_at
    FROM reports
    WHERE id = $1
  `, reportID).Scan(&r.ID, &r.ReportTypeID, &r.Department, &r.Date, &r.Status, &r.FileName, &r.FilePath, &r.UploadedBy, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) CreateReport(ctx context.Context, r *Report) error {
	return s.DB.QueryRow(ctx, `
    INSERT INTO reports (report_type_id, department, date, status, file_name, file_path, uploaded_by)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING id, created_at
  `, r.ReportTypeID, r.Department, r.Date, r.Status, r.FileName, r.FilePath, r.UploadedBy).Scan(&r.ID, &r.CreatedAt)
}

func (s *Store) DeleteReport(ctx context.Context, reportID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM reports WHERE id = $1", reportID)
	return err
}
