package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/domain"
)

type SampleRepository struct {
	db *sql.DB
}

func NewSampleRepository(db *sql.DB) *SampleRepository {
	return &SampleRepository{db: db}
}

// FindAllSamplesForProject lists the samples of one project ordered by code.
// An unknown project yields no samples.
func (r *SampleRepository) FindAllSamplesForProject(ctx context.Context, projectCode string) ([]domain.Sample, error) {
	rows, err := r.db.QueryContext(ctx, `
select label, code, status
from samples
where project_code = $1
order by code
`, projectCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	var samples []domain.Sample
	for rows.Next() {
		var (
			s      domain.Sample
			label  sql.NullString
			status string
		)
		if err := rows.Scan(&label, &s.Code, &status); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		st, err := domain.ParseSampleStatus(status)
		if err != nil {
			return nil, fmt.Errorf("sample %s has status %q: %w", s.Code, status, err)
		}
		s.Label = label.String
		s.Status = st
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate samples: %w", err)
	}
	return samples, nil
}
