package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/domain"
)

// Statuses counted by each cumulative stage of the project status summary.
var (
	receivedStatuses = []domain.SampleStatus{
		domain.StatusSampleReceived,
		domain.StatusSampleQCFail,
		domain.StatusSampleQCPass,
		domain.StatusLibraryPrepFinished,
		domain.StatusDataAvailable,
	}
	qcPassedStatuses = []domain.SampleStatus{
		domain.StatusSampleQCPass,
		domain.StatusLibraryPrepFinished,
		domain.StatusDataAvailable,
	}
	libraryPrepStatuses = []domain.SampleStatus{
		domain.StatusLibraryPrepFinished,
		domain.StatusDataAvailable,
	}
)

const findAllProjectsQuery = `
select p.code,
       p.title,
       count(s.code)                                        as total,
       count(s.code) filter (where s.status = any($1))      as received,
       count(s.code) filter (where s.status = any($2))      as qc_passed,
       count(s.code) filter (where s.status = $3)           as qc_failed,
       count(s.code) filter (where s.status = any($4))      as library_prep_finished,
       count(s.code) filter (where s.status = $5)           as data_available,
       coalesce(max(s.modified_at), p.created_at)           as last_modified
from projects p
left join samples s on s.project_code = p.code
group by p.code, p.title, p.created_at
order by p.code
`

// ProjectRepository reads projects together with their aggregated sample
// status from PostgreSQL.
type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) FindAllProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, findAllProjectsQuery,
		pq.Array(statusStrings(receivedStatuses)),
		pq.Array(statusStrings(qcPassedStatuses)),
		string(domain.StatusSampleQCFail),
		pq.Array(statusStrings(libraryPrepStatuses)),
		string(domain.StatusDataAvailable),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var (
			p        domain.Project
			modified time.Time
		)
		if err := rows.Scan(
			&p.Code,
			&p.Title,
			&p.Status.Total,
			&p.Status.Received,
			&p.Status.QCPassed,
			&p.Status.QCFailed,
			&p.Status.LibraryPrepFinished,
			&p.Status.DataAvailable,
			&modified,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		p.Status.Modified = modified
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}
	return projects, nil
}

func statusStrings(statuses []domain.SampleStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
