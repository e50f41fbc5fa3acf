package repository

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/domain"
)

// Querier is the part of *pgxpool.Pool the manifest provider needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ManifestProvider streams manifests: one sample code with available data
// per line.
type ManifestProvider struct {
	db Querier
}

func NewManifestProvider(db Querier) *ManifestProvider {
	return &ManifestProvider{db: db}
}

// GetManifestForProject checks that the project exists and returns a reader
// that streams its manifest. Rows are fetched while the reader is consumed;
// a query failure surfaces as a read error. Ending ctx closes the stream, so
// an abandoned reader does not pin the writer.
func (m *ManifestProvider) GetManifestForProject(ctx context.Context, projectCode string) (io.ReadCloser, error) {
	var exists bool
	if err := m.db.QueryRow(ctx, `select exists(select 1 from projects where code = $1)`, projectCode).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to look up project: %w", err)
	}
	if !exists {
		return nil, domain.ErrProjectNotFound
	}

	pr, pw := io.Pipe()
	stop := context.AfterFunc(ctx, func() {
		pr.CloseWithError(ctx.Err())
	})
	go func() {
		defer stop()
		pw.CloseWithError(m.writeManifest(ctx, projectCode, pw))
	}()
	return pr, nil
}

func (m *ManifestProvider) writeManifest(ctx context.Context, projectCode string, w io.Writer) error {
	rows, err := m.db.Query(ctx, `
select code
from samples
where project_code = $1
  and status = $2
order by code
`, projectCode, string(domain.StatusDataAvailable))
	if err != nil {
		return fmt.Errorf("failed to query manifest: %w", err)
	}
	defer rows.Close()

	bw := bufio.NewWriter(w)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return fmt.Errorf("failed to scan manifest row: %w", err)
		}
		if _, err := bw.WriteString(code + "\n"); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate manifest: %w", err)
	}
	return bw.Flush()
}
