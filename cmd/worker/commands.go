package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/config"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/bootstrap"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/storage/postgres"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/domain"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/repository"
	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/views"
)

// RunManifest writes the manifest of one project to out.
func RunManifest(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: worker manifest <projectCode>")
	}

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database), MaxConns: 2})
	if err != nil {
		return err
	}
	defer pool.Close()

	return writeManifest(ctx, repository.NewManifestProvider(pool), args[0], out)
}

func writeManifest(ctx context.Context, m views.ManifestProvider, code string, out io.Writer) error {
	rc, err := m.GetManifestForProject(ctx, code)
	if err != nil {
		return err
	}
	defer rc.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// RunProjects prints the status table of every project.
func RunProjects(ctx context.Context, cfg *config.Config, out io.Writer) error {
	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	return printProjects(ctx, repository.NewProjectRepository(db), out)
}

func printProjects(ctx context.Context, repo views.ProjectRepository, out io.Writer) error {
	projects, err := repo.FindAllProjects(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tTITLE\tRECEIVED\tQC PASS\tQC FAIL\tLIB PREP\tDATA\tTOTAL\tLAST MODIFIED")
	for _, p := range projects {
		st := p.Status
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
			p.Code, p.Title,
			st.Received, st.QCPassed, st.QCFailed, st.LibraryPrepFinished,
			st.CountDataAvailable(), st.TotalCount(),
			lastModified(st),
		)
	}
	return tw.Flush()
}

func lastModified(st domain.ProjectStatus) string {
	if st.LastModified().IsZero() {
		return "-"
	}
	return st.LastModified().Format("2006-01-02 15:04")
}

// RunMigrate creates the tracking tables.
func RunMigrate(ctx context.Context, cfg *config.Config) error {
	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	return repository.EnsureSchema(ctx, db)
}
