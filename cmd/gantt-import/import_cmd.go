package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/anprojects/anproyektim/modules/projects/domain/entities/project"
	"github.com/anprojects/anproyektim/modules/projects/domain/entities/task"
	"github.com/anprojects/anproyektim/modules/projects/ganttimport"
	"github.com/anprojects/anproyektim/modules/projects/infrastructure/persistence"
	"github.com/anprojects/anproyektim/modules/projects/infrastructure/persistence/localstore"
	"github.com/anprojects/anproyektim/modules/projects/services"
	"github.com/anprojects/anproyektim/pkg/composables"
	"github.com/anprojects/anproyektim/pkg/configuration"
	"github.com/anprojects/anproyektim/pkg/eventbus"
	"github.com/jackc/pgx/v5/pgxpool"
)

type importOptions struct {
	file      string
	projectID string
	mapping   string
	apply     bool
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Parse an Excel schedule and merge it into a project's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "Path to the .xlsx schedule (required)")
	cmd.Flags().StringVar(&opts.projectID, "project", "", "Target project id (required)")
	cmd.Flags().StringVar(&opts.mapping, "mapping", "", "Field mapping as field=column pairs, e.g. task_name=Task,planned_start_date=Start")
	cmd.Flags().BoolVar(&opts.apply, "apply", false, "Commit the import (default is a dry-run preview)")
	return cmd
}

func runImport(ctx context.Context, opts importOptions) error {
	if opts.file == "" || opts.projectID == "" || opts.mapping == "" {
		return withCode(exitUsage, fmt.Errorf("--file, --project and --mapping are required"))
	}
	projectID, err := uuid.Parse(opts.projectID)
	if err != nil {
		return withCode(exitUsage, fmt.Errorf("invalid project id %q", opts.projectID))
	}
	fieldByColumn, err := parseMappingFlag(opts.mapping)
	if err != nil {
		return withCode(exitUsage, err)
	}

	conf := configuration.Use()
	logger := conf.Logger()
	ctx = composables.WithLogger(ctx, logrus.NewEntry(logger))

	tasks, projects, pool, err := buildRepositories(ctx, conf)
	if err != nil {
		return withCode(exitStore, err)
	}
	if pool != nil {
		defer pool.Close()
		ctx = composables.WithPool(ctx, pool)
	}

	svc := services.NewGanttImportService(tasks, projects, eventbus.NewEventPublisher(logger))

	f, err := os.Open(opts.file)
	if err != nil {
		return withCode(exitUsage, err)
	}
	defer f.Close()

	ingestion, rows, err := svc.Parse(ctx, opts.file, f)
	if err != nil {
		return withCode(exitValidation, err)
	}

	mappings, err := applyMappingFlag(ingestion.Mappings, fieldByColumn)
	if err != nil {
		return withCode(exitUsage, err)
	}

	validated, err := svc.Preview(ctx, rows, mappings)
	if err != nil {
		return withCode(exitValidation, err)
	}

	if !opts.apply {
		printPreview(validated)
		return nil
	}

	var report ganttimport.Report
	commit := func(ctx context.Context) error {
		var commitErr error
		report, commitErr = svc.Commit(ctx, projectID, rows, mappings)
		return commitErr
	}
	if pool != nil {
		err = composables.InTx(ctx, commit)
	} else {
		err = commit(ctx)
	}
	if err != nil {
		return withCode(exitStore, err)
	}

	fmt.Println(ganttimport.MsgImportDone)
	summary, err := json.Marshal(report)
	if err != nil {
		return err
	}
	fmt.Println(string(summary))
	return nil
}

// parseMappingFlag decodes "field=column" pairs keyed by spreadsheet
// column name.
func parseMappingFlag(raw string) (map[string]ganttimport.SystemField, error) {
	out := make(map[string]ganttimport.SystemField)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		field, column, found := strings.Cut(pair, "=")
		if !found || column == "" {
			return nil, fmt.Errorf("invalid mapping pair %q, expected field=column", pair)
		}
		sysField := ganttimport.SystemField(strings.TrimSpace(field))
		if !ganttimport.ValidField(sysField) {
			return nil, fmt.Errorf("unknown field %q in mapping", field)
		}
		out[strings.TrimSpace(column)] = sysField
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty mapping")
	}
	return out, nil
}

func applyMappingFlag(seeded []ganttimport.ColumnMapping, fieldByColumn map[string]ganttimport.SystemField) ([]ganttimport.ColumnMapping, error) {
	mappings := make([]ganttimport.ColumnMapping, len(seeded))
	copy(mappings, seeded)

	seen := make(map[string]bool, len(fieldByColumn))
	for i := range mappings {
		if field, ok := fieldByColumn[mappings[i].ColumnName]; ok {
			mappings[i].MappedTo = field
			seen[mappings[i].ColumnName] = true
		}
	}
	for column := range fieldByColumn {
		if !seen[column] {
			return nil, fmt.Errorf("column %q not found in the workbook", column)
		}
	}
	return mappings, nil
}

func buildRepositories(ctx context.Context, conf *configuration.Configuration) (task.Repository, project.Repository, *pgxpool.Pool, error) {
	if conf.Tasks.Backend == "local" {
		store := localstore.NewStore(conf.Tasks.LocalPath)
		return localstore.NewTaskRepository(store), localstore.NewProjectRepository(store), nil, nil
	}
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		return nil, nil, nil, err
	}
	return persistence.NewTaskRepository(), persistence.NewProjectRepository(), pool, nil
}

func printPreview(rows []ganttimport.ValidatedRow) {
	importable := 0
	for i := range rows {
		r := &rows[i]
		marker := "OK "
		if !r.Valid() {
			marker = "ERR"
		} else {
			importable++
		}
		fmt.Printf("%s %-30s %s .. %s", marker, r.TaskName, r.PlannedStart, r.PlannedEnd)
		if len(r.Errors) > 0 {
			fmt.Printf("  [%s]", strings.Join(r.Errors, "; "))
		}
		if len(r.Warnings) > 0 {
			fmt.Printf("  (%s)", strings.Join(r.Warnings, "; "))
		}
		fmt.Println()
	}
	fmt.Printf("rows: %d, importable: %d (dry-run, pass --apply to commit)\n", len(rows), importable)
}
