package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
)

// The schema belongs to the deployment. These scripts only create it where
// it is missing (tests, the migrate command) and are safe to run repeatedly.
// Cascades live here, never in store code.
//
//go:embed schema/*.sql
var schemaFS embed.FS

// Migrate creates any missing table or index for the provider's dialect.
func (d *DB) Migrate(ctx context.Context) error {
	script, err := schemaFS.ReadFile("schema/" + d.dialect.Name() + ".sql")
	if err != nil {
		return fmt.Errorf("sqlstore: no schema for dialect %s: %w", d.dialect.Name(), err)
	}

	return d.run(ctx, "schema", "migrate", func(ctx context.Context, conn *sql.Conn) error {
		for _, stmt := range splitStatements(string(script)) {
			if _, err := conn.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("applying %q: %w", firstLine(stmt), err)
			}
		}
		return nil
	})
}

// splitStatements splits a script on the semicolons ending its lines.
// MySQL rejects multi-statement Exec calls unless the DSN opts in.
func splitStatements(script string) []string {
	var out []string
	for _, part := range strings.SplitAfter(script, ";\n") {
		stmt := strings.TrimSpace(part)
		stmt = strings.TrimSuffix(stmt, ";")
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

func firstLine(stmt string) string {
	line, _, _ := strings.Cut(stmt, "\n")
	return line
}
