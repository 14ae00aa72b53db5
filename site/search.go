package site

import (
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"pdc/book"
	"pdc/render"
)

// searchRow is one indexed entry of the site search database.
type searchRow struct {
	anchor   string
	category string
	title    string
	body     string
}

// collectSearchRows flattens the book into searchable rows, one per entry,
// with the plain text of every page concatenated.
func collectSearchRows(b *book.Book) []searchRow {
	var rows []searchRow
	for _, category := range b.Categories {
		for _, entry := range category.Entries {
			row := searchRow{
				anchor:   render.AnchorFor(entry.ID),
				category: category.Name,
				title:    entry.Name,
			}
			for _, page := range entry.Pages {
				if text := page.Text.AsPlainText(); text != "" {
					if row.body != "" {
						row.body += "\n"
					}
					row.body += text
				}
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// writeSearchIndex builds the search.db consumed by the client side search
// script.
func writeSearchIndex(path string, rows []searchRow) (rerr error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenCreate|sqlite.OpenReadWrite)
	if err != nil {
		return fmt.Errorf("unable to create search index: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	err = sqlitex.ExecuteScript(conn, `
		DROP TABLE IF EXISTS entries;
		CREATE TABLE entries (
			anchor   TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			title    TEXT NOT NULL,
			body     TEXT NOT NULL
		);
	`, nil)
	if err != nil {
		return fmt.Errorf("unable to prepare search schema: %w", err)
	}

	for _, row := range rows {
		err := sqlitex.Execute(conn,
			`INSERT INTO entries (anchor, category, title, body) VALUES (?, ?, ?, ?);`,
			&sqlitex.ExecOptions{Args: []any{row.anchor, row.category, row.title, row.body}})
		if err != nil {
			return fmt.Errorf("unable to index entry %q: %w", row.anchor, err)
		}
	}
	return nil
}
