// Command addbook creates one book and prints it as JSON.
//
// Usage:
//
//	addbook --title="Clean Code" --author="Robert C. Martin" \
//	    --type=technical --category=programming --format=pdf \
//	    --description="..." [--isbn=9780132350884] [--available] [--path=/books/clean-code.pdf]
//
// --author and --category may be repeated. Exit codes: 0 = created,
// 1 = setup or internal error, 2 = rejected input (validation, duplicate, unknown type).
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/heartmarshall/bookshelf-backend/internal/app"
	"github.com/heartmarshall/bookshelf-backend/internal/config"
	"github.com/heartmarshall/bookshelf-backend/internal/domain"
	"github.com/heartmarshall/bookshelf-backend/internal/service/book"
	"github.com/heartmarshall/bookshelf-backend/pkg/ctxutil"
)

// listFlag collects a repeated string flag.
type listFlag []string

func (l *listFlag) String() string     { return strings.Join(*l, ",") }
func (l *listFlag) Set(v string) error { *l = append(*l, v); return nil }

func main() {
	var authors, categories listFlag
	title := flag.String("title", "", "book title")
	description := flag.String("description", "", "book description")
	bookType := flag.String("type", "", "book type (technical, fiction, ...)")
	format := flag.String("format", "", "file format (pdf, epub, mobi, azw3, djvu, txt)")
	isbn := flag.String("isbn", "", "ISBN-10 or ISBN-13 (optional)")
	path := flag.String("path", "", "file path (optional)")
	available := flag.Bool("available", false, "mark the book as available")
	dryRun := flag.Bool("dry-run", false, "use in-memory storage")
	flag.Var(&authors, "author", "author name (repeatable)")
	flag.Var(&categories, "category", "category name (repeatable)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger("addbook", cfg.Log)
	app.LogStartup(logger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := app.NewCatalog(ctx, cfg, logger, app.Options{InMemory: *dryRun})
	if err != nil {
		logger.Error("init catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer catalog.Close()

	input := book.CreateBookInput{
		Title:         *title,
		Authors:       authors,
		Description:   *description,
		Type:          *bookType,
		CategoryNames: categories,
		Format:        *format,
		ISBN:          optional(*isbn),
		Available:     available,
		Path:          optional(*path),
	}

	ctx, reqID := ctxutil.EnsureRequestID(ctxutil.WithSource(ctx, "addbook"))
	out, err := catalog.Books.CreateBook(ctx, input)
	if err != nil {
		logger.Error("create book", slog.String("request_id", reqID), slog.String("error", err.Error()))
		catalog.Close()
		os.Exit(exitCode(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "encode output: %v\n", err)
		catalog.Close()
		os.Exit(1)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInvalidReference):
		return 2
	default:
		return 1
	}
}
