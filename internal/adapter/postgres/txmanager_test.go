package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/bookshelf-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookshelf-backend/internal/adapter/postgres/testhelper"
)

func authorExists(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) bool {
	t.Helper()
	return testhelper.CountRows(t, pool, "authors", "id = $1", id) == 1
}

func insertAuthor(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID) error {
	_, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx,
		`INSERT INTO authors (id, name) VALUES ($1, $2)`,
		id, "Tx Author "+id.String(),
	)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertAuthor(ctx, pool, id)
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !authorExists(t, pool, id) {
		t.Fatal("expected author to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertAuthor(ctx, pool, id); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if authorExists(t, pool, id) {
		t.Fatal("expected author NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}
		if authorExists(t, pool, id) {
			t.Fatal("expected author NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertAuthor(ctx, pool, id); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_QuerierFromCtx_UsesTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	id := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertAuthor(ctx, pool, id); err != nil {
			return err
		}

		// Visible inside the transaction, not yet outside.
		var n int
		err := postgres.QuerierFromCtx(ctx, pool).
			QueryRow(ctx, `SELECT count(*) FROM authors WHERE id = $1`, id).Scan(&n)
		if err != nil {
			return err
		}
		if n != 1 {
			t.Fatal("expected author to be visible within the transaction")
		}
		if authorExists(t, pool, id) {
			t.Fatal("expected author to be invisible outside the transaction before commit")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !authorExists(t, pool, id) {
		t.Fatal("expected author to exist after committed transaction")
	}
}

func TestRunInTx_NestedRollbackKeepsOuter(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	outerID, innerID := uuid.New(), uuid.New()
	sentinel := errors.New("inner failure")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertAuthor(ctx, pool, outerID); err != nil {
			return err
		}

		innerErr := tm.RunInTx(ctx, func(ctx context.Context) error {
			if err := insertAuthor(ctx, pool, innerID); err != nil {
				return err
			}
			return sentinel
		})
		if !errors.Is(innerErr, sentinel) {
			t.Fatalf("expected inner sentinel, got: %v", innerErr)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !authorExists(t, pool, outerID) {
		t.Fatal("expected outer author to be committed")
	}
	if authorExists(t, pool, innerID) {
		t.Fatal("expected inner author to be rolled back with its savepoint")
	}
}
