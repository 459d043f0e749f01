package booktype_test

import (
	"context"
	"slices"
	"testing"

	"github.com/heartmarshall/bookshelf-backend/internal/adapter/postgres/booktype"
	"github.com/heartmarshall/bookshelf-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

func TestRepo_FindByName(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := booktype.New(pool)
	ctx := context.Background()

	got, err := repo.FindByName(ctx, "  Technical ")
	if err != nil {
		t.Fatalf("FindByName: unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected technical type, got nil")
	}
	if got.Name() != "technical" {
		t.Errorf("Name mismatch: got %q, want %q", got.Name(), "technical")
	}

	want := testhelper.BookType(t, pool, "technical")
	if got.ID() != want.ID() {
		t.Errorf("ID mismatch: got %s, want %s", got.ID(), want.ID())
	}
}

func TestRepo_FindByName_Absent(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := booktype.New(pool)

	got, err := repo.FindByName(context.Background(), "cookbook")
	if err != nil {
		t.Fatalf("FindByName: unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for unknown type, got %v", got.Name())
	}
}

func TestRepo_List_SortedSeedTypes(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := booktype.New(pool)

	types, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}

	names := make([]string, len(types))
	for i, bt := range types {
		names[i] = bt.Name()
	}

	want := slices.Clone(domain.DefaultBookTypeNames)
	slices.Sort(want)
	if !slices.Equal(names, want) {
		t.Errorf("List mismatch:\n got  %v\n want %v", names, want)
	}
}
