package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/wordsmith/pkg/types"
)

// setupStore attaches a Store in a fresh temp directory and detaches it when
// the test ends.
func setupStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	require.NoError(t, s.Attach(types.Config{DataDir: t.TempDir()}))
	t.Cleanup(func() { s.Detach() })
	return s
}

func TestStore_Attach(t *testing.T) {
	tmpDir := t.TempDir()
	s := NewStore()

	require.NoError(t, s.Attach(types.Config{DataDir: tmpDir}))
	defer s.Detach()

	_, err := os.Stat(filepath.Join(tmpDir, DBFileName))
	assert.NoError(t, err, "vocab.db not created")
	assert.Equal(t, filepath.Join(tmpDir, DBFileName), s.Path())

	err = s.Attach(types.Config{DataDir: tmpDir})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestStore_Detach(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Attach(types.Config{DataDir: t.TempDir()}))

	require.NoError(t, s.Detach())
	assert.NoError(t, s.Detach(), "second Detach should not error")

	ctx := context.Background()
	_, _, err := s.EnsureWord(ctx, "lucid")
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	assert.ErrorIs(t, s.AddPattern(ctx, 1, "p"), types.ErrStoreDetached)
	_, err = s.RecentWords(ctx, 5)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = s.CountWords(ctx)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	err = s.InTx(ctx, func(w types.WordWriter) error { return nil })
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestStore_SchemaTables(t *testing.T) {
	s := setupStore(t)

	columns := func(table string) map[string]bool {
		rows, err := s.db.Query("PRAGMA table_info(" + table + ")")
		require.NoError(t, err)
		defer rows.Close()
		cols := map[string]bool{}
		for rows.Next() {
			var cid int
			var name, ctype string
			var notnull, pk int
			var dflt any
			require.NoError(t, rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk))
			cols[name] = true
		}
		require.NoError(t, rows.Err())
		return cols
	}

	assert.Equal(t, map[string]bool{"id": true, "word": true}, columns("vocabulary"))
	assert.Equal(t, map[string]bool{"id": true, "word_id": true, "pattern": true}, columns("patterns"))
}

func TestStore_PersistsAcrossAttach(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s := NewStore()
	require.NoError(t, s.Attach(types.Config{DataDir: dir}))
	id, wasNew, err := s.EnsureWord(ctx, "ephemeral")
	require.NoError(t, err)
	require.True(t, wasNew)
	require.NoError(t, s.AddPattern(ctx, id, "The ephemeral glow faded."))
	require.NoError(t, s.Detach())

	// Re-attaching runs the schema again and keeps existing rows.
	s2 := NewStore()
	require.NoError(t, s2.Attach(types.Config{DataDir: dir}))
	defer s2.Detach()

	again, wasNew, err := s2.EnsureWord(ctx, "ephemeral")
	require.NoError(t, err)
	assert.False(t, wasNew)
	assert.Equal(t, id, again)

	entries, err := s2.RecentWords(ctx, 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"The ephemeral glow faded."}, entries[0].Patterns)
}

func TestStore_EnsureWordUniqueness(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	words := []string{"lucid", "tenacious", "lucid", "Lucid", "tenacious", "lucid"}
	wantNew := []bool{true, true, false, true, false, false}

	ids := map[string]int64{}
	for i, w := range words {
		id, wasNew, err := s.EnsureWord(ctx, w)
		require.NoError(t, err)
		assert.Equal(t, wantNew[i], wasNew, "word %d (%q)", i, w)
		if prev, ok := ids[w]; ok {
			assert.Equal(t, prev, id, "repeat of %q changed id", w)
		}
		ids[w] = id
	}

	n, err := s.CountWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "text is case-sensitive and stored once")
}

func TestStore_EnsureWordRejectsBlank(t *testing.T) {
	s := setupStore(t)
	_, _, err := s.EnsureWord(context.Background(), "   ")
	assert.ErrorIs(t, err, types.ErrEmptyWord)
}

func TestStore_AddPattern(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	t.Run("rejects non-positive word id", func(t *testing.T) {
		assert.ErrorIs(t, s.AddPattern(ctx, 0, "x"), types.ErrInvalidWordID)
	})

	t.Run("unknown word id violates the foreign key", func(t *testing.T) {
		err := s.AddPattern(ctx, 9999, "orphan")
		assert.ErrorIs(t, err, types.ErrStore)
	})

	t.Run("duplicate pattern text is allowed", func(t *testing.T) {
		id, _, err := s.EnsureWord(ctx, "resilient")
		require.NoError(t, err)
		require.NoError(t, s.AddPattern(ctx, id, "She was resilient."))
		require.NoError(t, s.AddPattern(ctx, id, "She was resilient."))

		entries, err := s.RecentWords(ctx, 1)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Len(t, entries[0].Patterns, 2)
	})
}

func TestStore_RecentWords(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	words := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf"}
	for _, w := range words {
		id, _, err := s.EnsureWord(ctx, w)
		require.NoError(t, err)
		require.NoError(t, s.AddPattern(ctx, id, w+" first"))
		require.NoError(t, s.AddPattern(ctx, id, w+" second"))
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{name: "limit five returns newest five", limit: 5, want: []string{"golf", "foxtrot", "echo", "delta", "charlie"}},
		{name: "limit larger than table", limit: 20, want: []string{"golf", "foxtrot", "echo", "delta", "charlie", "bravo", "alpha"}},
		{name: "limit one", limit: 1, want: []string{"golf"}},
		{name: "zero limit", limit: 0, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := s.RecentWords(ctx, tt.limit)
			require.NoError(t, err)
			got := make([]string, 0, len(entries))
			for i, e := range entries {
				got = append(got, e.Word.Text)
				assert.Equal(t, []string{e.Word.Text + " first", e.Word.Text + " second"}, e.Patterns)
				if i > 0 {
					assert.Less(t, e.Word.ID, entries[i-1].Word.ID, "ids must strictly decrease")
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	_, _, err := s.EnsureWord(ctx, "older")
	require.NoError(t, err)

	id, wasNew, err := s.EnsureWord(ctx, "meticulous")
	require.NoError(t, err)
	require.True(t, wasNew)
	require.NoError(t, s.AddPattern(ctx, id, "He kept meticulous notes."))
	require.NoError(t, s.AddPattern(ctx, id, "A meticulous plan saved the day."))

	entries, err := s.RecentWords(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, types.Word{ID: id, Text: "meticulous"}, entries[0].Word)
	assert.Equal(t, []string{"He kept meticulous notes.", "A meticulous plan saved the day."}, entries[0].Patterns)
}

func TestStore_InTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commit keeps word and patterns", func(t *testing.T) {
		s := setupStore(t)
		err := s.InTx(ctx, func(w types.WordWriter) error {
			id, wasNew, err := w.EnsureWord(ctx, "candid")
			if err != nil {
				return err
			}
			assert.True(t, wasNew)
			return w.AddPattern(ctx, id, "A candid reply.")
		})
		require.NoError(t, err)

		entries, err := s.RecentWords(ctx, 5)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, []string{"A candid reply."}, entries[0].Patterns)
	})

	t.Run("error rolls back the word", func(t *testing.T) {
		s := setupStore(t)
		boom := errors.New("pattern generation failed")
		err := s.InTx(ctx, func(w types.WordWriter) error {
			id, _, err := w.EnsureWord(ctx, "fleeting")
			if err != nil {
				return err
			}
			if err := w.AddPattern(ctx, id, "half written"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		n, err := s.CountWords(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)

		_, wasNew, err := s.EnsureWord(ctx, "fleeting")
		require.NoError(t, err)
		assert.True(t, wasNew, "rolled back word must be new again")
	})
}
