package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
)

func makeRecords(n int) []domain.Record {
	out := make([]domain.Record, n)
	for i := range out {
		out[i] = domain.Record{VideoID: "abc12345678", Text: fmt.Sprintf("line %d", i)}
	}
	return out
}

// TestIndexBuilder_Batches tests that records are committed in fixed-size batches
func TestIndexBuilder_Batches(t *testing.T) {
	store := &mockIndexStore{}
	var progress []int

	report, err := NewIndexBuilder(store, 10).Build(
		context.Background(),
		&sliceIterator{records: makeRecords(25)},
		func(n int) { progress = append(progress, n) },
	)
	require.NoError(t, err)

	w := store.lastWriter()
	require.Len(t, w.batches, 3)
	assert.Len(t, w.batches[0], 10)
	assert.Len(t, w.batches[1], 10)
	assert.Len(t, w.batches[2], 5)
	assert.Equal(t, []int{10, 20, 25}, progress)
	assert.True(t, w.committed)
	assert.Equal(t, 25, report.Records)
	assert.Equal(t, "line 24", w.records()[24].Text)
}

func TestIndexBuilder_EmptyStream(t *testing.T) {
	store := &mockIndexStore{}

	report, err := NewIndexBuilder(store, 10).Build(context.Background(), &sliceIterator{}, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Records)
	assert.Empty(t, store.lastWriter().batches)
	assert.True(t, store.lastWriter().committed)
}

func TestIndexBuilder_DefaultBatchSize(t *testing.T) {
	b := NewIndexBuilder(&mockIndexStore{}, 0)
	assert.Equal(t, domain.DefaultBatchSize, b.batchSize)
}

// TestIndexBuilder_InsertFailure tests that a failed batch discards the staging index
func TestIndexBuilder_InsertFailure(t *testing.T) {
	store := &mockIndexStore{newWriter: func() *mockIndexWriter {
		return &mockIndexWriter{runID: "run-x", insertErr: errors.New("disk full")}
	}}

	_, err := NewIndexBuilder(store, 10).Build(context.Background(), &sliceIterator{records: makeRecords(3)}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	w := store.lastWriter()
	assert.True(t, w.aborted)
	assert.False(t, w.committed)
}

func TestIndexBuilder_IteratorFailure(t *testing.T) {
	store := &mockIndexStore{}
	it := &sliceIterator{records: makeRecords(2), err: errors.New("bad json on line 3")}

	_, err := NewIndexBuilder(store, 10).Build(context.Background(), it, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad json on line 3")
	assert.True(t, store.lastWriter().aborted)
}

func TestIndexBuilder_CommitFailure(t *testing.T) {
	store := &mockIndexStore{newWriter: func() *mockIndexWriter {
		return &mockIndexWriter{commitErr: errors.New("rename failed")}
	}}

	_, err := NewIndexBuilder(store, 10).Build(context.Background(), &sliceIterator{records: makeRecords(1)}, nil)
	require.Error(t, err)
	assert.True(t, store.lastWriter().aborted)
}

func TestIndexBuilder_BeginFailure(t *testing.T) {
	store := &mockIndexStore{beginErr: domain.ErrRebuildInProgress}

	_, err := NewIndexBuilder(store, 10).Build(context.Background(), &sliceIterator{}, nil)
	assert.ErrorIs(t, err, domain.ErrRebuildInProgress)
}
