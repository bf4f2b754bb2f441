package batch

import (
	"context"
	"testing"

	"github.com/postpros/mailcheck/internal/imb"
	"github.com/postpros/mailcheck/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceRows() []Row {
	rows := make([]Row, len(testutil.ReferenceBarcodes))
	for i, ref := range testutil.ReferenceBarcodes {
		rows[i] = Row{Line: i + 2, Code: ref.Code}
	}
	return rows
}

func TestProcessPreservesOrder(t *testing.T) {
	rows := referenceRows()

	res, err := Process(context.Background(), rows, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, res.Rows, len(rows))

	for i, ref := range testutil.ReferenceBarcodes {
		row := res.Rows[i]
		require.Empty(t, row.Error, "row %d", i)
		assert.Equal(t, rows[i].Line, row.Row.Line)
		assert.Equal(t, ref.MailerID, row.Result.MailerID)
		assert.Equal(t, ref.RoutingZip, row.Result.RoutingZip)
	}
}

func TestProcessSummary(t *testing.T) {
	ref := testutil.ReferenceBarcodes[0]
	rows := []Row{
		{Line: 2, Code: ref.Code, ExpectedZip: "01234"},
		{Line: 3, Code: ref.Code, ExpectedZip: "99999"},
		{Line: 4, Code: "not a barcode"},
		{Line: 5, Code: testutil.ReferenceBarcodes[1].Code, ExpectedZip: "12345"},
		{Line: 6, Code: testutil.ReferenceBarcodes[2].Code},
	}

	res, err := Process(context.Background(), rows, DefaultConfig())
	require.NoError(t, err)

	s := res.Summary
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 4, s.Decoded)
	assert.Equal(t, 1, s.Malformed)
	assert.Equal(t, 0, s.ChecksumFailures)
	assert.Equal(t, 1, s.ZipMatches)
	assert.Equal(t, 1, s.ZipMismatches)
	assert.Equal(t, 1, s.ZipNotComparable)
}

func TestProcessSingleWorker(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 1

	res, err := Process(context.Background(), referenceRows(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, res.WorkerCount)
	assert.Equal(t, len(testutil.ReferenceBarcodes), res.Summary.Decoded)
}

func TestProcessWorkerCountCapped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 64

	res, err := Process(context.Background(), referenceRows()[:2], cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, res.WorkerCount)
}

func TestProcessCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Process(ctx, referenceRows(), DefaultConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessPassesDecodeOptions(t *testing.T) {
	ref := testutil.ReferenceBarcodes[0]
	rows := []Row{{Line: 2, Code: "  " + ref.Code + "  "}}

	res, err := Process(context.Background(), rows, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "malformed", res.Rows[0].Status())

	cfg := DefaultConfig()
	cfg.Decode = imb.Options{TrimWhitespace: true}
	res, err = Process(context.Background(), rows, cfg)
	require.NoError(t, err)
	assert.Equal(t, "decoded", res.Rows[0].Status())
}

func TestRowResultStatus(t *testing.T) {
	assert.Equal(t, "malformed", (&RowResult{Error: "boom"}).Status())
	assert.Equal(t, "checksum_mismatch", (&RowResult{Result: &imb.Result{Valid: false}}).Status())
	assert.Equal(t, "decoded", (&RowResult{Result: &imb.Result{Valid: true}}).Status())
}
