package mock

import (
	"context"

	"github.com/fwojciec/leaders"
)

var _ leaders.DatasetWriter = (*DatasetWriter)(nil)

// DatasetWriter is a mock implementation of leaders.DatasetWriter.
type DatasetWriter struct {
	WriteDatasetFn func(ctx context.Context, dataset leaders.Dataset) error
}

func (w *DatasetWriter) WriteDataset(ctx context.Context, dataset leaders.Dataset) error {
	return w.WriteDatasetFn(ctx, dataset)
}
