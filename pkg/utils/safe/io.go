package safe

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
)

// Close closes the resource and only logs a failure. io.EOF is ignored.
func Close(closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil && !errors.Is(err, io.EOF) {
		logging.Default().Warn("failed to close resource", slog.Any("error", err))
	}
}

// Remove deletes a partially written file. A missing file is not an error.
func Remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logging.Default().Warn("failed to remove file", slog.String("path", path), slog.Any("error", err))
	}
}

// Rollback rolls back tx unless it is already committed.
func Rollback(tx *sql.Tx) {
	if tx == nil {
		return
	}
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		logging.Default().Warn("failed to rollback transaction", slog.Any("error", err))
	}
}
