package storage

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/boxdtools/boxdexport/internal/config"
	"github.com/boxdtools/boxdexport/internal/types"
)

// Export serializes the accumulated result set according to cfg and
// returns the written filename. An empty result set is a no-op
// returning an empty filename. When a Mongo URI is configured but the
// connection fails, the file export still proceeds; the Mongo backend
// is dropped with an error log.
func Export(rs *types.ResultSet, cfg *config.Export, username string, logger *slog.Logger) (string, error) {
	if rs.Len() == 0 {
		logger.Warn("no records to export")
		return "", nil
	}

	path := cfg.OutputPath
	if path == "" {
		path = DefaultFilename(username, cfg.Format, time.Now())
	}

	fileStore, err := NewFileStorage(cfg.Format, path, logger)
	if err != nil {
		return "", &types.StorageError{Backend: cfg.Format, Err: err}
	}

	store := fileStore
	if cfg.MongoURI != "" {
		mongoStore, err := NewMongoStorage(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, logger)
		if err != nil {
			logger.Error("mongodb backend unavailable, continuing with file export", "error", err)
		} else {
			store = NewMultiStorage([]Storage{fileStore, mongoStore}, logger)
		}
	}

	if err := store.Store(rs.Records()); err != nil {
		store.Close()
		return "", &types.StorageError{Backend: store.Name(), Err: err}
	}
	if err := store.Close(); err != nil {
		return "", &types.StorageError{Backend: store.Name(), Err: err}
	}

	logger.Info("export complete", "path", path, "records", rs.Len())
	return path, nil
}

// DefaultFilename derives an output name from the username and a
// timestamp, with the extension matching the export format.
func DefaultFilename(username, format string, now time.Time) string {
	ext := format
	if ext == "" {
		ext = "csv"
	}
	return fmt.Sprintf("%s_letterboxd_%s.%s", username, now.Format("20060102_150405"), ext)
}
