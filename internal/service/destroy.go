package service

import (
	"context"
	"fmt"

	"filearray/internal/model"
	"filearray/internal/storage"
)

// DestroyFiles deletes every file rec references, one at a time in array order. It must run
// synchronously right before the record row is removed. The first failure stops the loop and
// is returned so the caller keeps the row.
func DestroyFiles(ctx context.Context, store storage.Storage, rec *model.Record) error {
	for _, p := range rec.Paths {
		if err := store.Delete(ctx, p); err != nil {
			return fmt.Errorf("delete storage %q: %w", p, err)
		}
	}
	return nil
}
