// Package search maintains the full-text user index backing username search.
package search

import (
	"context"
	"log/slog"

	"github.com/blugelabs/bluge"
	"github.com/google/uuid"
)

type UserIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewUserIndex(path string, log *slog.Logger) (*UserIndex, error) {
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(path))
	if err != nil {
		return nil, err
	}
	return &UserIndex{writer: writer, log: log}, nil
}

// IndexUser upserts one user document keyed by its id.
func (i *UserIndex) IndexUser(id uuid.UUID, username, email string) error {
	doc := bluge.NewDocument(id.String()).
		AddField(bluge.NewTextField("username", username).StoreValue()).
		AddField(bluge.NewTextField("email", email))
	return i.writer.Update(doc.ID(), doc)
}

// Search returns the ids of users whose username matches the query.
func (i *UserIndex) Search(ctx context.Context, query string, limit int) ([]uuid.UUID, error) {
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			i.log.Warn("Failed to close index reader", "error", err)
		}
	}()

	q := bluge.NewMatchQuery(query).SetField("username")
	dmi, err := reader.Search(ctx, bluge.NewTopNSearch(limit, q))
	if err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	for {
		match, err := dmi.Next()
		if err != nil {
			return nil, err
		}
		if match == nil {
			break
		}
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				if id, err := uuid.Parse(string(value)); err == nil {
					ids = append(ids, id)
				}
			}
			return true
		})
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func (i *UserIndex) Close() error {
	return i.writer.Close()
}
