package activity

import (
	"context"

	"safechain-api/internal/domain/activity"
	"safechain-api/internal/domain/user"
	"safechain-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DBTX
}

func NewRepository(db postgres.DBTX) activity.Repository {
	return &Repository{db: db}
}

// Insert appends an entry on any DBTX. The file repository reuses it to
// write audit rows inside its own transactions.
func Insert(ctx context.Context, db postgres.DBTX, e *activity.Entry) (*activity.Entry, error) {
	out := *e
	err := db.QueryRow(
		ctx,
		InsertEntry,
		string(e.EventType), uint64(e.ActorID), e.FileID, e.Details,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *Repository) Append(ctx context.Context, e *activity.Entry) (*activity.Entry, error) {
	return Insert(ctx, r.db, e)
}

func (r *Repository) FetchAll(ctx context.Context) (activity.Entries, error) {
	return r.fetch(ctx, SelectAllEntries)
}

func (r *Repository) FetchByActor(ctx context.Context, actorID user.ID) (activity.Entries, error) {
	return r.fetch(ctx, SelectEntriesByActor, uint64(actorID))
}

func (r *Repository) fetch(ctx context.Context, query string, args ...any) (activity.Entries, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var es Entries
	for rows.Next() {
		e := new(Entry)

		if err = rows.Scan(
			&e.ID,
			&e.EventType,
			&e.ActorID,
			&e.ActorName,
			&e.FileID,
			&e.FileName,
			&e.Details,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}

		es = append(es, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&es), nil
}
