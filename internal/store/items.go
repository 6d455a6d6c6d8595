package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/najdeno/internal/model"
)

// itemColumns is the column list shared by all item queries. The hint
// answer is deliberately absent: it is write-only and never leaves the
// database through the item queries.
const itemColumns = `i.id, i.name, i.category, i.description, i.place, i.found_at,
	i.phone, i.notes, i.hint_question, i.photo_mime, i.status, i.found_by,
	i.created_at, i.updated_at, i.deleted_at, u.name, u.email`

// CreateItem inserts a new found-item record with its photo and returns it.
func CreateItem(ctx context.Context, db *sql.DB, item *model.Item, photo []byte, photoMime string) (*model.Item, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (name, category, description, place, found_at, phone, notes,
		                    hint_question, hint_answer, photo, photo_mime, found_by)
		 VALUES (?, ?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), ?, NULLIF(?, ''), ?, ?, ?)`,
		item.Name, item.Category, item.Description, item.Place, item.FoundAt,
		item.Phone, item.Notes, item.HintQuestion, item.HintAnswer, photo, photoMime, item.FoundBy,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, including the poster's name and email.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+`
		 FROM items i JOIN users u ON u.id = i.found_by
		 WHERE i.id = ?`, id,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns all non-deleted items, newest first, optionally
// filtered by status.
func ListItems(ctx context.Context, db *sql.DB, status string) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + `
	          FROM items i JOIN users u ON u.id = i.found_by
	          WHERE i.deleted_at IS NULL`
	var args []any

	if status != "" {
		query += ` AND i.status = ?`
		args = append(args, status)
	}

	query += ` ORDER BY i.created_at DESC, i.id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ListItemsByUser returns all non-deleted items posted by a user, newest first.
func ListItemsByUser(ctx context.Context, db *sql.DB, userID int64) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+`
		 FROM items i JOIN users u ON u.id = i.found_by
		 WHERE i.deleted_at IS NULL AND i.found_by = ?
		 ORDER BY i.created_at DESC, i.id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing user items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// DeleteItem soft-deletes an item.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// GetItemPhoto returns an item's photo data and MIME type.
func GetItemPhoto(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM items WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item photo: %w", err)
	}
	return photo, mime.String, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.Item, error) {
	item := &model.Item{}
	var phone, notes, photoMime sql.NullString
	err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Description, &item.Place,
		&item.FoundAt, &phone, &notes, &item.HintQuestion, &photoMime, &item.Status,
		&item.FoundBy, &item.CreatedAt, &item.UpdatedAt, &item.DeletedAt,
		&item.PosterName, &item.PosterEmail)
	if err != nil {
		return nil, err
	}
	item.Phone = phone.String
	item.Notes = notes.String
	item.PhotoMime = photoMime.String
	if photoMime.Valid {
		item.PhotoURL = fmt.Sprintf("/items/%d/photo", item.ID)
	}
	return item, nil
}

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
