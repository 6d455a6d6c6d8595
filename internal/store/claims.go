package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erazemk/najdeno/internal/model"
)

// ErrClaimDecided is returned by DecideClaim when the claim has already
// reached a terminal status.
var ErrClaimDecided = errors.New("claim already decided")

// CreateClaim inserts a new pending claim against an item.
func CreateClaim(ctx context.Context, db *sql.DB, itemID int64, claimant model.Claimant, answer string) (*model.Claim, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO claims (item_id, claimant_user_id, claimant_name, claimant_email, claimant_phone, answer)
		 VALUES (?, ?, ?, ?, NULLIF(?, ''), ?)`,
		itemID, claimant.UserID, claimant.Name, claimant.Email, claimant.Phone, answer,
	)
	if err != nil {
		return nil, fmt.Errorf("creating claim: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting claim id: %w", err)
	}

	return GetClaim(ctx, db, id)
}

// GetClaim returns a claim by ID.
func GetClaim(ctx context.Context, db *sql.DB, id int64) (*model.Claim, error) {
	row := db.QueryRowContext(ctx,
		`SELECT id, item_id, claimant_user_id, claimant_name, claimant_email, claimant_phone,
		        answer, status, created_at, decided_at
		 FROM claims WHERE id = ?`, id,
	)
	claim, err := scanClaim(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting claim: %w", err)
	}
	return claim, nil
}

// ListClaimsForItem returns all claims for an item in insertion order.
func ListClaimsForItem(ctx context.Context, db *sql.DB, itemID int64) ([]model.Claim, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, item_id, claimant_user_id, claimant_name, claimant_email, claimant_phone,
		        answer, status, created_at, decided_at
		 FROM claims WHERE item_id = ? ORDER BY id`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing claims: %w", err)
	}
	defer rows.Close()

	var claims []model.Claim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning claim: %w", err)
		}
		claims = append(claims, *claim)
	}
	return claims, rows.Err()
}

// DecideClaim moves a pending claim to the given terminal status in a
// single transaction. The status guard in the UPDATE makes the transition
// atomic: of two racing decisions exactly one wins, the other gets
// ErrClaimDecided. Approval also marks the item as claimed; sibling claims
// stay untouched. Returns (nil, nil) if the claim does not exist.
func DecideClaim(ctx context.Context, db *sql.DB, claimID int64, status string) (*model.Claim, error) {
	if status != model.ClaimStatusApproved && status != model.ClaimStatusRejected {
		return nil, fmt.Errorf("invalid claim status %q", status)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE claims SET status = ?, decided_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = 'Pending'`,
		status, claimID,
	)
	if err != nil {
		return nil, fmt.Errorf("deciding claim: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking decision result: %w", err)
	}
	if affected == 0 {
		// Either the claim does not exist or it is already terminal.
		var existing string
		err := tx.QueryRowContext(ctx,
			`SELECT status FROM claims WHERE id = ?`, claimID,
		).Scan(&existing)
		if err == sql.ErrNoRows {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("checking claim status: %w", err)
		}
		return nil, ErrClaimDecided
	}

	if status == model.ClaimStatusApproved {
		_, err = tx.ExecContext(ctx,
			`UPDATE items SET status = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE id = (SELECT item_id FROM claims WHERE id = ?)`,
			model.ItemStatusClaimed, claimID,
		)
		if err != nil {
			return nil, fmt.Errorf("marking item claimed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing decision: %w", err)
	}

	return GetClaim(ctx, db, claimID)
}

func scanClaim(row rowScanner) (*model.Claim, error) {
	claim := &model.Claim{}
	var userID sql.NullInt64
	var phone sql.NullString
	err := row.Scan(&claim.ID, &claim.ItemID, &userID, &claim.ClaimedBy.Name,
		&claim.ClaimedBy.Email, &phone, &claim.Answer, &claim.Status,
		&claim.CreatedAt, &claim.DecidedAt)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		claim.ClaimedBy.UserID = &userID.Int64
	}
	claim.ClaimedBy.Phone = phone.String
	return claim, nil
}
