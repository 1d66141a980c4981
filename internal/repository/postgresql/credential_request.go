package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kestrelhq/ops-backend-go/internal/domain/credential"
	"github.com/kestrelhq/ops-backend-go/internal/pkg/database"
)

type credentialRequestRepositoryImpl struct {
	db *database.DB
}

func NewCredentialRequestRepository(db *database.DB) credential.ChangeRequestRepository {
	return &credentialRequestRepositoryImpl{db: db}
}

const changeRequestColumns = `cr.id, cr.user_id, cr.candidate_hash, cr.status, cr.requested_at,
			cr.reviewed_by, cr.reviewed_at, cr.rejection_reason, cr.created_at, cr.updated_at,
			u.full_name, u.email`

func scanChangeRequest(row pgx.Row) (credential.ChangeRequest, error) {
	var cr credential.ChangeRequest
	err := row.Scan(
		&cr.ID,
		&cr.UserID,
		&cr.CandidateHash,
		&cr.Status,
		&cr.RequestedAt,
		&cr.ReviewedBy,
		&cr.ReviewedAt,
		&cr.RejectionReason,
		&cr.CreatedAt,
		&cr.UpdatedAt,
		&cr.RequesterName,
		&cr.RequesterEmail,
	)
	return cr, err
}

// Create implements credential.ChangeRequestRepository.
func (r *credentialRequestRepositoryImpl) Create(ctx context.Context, req credential.ChangeRequest) (credential.ChangeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO credential_change_requests (user_id, candidate_hash, status, requested_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, requested_at, created_at, updated_at
	`

	created := req
	err := q.QueryRow(ctx, query, req.UserID, req.CandidateHash, credential.StatusPending).
		Scan(&created.ID, &created.RequestedAt, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return credential.ChangeRequest{}, err
	}
	created.Status = credential.StatusPending
	return created, nil
}

// GetByID implements credential.ChangeRequestRepository.
func (r *credentialRequestRepositoryImpl) GetByID(ctx context.Context, id string) (credential.ChangeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + changeRequestColumns + `
		FROM credential_change_requests cr
		JOIN users u ON u.id = cr.user_id
		WHERE cr.id = $1
	`

	cr, err := scanChangeRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return credential.ChangeRequest{}, credential.ErrRequestNotFound
		}
		return credential.ChangeRequest{}, err
	}
	return cr, nil
}

// HasPendingForUser implements credential.ChangeRequestRepository.
func (r *credentialRequestRepositoryImpl) HasPendingForUser(ctx context.Context, userID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM credential_change_requests WHERE user_id = $1 AND status = 'pending')`,
		userID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateStatus implements credential.ChangeRequestRepository.
func (r *credentialRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status credential.RequestStatus, reviewerID string, reason *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE credential_change_requests
		SET status = $1, reviewed_by = $2, reviewed_at = NOW(), rejection_reason = $3, updated_at = NOW()
		WHERE id = $4
	`
	tag, err := q.Exec(ctx, query, status, reviewerID, reason, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return credential.ErrRequestNotFound
	}
	return nil
}

// Delete implements credential.ChangeRequestRepository.
func (r *credentialRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM credential_change_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return credential.ErrRequestNotFound
	}
	return nil
}

// ListPending implements credential.ChangeRequestRepository.
func (r *credentialRequestRepositoryImpl) ListPending(ctx context.Context) ([]credential.ChangeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + changeRequestColumns + `
		FROM credential_change_requests cr
		JOIN users u ON u.id = cr.user_id
		WHERE cr.status = 'pending'
		ORDER BY cr.requested_at
	`
	return r.queryList(ctx, q, query)
}

// ListByUser implements credential.ChangeRequestRepository.
func (r *credentialRequestRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]credential.ChangeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + changeRequestColumns + `
		FROM credential_change_requests cr
		JOIN users u ON u.id = cr.user_id
		WHERE cr.user_id = $1
		ORDER BY cr.requested_at DESC
	`
	return r.queryList(ctx, q, query, userID)
}

func (r *credentialRequestRepositoryImpl) queryList(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]credential.ChangeRequest, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []credential.ChangeRequest
	for rows.Next() {
		cr, err := scanChangeRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, cr)
	}
	return requests, rows.Err()
}
