package repository

import (
	"context"
	"errors"

	"github.com/snuhangout/api/internal/database"
	"github.com/snuhangout/api/internal/model"
)

// ConnectionRepository handles dating connection data access
type ConnectionRepository struct {
	db database.Database
}

// NewConnectionRepository creates a new connection repository
func NewConnectionRepository(db database.Database) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

// Create stores a pending request. A second request for the same
// (from, to) pair fails with database.ErrDuplicate.
func (r *ConnectionRepository) Create(ctx context.Context, conn *model.Connection) error {
	query := `
		CREATE dating_connection CONTENT {
			from_user: type::record($from_user_id),
			to_user: type::record($to_user_id),
			status: 'pending',
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"from_user_id": conn.FromUserID,
		"to_user_id":   conn.ToUserID,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	conn.ID = created.ID
	conn.Status = model.ConnectionPending
	conn.CreatedOn = created.CreatedOn
	conn.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a connection by ID, or nil when it does not exist
func (r *ConnectionRepository) GetByID(ctx context.Context, id string) (*model.Connection, error) {
	// Other tables' records are not connections
	if !model.IsConnectionRecordID(id) {
		return nil, nil
	}

	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseConnection(result)
}

// Exists reports whether fromUserID already sent a request to toUserID
func (r *ConnectionRepository) Exists(ctx context.Context, fromUserID, toUserID string) (bool, error) {
	query := `
		SELECT id FROM dating_connection
		WHERE from_user = type::record($from_user_id) AND to_user = type::record($to_user_id)
		LIMIT 1
	`
	vars := map[string]interface{}{
		"from_user_id": fromUserID,
		"to_user_id":   toUserID,
	}

	_, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListSentTargetIDs returns every user the given user has sent a request to, in any status
func (r *ConnectionRepository) ListSentTargetIDs(ctx context.Context, fromUserID string) ([]string, error) {
	query := `SELECT to_user FROM dating_connection WHERE from_user = type::record($from_user_id)`
	vars := map[string]interface{}{"from_user_id": fromUserID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0)
	for _, row := range resultRows(result) {
		if data, ok := row.(map[string]interface{}); ok {
			if id := convertSurrealID(data["to_user"]); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

// ListPendingForUser returns pending requests addressed to the user, newest first
func (r *ConnectionRepository) ListPendingForUser(ctx context.Context, toUserID string) ([]*model.Connection, error) {
	query := `
		SELECT * FROM dating_connection
		WHERE to_user = type::record($to_user_id) AND status = 'pending'
		ORDER BY created_on DESC
	`
	vars := map[string]interface{}{"to_user_id": toUserID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	connections := make([]*model.Connection, 0)
	for _, row := range resultRows(result) {
		conn, err := parseConnection(row)
		if err != nil {
			continue
		}
		connections = append(connections, conn)
	}
	return connections, nil
}

// UpdateStatus moves a pending request to accepted or rejected. Accepting
// also accepts the recipient's own pending request to the sender, if any,
// in the same transaction.
func (r *ConnectionRepository) UpdateStatus(ctx context.Context, conn *model.Connection, status model.ConnectionStatus) error {
	batch := database.NewAtomicBatch()
	batch.Add(`
		UPDATE type::record($id) SET status = $status, updated_on = time::now()
		WHERE status = 'pending'
	`, map[string]interface{}{
		"id":     conn.ID,
		"status": string(status),
	})

	if status == model.ConnectionAccepted {
		batch.Add(`
			UPDATE dating_connection SET status = 'accepted', updated_on = time::now()
			WHERE from_user = type::record($from_user_id)
				AND to_user = type::record($to_user_id)
				AND status = 'pending'
		`, map[string]interface{}{
			"from_user_id": conn.ToUserID,
			"to_user_id":   conn.FromUserID,
		})
	}

	if err := batch.Execute(ctx, r.db); err != nil {
		return err
	}

	conn.Status = status
	return nil
}

func parseConnection(result interface{}) (*model.Connection, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}

	conn := &model.Connection{
		ID:         convertSurrealID(data["id"]),
		FromUserID: convertSurrealID(data["from_user"]),
		ToUserID:   convertSurrealID(data["to_user"]),
		Status:     model.ConnectionStatus(getString(data, "status")),
	}
	if !conn.Status.IsValid() {
		return nil, errors.New("connection has unknown status")
	}
	if t := getTime(data, "created_on"); t != nil {
		conn.CreatedOn = *t
	}
	if t := getTime(data, "updated_on"); t != nil {
		conn.UpdatedOn = *t
	}

	return conn, nil
}
