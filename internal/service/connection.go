package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/snuhangout/api/internal/compat"
	"github.com/snuhangout/api/internal/database"
	"github.com/snuhangout/api/internal/metrics"
	"github.com/snuhangout/api/internal/model"
)

// ConnectionRepository defines the interface for connection storage
type ConnectionRepository interface {
	Create(ctx context.Context, conn *model.Connection) error
	GetByID(ctx context.Context, id string) (*model.Connection, error)
	Exists(ctx context.Context, fromUserID, toUserID string) (bool, error)
	ListSentTargetIDs(ctx context.Context, fromUserID string) ([]string, error)
	ListPendingForUser(ctx context.Context, toUserID string) ([]*model.Connection, error)
	UpdateStatus(ctx context.Context, conn *model.Connection, status model.ConnectionStatus) error
}

// ConnectionService handles connection requests between dating profiles
type ConnectionService struct {
	connections ConnectionRepository
	profiles    DatingProfileRepository
	engine      *compat.Engine
	cache       MatchCache
}

// ConnectionServiceConfig holds configuration for the connection service
type ConnectionServiceConfig struct {
	ConnectionRepo ConnectionRepository
	ProfileRepo    DatingProfileRepository
	Engine         *compat.Engine
	Cache          MatchCache // Optional
}

// NewConnectionService creates a new connection service
func NewConnectionService(cfg ConnectionServiceConfig) *ConnectionService {
	return &ConnectionService{
		connections: cfg.ConnectionRepo,
		profiles:    cfg.ProfileRepo,
		engine:      cfg.Engine,
		cache:       cfg.Cache,
	}
}

// SendRequest creates a pending request from the caller to req.ToUserID
func (s *ConnectionService) SendRequest(ctx context.Context, fromUserID string, req *model.CreateConnectionRequest) (*model.Connection, error) {
	if req.ToUserID == fromUserID {
		return nil, ErrCannotConnectSelf
	}

	sender, err := s.profiles.GetByUserID(ctx, fromUserID)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, ErrProfileNotFound
	}

	target, err := s.profiles.GetByUserID(ctx, req.ToUserID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrTargetProfileNotFound
	}

	exists, err := s.connections.Exists(ctx, fromUserID, req.ToUserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConnectionExists
	}

	conn := &model.Connection{
		FromUserID: fromUserID,
		ToUserID:   req.ToUserID,
	}
	if err := s.connections.Create(ctx, conn); err != nil {
		// Lost a race with a concurrent request for the same pair
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrConnectionExists
		}
		return nil, err
	}

	// The target must drop off the sender's match list
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, fromUserID); err != nil {
			slog.Warn("failed to invalidate cached matches",
				slog.String("user_id", fromUserID),
				slog.String("error", err.Error()),
			)
		}
	}

	return conn, nil
}

// ListRequests returns pending requests addressed to the caller, each with
// the sender's card and the simple answer-agreement percentage
func (s *ConnectionService) ListRequests(ctx context.Context, userID string) ([]model.ConnectionRequestView, error) {
	pending, err := s.connections.ListPendingForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return []model.ConnectionRequestView{}, nil
	}

	me, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	senderIDs := make([]string, len(pending))
	for i, c := range pending {
		senderIDs[i] = c.FromUserID
	}
	senders, err := s.profiles.GetByUserIDs(ctx, senderIDs)
	if err != nil {
		return nil, err
	}

	views := make([]model.ConnectionRequestView, 0, len(pending))
	for _, c := range pending {
		view := model.ConnectionRequestView{
			ID:         c.ID,
			FromUserID: c.FromUserID,
			Interests:  []string{},
			CreatedOn:  c.CreatedOn,
		}
		if sender, ok := senders[c.FromUserID]; ok {
			view.Bio = sender.Bio
			if sender.Interests != nil {
				view.Interests = sender.Interests
			}
			if me != nil {
				score := s.engine.CalculateSimple(me.Answers, sender.Answers)
				metrics.CompatibilityCalculations.WithLabelValues(metrics.ScorerSimple).Inc()
				view.MatchPercent = model.ToPercent(score)
			}
		}
		views = append(views, view)
	}

	return views, nil
}

// Respond accepts or rejects a pending request addressed to the caller
func (s *ConnectionService) Respond(ctx context.Context, userID, connectionID string, status model.ConnectionStatus) (*model.Connection, error) {
	if status != model.ConnectionAccepted && status != model.ConnectionRejected {
		return nil, ErrInvalidConnectionState
	}

	conn, err := s.connections.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if conn == nil {
		return nil, ErrConnectionNotFound
	}
	if conn.ToUserID != userID {
		return nil, ErrNotConnectionRecipient
	}
	if conn.Status != model.ConnectionPending {
		return nil, ErrConnectionNotPending
	}

	if err := s.connections.UpdateStatus(ctx, conn, status); err != nil {
		return nil, err
	}
	return conn, nil
}
