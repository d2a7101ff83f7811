package main

import (
	"context"
	"fmt"

	"trainhub/internal/enrollment/models"
	"trainhub/internal/platform/config"
	id "trainhub/pkg/domain"
)

// seeder provisions reference data owned by other systems.
type seeder interface {
	UpsertUser(ctx context.Context, u *models.User) error
	UpsertSession(ctx context.Context, s *models.Session) error
}

func parseSeed(cfg config.SeedConfig) ([]*models.User, []*models.Session, error) {
	users := make([]*models.User, 0, len(cfg.Users))
	for i, su := range cfg.Users {
		userID, err := id.ParseUserID(su.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("seed.users[%d].id: %w", i, err)
		}
		u := &models.User{ID: userID, Roles: id.ParseRoles(su.Roles)}
		if su.CoachID != "" {
			coachID, err := id.ParseUserID(su.CoachID)
			if err != nil {
				return nil, nil, fmt.Errorf("seed.users[%d].coach_id: %w", i, err)
			}
			u.CoachID = &coachID
		}
		users = append(users, u)
	}

	sessions := make([]*models.Session, 0, len(cfg.Sessions))
	for i, ss := range cfg.Sessions {
		sessionID, err := id.ParseSessionID(ss.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("seed.sessions[%d].id: %w", i, err)
		}
		formationID, err := id.ParseFormationID(ss.FormationID)
		if err != nil {
			return nil, nil, fmt.Errorf("seed.sessions[%d].formation_id: %w", i, err)
		}
		if ss.Capacity < 0 {
			return nil, nil, fmt.Errorf("seed.sessions[%d].capacity must be >= 0", i)
		}
		sessions = append(sessions, &models.Session{
			ID:          sessionID,
			FormationID: formationID,
			Capacity:    ss.Capacity,
			StartDate:   ss.StartDate.UTC(),
		})
	}
	return users, sessions, nil
}

func applySeed(ctx context.Context, dst seeder, cfg config.SeedConfig) error {
	users, sessions, err := parseSeed(cfg)
	if err != nil {
		return err
	}
	for _, u := range users {
		if err := dst.UpsertUser(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}
	for _, s := range sessions {
		if err := dst.UpsertSession(ctx, s); err != nil {
			return fmt.Errorf("seed session %s: %w", s.ID, err)
		}
	}
	return nil
}

// memorySeeder adapts the in-memory engine's provisioning calls.
type memorySeeder struct {
	putUser    func(*models.User)
	putSession func(*models.Session)
}

func (m memorySeeder) UpsertUser(_ context.Context, u *models.User) error {
	m.putUser(u)
	return nil
}

func (m memorySeeder) UpsertSession(_ context.Context, s *models.Session) error {
	m.putSession(s)
	return nil
}
