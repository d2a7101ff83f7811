package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainhub/internal/enrollment/models"
	"trainhub/internal/platform/config"
	id "trainhub/pkg/domain"
)

const (
	coachID     = "6f1c2d4e-8a9b-4c3d-9e0f-1a2b3c4d5e6f"
	consultant  = "0d7e3c52-1b4a-4f6e-8c9d-2e3f4a5b6c7d"
	sessionID   = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
	formationID = "3c4d5e6f-7a8b-4c9d-8e0f-1a2b3c4d5e6f"
)

type recordingSeeder struct {
	users    []*models.User
	sessions []*models.Session
}

func (r *recordingSeeder) UpsertUser(_ context.Context, u *models.User) error {
	r.users = append(r.users, u)
	return nil
}

func (r *recordingSeeder) UpsertSession(_ context.Context, s *models.Session) error {
	r.sessions = append(r.sessions, s)
	return nil
}

func TestApplySeed(t *testing.T) {
	start := time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC)
	cfg := config.SeedConfig{
		Users: []config.SeedUser{
			{ID: coachID, Roles: []string{"coach"}},
			{ID: consultant, Roles: []string{"consultant", "astronaut"}, CoachID: coachID},
		},
		Sessions: []config.SeedSession{
			{ID: sessionID, FormationID: formationID, Capacity: 12, StartDate: start},
		},
	}

	dst := &recordingSeeder{}
	require.NoError(t, applySeed(context.Background(), dst, cfg))

	require.Len(t, dst.users, 2)
	assert.Equal(t, []id.Role{id.RoleConsultant}, dst.users[1].Roles, "unknown roles are dropped")
	require.NotNil(t, dst.users[1].CoachID)
	assert.Equal(t, coachID, dst.users[1].CoachID.String())
	assert.Nil(t, dst.users[0].CoachID)

	require.Len(t, dst.sessions, 1)
	assert.Equal(t, 12, dst.sessions[0].Capacity)
	assert.Equal(t, formationID, dst.sessions[0].FormationID.String())
	assert.True(t, start.Equal(dst.sessions[0].StartDate))
}

func TestApplySeedRejectsBadInput(t *testing.T) {
	cases := map[string]config.SeedConfig{
		"user id":      {Users: []config.SeedUser{{ID: "nope"}}},
		"coach id":     {Users: []config.SeedUser{{ID: consultant, CoachID: "nope"}}},
		"session id":   {Sessions: []config.SeedSession{{ID: "", FormationID: formationID}}},
		"formation id": {Sessions: []config.SeedSession{{ID: sessionID, FormationID: "nope"}}},
		"capacity":     {Sessions: []config.SeedSession{{ID: sessionID, FormationID: formationID, Capacity: -1}}},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			dst := &recordingSeeder{}
			assert.Error(t, applySeed(context.Background(), dst, cfg))
			assert.Empty(t, dst.users)
			assert.Empty(t, dst.sessions)
		})
	}
}
