package tournamentdb

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	tournamentdomain "github.com/copperhead-cup/cup-bot/app/modules/tournament/domain"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
)

// Tournament is the bun model for one tournament row.
type Tournament struct {
	bun.BaseModel `bun:"table:tournaments,alias:t"`

	ID          uuid.UUID       `bun:"id,pk,type:uuid"`
	Name        string          `bun:"name,notnull"`
	PointsValue float64         `bun:"points_value,notnull,default:1"`
	Roster      json.RawMessage `bun:"roster,type:jsonb"`
	Captains    json.RawMessage `bun:"captains,type:jsonb"`
	RoundIDs    json.RawMessage `bun:"round_ids,type:jsonb"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Round is the bun model for one round row.
type Round struct {
	bun.BaseModel `bun:"table:rounds,alias:r"`

	ID           uuid.UUID       `bun:"id,pk,type:uuid"`
	TournamentID uuid.UUID       `bun:"tournament_id,notnull,type:uuid"`
	Name         string          `bun:"name"`
	Format       string          `bun:"format,notnull"`
	Course       json.RawMessage `bun:"course,type:jsonb"`
	Skins        json.RawMessage `bun:"skins,type:jsonb"`
	MatchIDs     json.RawMessage `bun:"match_ids,type:jsonb"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func (m *Tournament) toDomain() *tournamentdomain.Tournament {
	out := &tournamentdomain.Tournament{
		ID:          sharedtypes.TournamentID(m.ID),
		Name:        m.Name,
		PointsValue: m.PointsValue,
	}
	_ = json.Unmarshal(m.Roster, &out.Roster)
	_ = json.Unmarshal(m.Captains, &out.Captains)
	_ = json.Unmarshal(m.RoundIDs, &out.RoundIDs)
	return out
}

func tournamentFromDomain(t *tournamentdomain.Tournament) (*Tournament, error) {
	roster, err := json.Marshal(t.Roster)
	if err != nil {
		return nil, err
	}
	captains, err := json.Marshal(t.Captains)
	if err != nil {
		return nil, err
	}
	roundIDs, err := json.Marshal(t.RoundIDs)
	if err != nil {
		return nil, err
	}
	return &Tournament{
		ID:          uuid.UUID(t.ID),
		Name:        t.Name,
		PointsValue: t.PointsValue,
		Roster:      roster,
		Captains:    captains,
		RoundIDs:    roundIDs,
	}, nil
}

func (m *Round) toDomain() *tournamentdomain.Round {
	out := &tournamentdomain.Round{
		ID:           sharedtypes.RoundID(m.ID),
		TournamentID: sharedtypes.TournamentID(m.TournamentID),
		Name:         m.Name,
		Format:       sharedtypes.Format(m.Format),
	}
	_ = json.Unmarshal(m.Course, &out.Course)
	_ = json.Unmarshal(m.Skins, &out.Skins)
	_ = json.Unmarshal(m.MatchIDs, &out.MatchIDs)
	return out
}

func roundFromDomain(r *tournamentdomain.Round) (*Round, error) {
	course, err := json.Marshal(r.Course)
	if err != nil {
		return nil, err
	}
	skins, err := json.Marshal(r.Skins)
	if err != nil {
		return nil, err
	}
	matchIDs, err := json.Marshal(r.MatchIDs)
	if err != nil {
		return nil, err
	}
	return &Round{
		ID:           uuid.UUID(r.ID),
		TournamentID: uuid.UUID(r.TournamentID),
		Name:         r.Name,
		Format:       string(r.Format),
		Course:       course,
		Skins:        skins,
		MatchIDs:     matchIDs,
	}, nil
}
