package service

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/rally-stats/internal/analytics"
	"github.com/mauv0809/rally-stats/internal/club"
	"github.com/mauv0809/rally-stats/internal/metrics"
	"github.com/mauv0809/rally-stats/internal/page"
	"github.com/mauv0809/rally-stats/internal/query"
)

type players struct {
	*core
}

var _ PlayerService = (*players)(nil)

func (c *core) playerView(p club.Player) (PlayerView, error) {
	dob, err := analytics.ParseDate(p.DateOfBirth)
	if err != nil {
		return PlayerView{}, fmt.Errorf("player %s has malformed date of birth: %w", p.ID, err)
	}
	age, group := c.classifier.Classify(dob)
	return PlayerView{
		ID:            p.ID,
		Name:          p.Name,
		DateOfBirth:   p.DateOfBirth,
		Gender:        p.Gender,
		PreferredHand: p.PreferredHand,
		Age:           age,
		AgeGroup:      group,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

func (s *players) FindAll(ctx context.Context, filter PlayerFilter, req page.Request) (page.Envelope[PlayerView], error) {
	plan, order, err := s.playerPlan(filter)
	if err != nil {
		return page.Envelope[PlayerView]{}, err
	}
	if req, err = s.pageRequest(req); err != nil {
		return page.Envelope[PlayerView]{}, err
	}
	return listing[club.Player, PlayerView]{
		entity: metrics.EntityPlayer,
		count:  s.store.CountPlayers,
		list:   s.store.ListPlayers,
		derive: s.playerView,
	}.run(ctx, s.core, plan, order, req)
}

// FindByID returns the player with every result, most recent first.
func (s *players) FindByID(ctx context.Context, id string) (*PlayerDetail, error) {
	p, err := s.store.GetPlayer(ctx, id)
	if err != nil {
		return nil, lookup(err, "player", id)
	}
	view, err := s.playerView(*p)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.ListResults(ctx, club.ListOptions{
		Where: query.Where{query.Equal{Column: club.ResultColumnPlayerID, Value: id}},
		Order: query.Order{Column: club.ResultColumnCreatedAt, Direction: query.Desc, Tiebreak: club.ResultColumnID},
	})
	if err != nil {
		return nil, fmt.Errorf("list results for player %s: %w", id, err)
	}
	return &PlayerDetail{PlayerView: view, Results: s.resultViews(rows)}, nil
}

func (s *players) Create(ctx context.Context, in CreatePlayer) (*PlayerView, error) {
	now := s.now()
	p := club.Player{
		ID:          s.newID(),
		DateOfBirth: in.DateOfBirth,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	var v validator
	p.Name = v.name("name", in.Name)
	v.birthDate("dateOfBirth", in.DateOfBirth, s.classifier.Now())
	p.Gender = v.gender("gender", in.Gender)
	p.PreferredHand = v.hand("preferredHand", in.PreferredHand)
	if err := v.err(); err != nil {
		return nil, err
	}

	if err := s.store.InsertPlayer(ctx, p); err != nil {
		return nil, err
	}
	s.metrics.IncMutation(metrics.EntityPlayer, metrics.OpCreate)
	log.Info("Created player", "playerID", p.ID)

	view, err := s.playerView(p)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *players) Update(ctx context.Context, id string, in UpdatePlayer) (*PlayerView, error) {
	existing, err := s.store.GetPlayer(ctx, id)
	if err != nil {
		return nil, lookup(err, "player", id)
	}
	p := *existing

	var v validator
	if in.Name != nil {
		p.Name = v.name("name", *in.Name)
	}
	if in.DateOfBirth != nil {
		p.DateOfBirth = *in.DateOfBirth
		v.birthDate("dateOfBirth", p.DateOfBirth, s.classifier.Now())
	}
	if in.Gender != nil {
		p.Gender = v.gender("gender", *in.Gender)
	}
	if in.PreferredHand != nil {
		p.PreferredHand = v.hand("preferredHand", *in.PreferredHand)
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	p.UpdatedAt = s.now()
	if err := s.store.UpdatePlayer(ctx, p); err != nil {
		return nil, lookup(err, "player", id)
	}
	s.metrics.IncMutation(metrics.EntityPlayer, metrics.OpUpdate)

	view, err := s.playerView(p)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// Delete removes the player and, through the foreign key, all of their results.
func (s *players) Delete(ctx context.Context, id string) error {
	ok, err := s.store.PlayerExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("player", id)
	}
	if err := s.store.DeletePlayer(ctx, id); err != nil {
		return lookup(err, "player", id)
	}
	s.metrics.IncMutation(metrics.EntityPlayer, metrics.OpDelete)
	log.Info("Deleted player", "playerID", id)
	return nil
}
