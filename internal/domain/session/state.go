package session

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/RKmodz24/studio/internal/common"
	"github.com/RKmodz24/studio/internal/entity"
	"github.com/RKmodz24/studio/internal/repository"
	"github.com/RKmodz24/studio/pkg/xcontext"
	"github.com/shopspring/decimal"
)

// store reads and writes the state entries of one user. A missing or
// unreadable entry leaves the default value in place.
type store struct {
	repo   repository.KeyValueRepository
	prefix string
	userID string
}

func (s store) key(name string) string {
	return common.StateKey(s.prefix, s.userID, name)
}

func (s store) get(ctx context.Context, name string) (string, bool, error) {
	value, found, err := s.repo.Get(ctx, s.key(name))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get state %s of %s: %v", name, s.userID, err)
		return "", false, err
	}

	return value, found, nil
}

func (s store) getUint(ctx context.Context, name string, v *uint64) error {
	value, found, err := s.get(ctx, name)
	if err != nil || !found {
		return err
	}

	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Ignore invalid state %s of %s: %v", name, s.userID, err)
		return nil
	}

	*v = n
	return nil
}

func (s store) getDecimal(ctx context.Context, name string, v *decimal.Decimal) error {
	value, found, err := s.get(ctx, name)
	if err != nil || !found {
		return err
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Ignore invalid state %s of %s: %v", name, s.userID, err)
		return nil
	}

	*v = d
	return nil
}

func (s store) getJSON(ctx context.Context, name string, v any) error {
	value, found, err := s.get(ctx, name)
	if err != nil || !found {
		return err
	}

	if err := json.Unmarshal([]byte(value), v); err != nil {
		xcontext.Logger(ctx).Warnf("Ignore invalid state %s of %s: %v", name, s.userID, err)
	}

	return nil
}

func (s store) set(ctx context.Context, name, value string) {
	if err := s.repo.Set(ctx, s.key(name), value); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save state %s of %s: %v", name, s.userID, err)
	}
}

func (s store) setUint(ctx context.Context, name string, v uint64) {
	s.set(ctx, name, strconv.FormatUint(v, 10))
}

func (s store) setJSON(ctx context.Context, name string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal state %s of %s: %v", name, s.userID, err)
		return
	}

	s.set(ctx, name, string(b))
}

func (s store) delete(ctx context.Context, name string) {
	if err := s.repo.Delete(ctx, s.key(name)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete state %s of %s: %v", name, s.userID, err)
	}
}

// persisted is everything a session loads at start.
type persisted struct {
	ledger       entity.Ledger
	tasks        []entity.Task
	referral     entity.ReferralState
	payout       *entity.PayoutDetails
	adsWatched   uint64
	adsShown     uint64
	gameRewarded uint64
	offerStatus  map[string]entity.OfferStatus
	retired      []string
}

func (s store) load(ctx context.Context) (persisted, error) {
	p := persisted{offerStatus: map[string]entity.OfferStatus{}}

	if err := s.getUint(ctx, common.StateDiamonds, &p.ledger.DiamondBalance); err != nil {
		return p, err
	}

	if err := s.getDecimal(ctx, common.StateLifetimeEarnings, &p.ledger.LifetimeEarnings); err != nil {
		return p, err
	}

	if err := s.getJSON(ctx, common.StateTasks, &p.tasks); err != nil {
		return p, err
	}

	value, found, err := s.get(ctx, common.StateReferralCode)
	if err != nil {
		return p, err
	}
	if found {
		p.referral.Code = value
	}

	if err := s.getUint(ctx, common.StateReferralCount, &p.referral.Count); err != nil {
		return p, err
	}

	if err := s.getUint(ctx, common.StateCommissionEarned, &p.referral.CommissionEarned); err != nil {
		return p, err
	}

	var payout entity.PayoutDetails
	value, found, err = s.get(ctx, common.StatePayoutDetails)
	if err != nil {
		return p, err
	}
	if found {
		if err := json.Unmarshal([]byte(value), &payout); err == nil {
			p.payout = &payout
		}
	}

	if err := s.getUint(ctx, common.StateAdsWatched, &p.adsWatched); err != nil {
		return p, err
	}

	if err := s.getUint(ctx, common.StateAdsShown, &p.adsShown); err != nil {
		return p, err
	}

	if err := s.getUint(ctx, common.StateGameRewarded, &p.gameRewarded); err != nil {
		return p, err
	}

	if err := s.getJSON(ctx, common.StateOfferStatus, &p.offerStatus); err != nil {
		return p, err
	}

	if err := s.getJSON(ctx, common.StateRetiredTasks, &p.retired); err != nil {
		return p, err
	}

	if p.offerStatus == nil {
		p.offerStatus = map[string]entity.OfferStatus{}
	}

	return p, nil
}
