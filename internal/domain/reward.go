package domain

import (
	"context"

	"github.com/RKmodz24/studio/internal/domain/currency"
	"github.com/RKmodz24/studio/internal/domain/payout"
	"github.com/RKmodz24/studio/internal/domain/session"
	"github.com/RKmodz24/studio/internal/domain/taskregistry"
	"github.com/RKmodz24/studio/internal/model"
	"github.com/RKmodz24/studio/pkg/errorx"
	"github.com/RKmodz24/studio/pkg/xcontext"
)

const defaultSearchLimit = 20

type RewardDomain interface {
	GetState(context.Context, *model.GetStateRequest) (*model.GetStateResponse, error)
	CompleteTask(context.Context, *model.CompleteTaskRequest) (*model.CompleteTaskResponse, error)
	ClaimGameReward(context.Context, *model.ClaimGameRewardRequest) (*model.ClaimGameRewardResponse, error)
	SurpriseBonus(context.Context, *model.SurpriseBonusRequest) (*model.SurpriseBonusResponse, error)
	RequestCashout(context.Context, *model.RequestCashoutRequest) (*model.RequestCashoutResponse, error)
	SubmitCashout(context.Context, *model.SubmitCashoutRequest) (*model.SubmitCashoutResponse, error)
	CancelCashout(context.Context, *model.CancelCashoutRequest) (*model.CancelCashoutResponse, error)
	GetReferral(context.Context, *model.GetReferralRequest) (*model.GetReferralResponse, error)
	SearchTasks(context.Context, *model.SearchTasksRequest) (*model.SearchTasksResponse, error)
}

type rewardDomain struct {
	sessionManager *session.Manager
	registry       *taskregistry.Registry
}

func NewRewardDomain(sessionManager *session.Manager, registry *taskregistry.Registry) RewardDomain {
	return &rewardDomain{sessionManager: sessionManager, registry: registry}
}

func (d *rewardDomain) GetState(
	ctx context.Context, req *model.GetStateRequest,
) (*model.GetStateResponse, error) {
	s, err := getSession(ctx, d.sessionManager)
	if err != nil {
		return nil, err
	}

	state := convertState(s.Snapshot(), d.model(ctx),
		xcontext.Configs(ctx).Reward.ReferralBaseURL, xcontext.IsGuest(ctx))
	return (*model.GetStateResponse)(&state), nil
}

func (d *rewardDomain) CompleteTask(
	ctx context.Context, req *model.CompleteTaskRequest,
) (*model.CompleteTaskResponse, error) {
	if req.TaskID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty task id")
	}

	s, err := getSession(ctx, d.sessionManager)
	if err != nil {
		return nil, err
	}

	action, err := s.RequestCompletion(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}

	return &model.CompleteTaskResponse{
		Action:  string(action.Type),
		DelayMS: action.Delay.Milliseconds(),
		OfferID: action.OfferID,
		Link:    action.Link,
	}, nil
}

func (d *rewardDomain) ClaimGameReward(
	ctx context.Context, req *model.ClaimGameRewardRequest,
) (*model.ClaimGameRewardResponse, error) {
	s, err := getSession(ctx, d.sessionManager)
	if err != nil {
		return nil, err
	}

	credited, err := s.OnGameReward(ctx, req.Amount)
	if err != nil {
		return nil, err
	}

	return &model.ClaimGameRewardResponse{
		Credited:       credited,
		DiamondBalance: s.Snapshot().DiamondBalance,
	}, nil
}

func (d *rewardDomain) SurpriseBonus(
	ctx context.Context, req *model.SurpriseBonusRequest,
) (*model.SurpriseBonusResponse, error) {
	s, err := getSession(ctx, d.sessionManager)
	if err != nil {
		return nil, err
	}

	bonus, err := s.SurpriseBonus(ctx)
	if err != nil {
		return nil, err
	}

	return &model.SurpriseBonusResponse{
		ShowAd:  bonus.ShowAd,
		Reason:  bonus.Reason,
		Amount:  bonus.Amount,
		DelayMS: bonus.Delay.Milliseconds(),
	}, nil
}

func (d *rewardDomain) RequestCashout(
	ctx context.Context, req *model.RequestCashoutRequest,
) (*model.RequestCashoutResponse, error) {
	s, err := getSession(ctx, d.sessionManager)
	if err != nil {
		return nil, err
	}

	prefill, err := s.RequestCashout(ctx)
	if err != nil {
		return nil, err
	}

	resp := &model.RequestCashoutResponse{
		Amount:         s.Snapshot().CurrencyBalance.StringFixed(2),
		SignupRequired: xcontext.IsGuest(ctx),
	}

	if prefill != nil {
		resp.Prefill = payout.Encode(*prefill)
	}

	return resp, nil
}

func (d *rewardDomain) SubmitCashout(
	ctx context.Context, req *model.SubmitCashoutRequest,
) (*model.SubmitCashoutResponse, error) {
	details, err := payout.Decode(req.Details)
	if err != nil {
		return nil, err
	}

	if err := payout.Validate(details); err != nil {
		return nil, err
	}

	s, err := getSession(ctx, d.sessionManager)
	if err != nil {
		return nil, err
	}

	tx, err := s.SubmitCashout(ctx, details, req.Remember)
	if err != nil {
		return nil, err
	}

	return &model.SubmitCashoutResponse{
		TransactionID:     tx.ID,
		Amount:            tx.Amount.StringFixed(2),
		Diamonds:          tx.Diamonds,
		SettlementDelayMS: xcontext.Configs(ctx).Reward.SettlementDelay.Milliseconds(),
	}, nil
}

func (d *rewardDomain) CancelCashout(
	ctx context.Context, req *model.CancelCashoutRequest,
) (*model.CancelCashoutResponse, error) {
	s, err := getSession(ctx, d.sessionManager)
	if err != nil {
		return nil, err
	}

	if err := s.CancelCashout(ctx); err != nil {
		return nil, err
	}

	return &model.CancelCashoutResponse{}, nil
}

func (d *rewardDomain) GetReferral(
	ctx context.Context, req *model.GetReferralRequest,
) (*model.GetReferralResponse, error) {
	s, err := getSession(ctx, d.sessionManager)
	if err != nil {
		return nil, err
	}

	result := convertReferral(s.Snapshot().Referral, d.model(ctx), xcontext.Configs(ctx).Reward.ReferralBaseURL)
	return (*model.GetReferralResponse)(&result), nil
}

func (d *rewardDomain) SearchTasks(
	ctx context.Context, req *model.SearchTasksRequest,
) (*model.SearchTasksResponse, error) {
	if req.Limit <= 0 {
		req.Limit = defaultSearchLimit
	}

	if req.Limit > 50 {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	tasks, err := d.registry.Search(req.Q, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search tasks: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SearchTasksResponse{Tasks: convertTasks(tasks)}, nil
}

func (d *rewardDomain) model(ctx context.Context) currency.Model {
	return currency.NewModelFromConfig(xcontext.Configs(ctx).Reward)
}
