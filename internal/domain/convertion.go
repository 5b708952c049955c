package domain

import (
	"github.com/RKmodz24/studio/internal/domain/currency"
	"github.com/RKmodz24/studio/internal/domain/referral"
	"github.com/RKmodz24/studio/internal/domain/session"
	"github.com/RKmodz24/studio/internal/entity"
	"github.com/RKmodz24/studio/internal/model"
)

func convertTask(task entity.Task) model.Task {
	return model.Task{
		ID:          task.ID,
		Title:       task.Title,
		Reward:      task.Reward,
		Type:        string(task.Type),
		Status:      string(task.Status),
		OfferID:     task.OfferID,
		Description: task.Description,
		Icon:        task.Icon,
		Link:        task.Link,
	}
}

func convertTasks(tasks []entity.Task) []model.Task {
	result := []model.Task{}
	for _, t := range tasks {
		result = append(result, convertTask(t))
	}
	return result
}

func convertReferral(state entity.ReferralState, m currency.Model, baseURL string) model.Referral {
	return model.Referral{
		Code:               state.Code,
		Link:               referral.Link(baseURL, state.Code),
		Count:              state.Count,
		CommissionEarned:   state.CommissionEarned,
		CommissionCurrency: m.ToCurrency(state.CommissionEarned).StringFixed(2),
	}
}

func convertState(s session.Snapshot, m currency.Model, baseURL string, isGuest bool) model.State {
	var pending *model.PendingCashout
	if s.PendingCashout != nil {
		pending = &model.PendingCashout{
			TransactionID: s.PendingCashout.ID,
			Amount:        s.PendingCashout.Amount.StringFixed(2),
			Diamonds:      s.PendingCashout.Diamonds,
		}
	}

	return model.State{
		DiamondBalance:   s.DiamondBalance,
		CurrencyBalance:  s.CurrencyBalance.StringFixed(2),
		LifetimeEarnings: s.LifetimeEarnings.StringFixed(2),
		MinimumPayout:    m.MinimumPayout.StringFixed(2),
		PayoutProgress:   s.PayoutProgress.StringFixed(0),
		Eligible:         s.Eligible,
		Revision:         s.Revision,
		Tasks:            convertTasks(s.Tasks),
		Referral:         convertReferral(s.Referral, m, baseURL),
		CashoutState:     string(s.CashoutState),
		PendingCashout:   pending,
		AdsWatched:       s.AdsWatched,
		GameRewarded:     s.GameRewarded,
		IsGuest:          isGuest,
	}
}

func convertOffer(o entity.Offer, m currency.Model, status entity.OfferStatus, progress int) model.Offer {
	steps := []model.OfferStep{}
	for _, s := range o.Steps {
		steps = append(steps, model.OfferStep{Name: s.Name, Reward: s.Reward, Completed: s.Completed})
	}

	return model.Offer{
		ID:            o.ID,
		Title:         o.Title,
		AppIcon:       o.AppIcon,
		Link:          o.Link,
		Disclaimer:    o.Disclaimer,
		Steps:         steps,
		TotalDiamonds: o.TotalDiamonds(),
		TotalCurrency: m.ToCurrency(o.TotalDiamonds()).StringFixed(2),
		Progress:      progress,
		Status:        string(status),
	}
}
