package domain

import (
	"context"

	"github.com/RKmodz24/studio/internal/domain/currency"
	"github.com/RKmodz24/studio/internal/domain/offer"
	"github.com/RKmodz24/studio/internal/domain/search"
	"github.com/RKmodz24/studio/internal/domain/session"
	"github.com/RKmodz24/studio/internal/model"
	"github.com/RKmodz24/studio/pkg/errorx"
	"github.com/RKmodz24/studio/pkg/xcontext"
)

type OfferDomain interface {
	GetOffer(context.Context, *model.GetOfferRequest) (*model.GetOfferResponse, error)
	ClaimOffer(context.Context, *model.ClaimOfferRequest) (*model.ClaimOfferResponse, error)
	SearchOffers(context.Context, *model.SearchOffersRequest) (*model.SearchOffersResponse, error)
}

type offerDomain struct {
	sessionManager *session.Manager
	index          search.Index
}

// NewOfferDomain indexes the offer catalog into index.
func NewOfferDomain(
	ctx context.Context, sessionManager *session.Manager, index search.Index,
) (OfferDomain, error) {
	if err := offer.IndexAll(ctx, index); err != nil {
		return nil, err
	}

	return &offerDomain{sessionManager: sessionManager, index: index}, nil
}

func (d *offerDomain) GetOffer(
	ctx context.Context, req *model.GetOfferRequest,
) (*model.GetOfferResponse, error) {
	o, ok := offer.Get(req.ID)
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Not found offer")
	}

	s, err := getSession(ctx, d.sessionManager)
	if err != nil {
		return nil, err
	}

	result := convertOffer(o, currency.NewModelFromConfig(xcontext.Configs(ctx).Reward),
		s.OfferStatus(o.ID), offer.Progress(o))
	return (*model.GetOfferResponse)(&result), nil
}

func (d *offerDomain) ClaimOffer(
	ctx context.Context, req *model.ClaimOfferRequest,
) (*model.ClaimOfferResponse, error) {
	s, err := getSession(ctx, d.sessionManager)
	if err != nil {
		return nil, err
	}

	link, err := s.ClaimOffer(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &model.ClaimOfferResponse{Link: link, Status: string(s.OfferStatus(req.ID))}, nil
}

func (d *offerDomain) SearchOffers(
	ctx context.Context, req *model.SearchOffersRequest,
) (*model.SearchOffersResponse, error) {
	if req.Limit <= 0 {
		req.Limit = defaultSearchLimit
	}

	if req.Limit > 50 {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	ids, err := d.index.Search(search.OfferDoc, req.Q, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search offers: %v", err)
		return nil, errorx.Unknown
	}

	s, err := getSession(ctx, d.sessionManager)
	if err != nil {
		return nil, err
	}

	m := currency.NewModelFromConfig(xcontext.Configs(ctx).Reward)
	offers := []model.Offer{}
	for _, id := range ids {
		if o, ok := offer.Get(id); ok {
			offers = append(offers, convertOffer(o, m, s.OfferStatus(id), offer.Progress(o)))
		}
	}

	return &model.SearchOffersResponse{Offers: offers}, nil
}
