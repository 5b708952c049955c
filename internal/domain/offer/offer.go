package offer

import (
	"context"
	"strings"

	"github.com/RKmodz24/studio/internal/domain/search"
	"github.com/RKmodz24/studio/internal/entity"
	"github.com/RKmodz24/studio/pkg/xcontext"
)

const InstallJarAppID = "install-jar-app"

var offers = []entity.Offer{
	{
		ID:      InstallJarAppID,
		Title:   "Install Rapido & Ride",
		AppIcon: "/app-icon.png",
		Link:    "https://m.rapido.cc/Ewte/n538dyfh",
		Steps: []entity.OfferStep{
			{Name: "Install App", Reward: 200},
			{Name: "Register an account", Reward: 500},
			{Name: "Complete a ride", Reward: 1500},
			{Name: "Day 2 - Open the app", Reward: 716},
		},
		Disclaimer: "To earn rewards, please make sure that the user is new and has not turned on VPN.",
	},
}

// Catalog returns a copy of every known offer.
func Catalog() []entity.Offer {
	result := make([]entity.Offer, len(offers))
	for i, o := range offers {
		o.Steps = append([]entity.OfferStep{}, o.Steps...)
		result[i] = o
	}

	return result
}

func Get(id string) (entity.Offer, bool) {
	for _, o := range Catalog() {
		if o.ID == id {
			return o, true
		}
	}

	return entity.Offer{}, false
}

// Progress is the percentage of completed steps.
func Progress(o entity.Offer) int {
	if len(o.Steps) == 0 {
		return 0
	}

	completed := 0
	for _, s := range o.Steps {
		if s.Completed {
			completed++
		}
	}

	return completed * 100 / len(o.Steps)
}

// IndexAll adds every offer to the search index.
func IndexAll(ctx context.Context, index search.Index) error {
	for _, o := range offers {
		steps := make([]string, 0, len(o.Steps))
		for _, s := range o.Steps {
			steps = append(steps, s.Name)
		}

		err := index.Index(search.OfferDoc, o.ID, search.OfferData{
			Title: o.Title,
			Steps: strings.Join(steps, ". "),
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot index offer %s: %v", o.ID, err)
			return err
		}
	}

	return nil
}
