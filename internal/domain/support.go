package domain

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/RKmodz24/studio/internal/client"
	"github.com/RKmodz24/studio/internal/common"
	"github.com/RKmodz24/studio/internal/domain/customercare"
	"github.com/RKmodz24/studio/internal/domain/payout"
	"github.com/RKmodz24/studio/internal/model"
	"github.com/RKmodz24/studio/pkg/enum"
	"github.com/RKmodz24/studio/pkg/errorx"
	"github.com/RKmodz24/studio/pkg/pubsub"
	"github.com/RKmodz24/studio/pkg/xcontext"
)

const maxContactMessageLength = 2000

type SupportDomain interface {
	AskSupport(context.Context, *model.AskSupportRequest) (*model.AskSupportResponse, error)
	ContactSupport(context.Context, *model.ContactSupportRequest) (*model.ContactSupportResponse, error)
}

type SupportContactedEvent struct {
	UserID  string    `json:"userId"`
	Email   string    `json:"email"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sentAt"`
}

type supportDomain struct {
	customerCare client.CustomerCareCaller
	publisher    pubsub.Publisher
}

func NewSupportDomain(customerCare client.CustomerCareCaller, publisher pubsub.Publisher) SupportDomain {
	return &supportDomain{customerCare: customerCare, publisher: publisher}
}

// AskSupport forwards the query with the latest messages of the conversation
// to the customer care agent.
func (d *supportDomain) AskSupport(
	ctx context.Context, req *model.AskSupportRequest,
) (*model.AskSupportResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, errorx.New(errorx.BadRequest, "Query must not be empty")
	}

	history := req.History
	if limit := xcontext.Configs(ctx).CustomerCare.MaxHistory; limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}

	messages := make([]customercare.Message, 0, len(history))
	for _, m := range history {
		role, err := enum.ToEnum[customercare.Role](m.Role)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid support role: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid role %s", m.Role)
		}

		messages = append(messages, customercare.Message{Role: role, Content: m.Content})
	}

	resp, err := d.customerCare.Answer(ctx, customercare.Request{Query: query, History: messages})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get customer care answer: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Support is not available now, please try again later")
	}

	return &model.AskSupportResponse{Response: resp.Response}, nil
}

// ContactSupport hands the contact form over to the support team through the
// event queue.
func (d *supportDomain) ContactSupport(
	ctx context.Context, req *model.ContactSupportRequest,
) (*model.ContactSupportResponse, error) {
	email := strings.TrimSpace(req.Email)
	if !payout.ValidEmail(email) {
		return nil, errorx.New(errorx.BadRequest, "Please enter a valid email")
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, errorx.New(errorx.BadRequest, "Message must not be empty")
	}

	if utf8.RuneCountInString(message) > maxContactMessageLength {
		return nil, errorx.New(errorx.BadRequest, "Message must not exceed %d characters", maxContactMessageLength)
	}

	userID := xcontext.RequestUserID(ctx)
	pack, err := pubsub.NewPack(userID, SupportContactedEvent{
		UserID:  userID,
		Email:   email,
		Message: message,
		SentAt:  time.Now(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create pack of contact message: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.publisher.Publish(ctx, common.SupportContactedTopic, pack); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish contact message of %s: %v", userID, err)
		return nil, errorx.New(errorx.Unavailable, "Cannot send the message now, please try again later")
	}

	return &model.ContactSupportResponse{}, nil
}
