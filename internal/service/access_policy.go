package service

import (
	"context"
	"time"

	"studyhub_backend/internal/config"
	"studyhub_backend/internal/model"
)

type SubscriptionStatus string

const (
	StatusAnonymous  SubscriptionStatus = "anonymous"
	StatusFullAccess SubscriptionStatus = "full_access"
	StatusSubscribed SubscriptionStatus = "subscribed"
	StatusNone       SubscriptionStatus = "none"
)

// ContentRef identifies a piece of gated content.
type ContentRef struct {
	Type model.ContentType
	ID   uint
}

type AccessDecision struct {
	CanViewFull bool               `json:"canViewFullContent"`
	Status      SubscriptionStatus `json:"subscriptionStatus"`
}

type AccessPolicy struct {
	Subscriptions SubscriptionStore
	Cfg           config.AccessConfig
	Now           func() time.Time
}

func NewAccessPolicy(subs SubscriptionStore, cfg config.AccessConfig) *AccessPolicy {
	return &AccessPolicy{Subscriptions: subs, Cfg: cfg, Now: time.Now}
}

// Evaluate decides whether user may see the full body of item. Full access
// is checked before item-specific subscriptions.
func (p *AccessPolicy) Evaluate(ctx context.Context, user *model.User, item ContentRef) (AccessDecision, error) {
	if user == nil {
		return AccessDecision{CanViewFull: false, Status: StatusAnonymous}, nil
	}

	now := p.Now()
	subs, err := p.Subscriptions.FindActiveByUser(ctx, user.ID, now)
	if err != nil {
		return AccessDecision{}, err
	}

	for i := range subs {
		if subs[i].ActiveAt(now) && subs[i].HasFullAccess {
			return AccessDecision{CanViewFull: true, Status: StatusFullAccess}, nil
		}
	}
	for i := range subs {
		if subs[i].ActiveAt(now) && subs[i].Covers(item.Type, item.ID) {
			return AccessDecision{CanViewFull: true, Status: StatusSubscribed}, nil
		}
	}
	return AccessDecision{CanViewFull: false, Status: StatusNone}, nil
}

func (p *AccessPolicy) CanViewFull(ctx context.Context, user *model.User, item ContentRef) (bool, error) {
	d, err := p.Evaluate(ctx, user, item)
	if err != nil {
		return false, err
	}
	return d.CanViewFull, nil
}

// Preview returns stored as-is when present, otherwise a plain-text excerpt of
// the HTML body limited to the configured length.
func (p *AccessPolicy) Preview(stored, html string) string {
	if stored != "" {
		return stored
	}
	return HTMLExcerpt(html, p.Cfg.PreviewChars)
}
