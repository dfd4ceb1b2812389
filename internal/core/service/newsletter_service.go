package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/unihub/portal/internal/core/domain"
	"github.com/unihub/portal/internal/core/ports"
)

type newsletterService struct {
	accounts ports.AccountRepository
	notifier ports.Notifier
	dedup    ports.DeliveryDedup
	log      zerolog.Logger
}

// NewNewsletterService returns a NewsletterService implementation.
func NewNewsletterService(
	accounts ports.AccountRepository,
	notifier ports.Notifier,
	dedup ports.DeliveryDedup,
	log zerolog.Logger,
) ports.NewsletterService {
	return &newsletterService{accounts: accounts, notifier: notifier, dedup: dedup, log: log}
}

func (s *newsletterService) Subscribe(ctx context.Context, email string) error {
	return s.setSubscription(ctx, email, true)
}

func (s *newsletterService) Unsubscribe(ctx context.Context, email string) error {
	return s.setSubscription(ctx, email, false)
}

func (s *newsletterService) setSubscription(ctx context.Context, email string, subscribed bool) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account.SubscribedToNewsletter == subscribed {
		return nil
	}
	account.SubscribedToNewsletter = subscribed
	if err := s.accounts.Update(ctx, account); err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	s.log.Info().Str("account_id", account.ID).Bool("subscribed", subscribed).Msg("newsletter subscription changed")
	return nil
}

// Send hands the newsletter to the notifier once per subscriber. Recipients
// that already received the same subject recently are skipped. A claim is
// released when the notifier refuses the message, so a resend reaches them.
func (s *newsletterService) Send(ctx context.Context, subject, message string) (int, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" || strings.TrimSpace(message) == "" {
		return 0, fmt.Errorf("%w: subject and message are required", domain.ErrInvalidInput)
	}

	subscribers, err := s.accounts.ListSubscribers(ctx)
	if err != nil {
		return 0, fmt.Errorf("list subscribers: %w", err)
	}

	sent := 0
	for _, sub := range subscribers {
		if sub.Email == "" {
			continue
		}
		fresh, err := s.dedup.Claim(ctx, sub.Email, subject)
		claimed := err == nil
		if err != nil {
			s.log.Warn().Err(err).Str("recipient", sub.Email).Msg("newsletter dedup check failed, sending anyway")
		} else if !fresh {
			s.log.Debug().Str("recipient", sub.Email).Str("subject", subject).Msg("newsletter already delivered, skipped")
			continue
		}

		if err := s.notifier.Notify(ctx, ports.Message{To: sub.Email, Subject: subject, Body: message}); err != nil {
			s.log.Error().Err(err).Str("recipient", sub.Email).Msg("newsletter not enqueued")
			if claimed {
				if err := s.dedup.Release(ctx, sub.Email, subject); err != nil {
					s.log.Warn().Err(err).Str("recipient", sub.Email).Msg("newsletter dedup release failed")
				}
			}
			continue
		}
		sent++
	}

	s.log.Info().Str("subject", subject).Int("subscribers", len(subscribers)).Int("sent", sent).Msg("newsletter dispatched")
	return sent, nil
}
