package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"rentaride-backend/internal/domain"
	"rentaride-backend/internal/logger"
	"rentaride-backend/internal/repository"
)

// HandshakeManager runs the owner-contact flow for vehicles that ship
// without an assignable driver. State transitions are monotonic per quote:
// Requested -> Contacted -> Confirmed, never backwards.
type HandshakeManager struct {
	contacts repository.ContactRepository
	notifier Notifier

	// simulatedDelay > 0 auto-confirms after the delay, standing in for
	// the owner's reply channel in dev environments. Zero disables it;
	// production confirms via the explicit endpoint.
	simulatedDelay time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer // quoteID -> pending auto-confirm
}

func NewHandshakeManager(contacts repository.ContactRepository, notifier Notifier, simulatedDelay time.Duration) *HandshakeManager {
	return &HandshakeManager{
		contacts:       contacts,
		notifier:       notifier,
		simulatedDelay: simulatedDelay,
		timers:         make(map[string]*time.Timer),
	}
}

// State returns the quote's current handshake state, ContactNone when no
// request was ever made.
func (m *HandshakeManager) State(ctx context.Context, quoteID string) (domain.OwnerContactState, error) {
	c, err := m.contacts.GetByQuote(ctx, quoteID)
	if err != nil {
		return domain.ContactNone, err
	}
	if c == nil {
		return domain.ContactNone, nil
	}
	return c.State, nil
}

// Request opens the handshake: records it, mails the owner, and advances
// to Contacted once the mail went out. Re-requesting an open handshake is
// a no-op returning the existing record.
func (m *HandshakeManager) Request(ctx context.Context, quote *domain.RentalQuote, tariff *domain.VehicleTariff, message string) (*domain.ContactRequest, error) {
	existing, err := m.contacts.GetByQuote(ctx, quote.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	c := &domain.ContactRequest{
		ID:             uuid.NewString(),
		QuoteID:        quote.ID,
		VehicleID:      tariff.ID,
		OwnerEmail:     tariff.OwnerEmail,
		PassengerEmail: quote.PassengerEmail,
		Message:        message,
		State:          domain.ContactRequested,
	}
	if err := m.contacts.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to record contact request: %w", err)
	}

	if err := m.notifier.SendOwnerContactRequest(ctx, tariff.OwnerEmail, tariff.Name, quote.PassengerEmail, message); err != nil {
		// The request stays in Requested; the owner was not reached yet.
		logger.Error("Failed to notify owner of contact request", "quote_id", quote.ID, "owner", tariff.OwnerEmail, "error", err)
		return c, nil
	}

	if err := m.advance(ctx, c, domain.ContactContacted); err != nil {
		return nil, err
	}

	if m.simulatedDelay > 0 {
		m.scheduleAutoConfirm(c.QuoteID)
	}

	logger.Info("Owner contacted", "quote_id", quote.ID, "owner", tariff.OwnerEmail)
	return c, nil
}

// Confirm marks the owner's agreement. Idempotent once confirmed; an error
// only when no handshake exists for the quote.
func (m *HandshakeManager) Confirm(ctx context.Context, quoteID string) error {
	c, err := m.contacts.GetByQuote(ctx, quoteID)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("no contact request for quote %s", quoteID)
	}
	if c.State == domain.ContactConfirmed {
		return nil
	}
	if err := m.advance(ctx, c, domain.ContactConfirmed); err != nil {
		return err
	}
	m.stopTimer(quoteID)
	logger.Info("Owner contact confirmed", "quote_id", quoteID)
	return nil
}

// Abandon cancels any pending auto-confirm for the quote. The persisted
// record is left as-is; a discarded quote simply never reads it again.
func (m *HandshakeManager) Abandon(ctx context.Context, quoteID string) error {
	m.stopTimer(quoteID)
	return nil
}

// advance moves the handshake forward; transitions that do not strictly
// increase rank are dropped.
func (m *HandshakeManager) advance(ctx context.Context, c *domain.ContactRequest, to domain.OwnerContactState) error {
	if to.Rank() <= c.State.Rank() {
		return nil
	}
	if err := m.contacts.UpdateState(ctx, c.ID, to); err != nil {
		return fmt.Errorf("failed to advance contact %s to %s: %w", c.ID, to, err)
	}
	c.State = to
	return nil
}

func (m *HandshakeManager) scheduleAutoConfirm(quoteID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.timers[quoteID]; exists {
		return
	}
	m.timers[quoteID] = time.AfterFunc(m.simulatedDelay, func() {
		m.mu.Lock()
		delete(m.timers, quoteID)
		m.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.Confirm(ctx, quoteID); err != nil {
			logger.Warn("Simulated owner confirmation failed", "quote_id", quoteID, "error", err)
		}
	})
}

func (m *HandshakeManager) stopTimer(quoteID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.timers[quoteID]; ok {
		t.Stop()
		delete(m.timers, quoteID)
	}
}
