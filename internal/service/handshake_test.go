package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentaride-backend/internal/domain"
)

func handshakeQuote() *domain.RentalQuote {
	return &domain.RentalQuote{
		ID:             "q-1",
		VehicleID:      "veh-1",
		PassengerEmail: "rider@example.com",
	}
}

func TestHandshake_RequestAdvancesToContacted(t *testing.T) {
	contacts := new(MockContactRepo)
	notifier := new(MockNotifier)
	hs := NewHandshakeManager(contacts, notifier, 0)

	contacts.On("GetByQuote", mock.Anything, "q-1").Return(nil, nil).Once()
	contacts.On("Create", mock.Anything, mock.AnythingOfType("*domain.ContactRequest")).Return(nil)
	notifier.On("SendOwnerContactRequest", mock.Anything, "owner@example.com", "Avanza", "rider@example.com", "need it friday").Return(nil)
	contacts.On("UpdateState", mock.Anything, mock.Anything, domain.ContactContacted).Return(nil)

	c, err := hs.Request(context.Background(), handshakeQuote(), carTariff(), "need it friday")
	assert.NoError(t, err)
	assert.Equal(t, domain.ContactContacted, c.State)
	contacts.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestHandshake_RequestIdempotent(t *testing.T) {
	contacts := new(MockContactRepo)
	notifier := new(MockNotifier)
	hs := NewHandshakeManager(contacts, notifier, 0)

	existing := &domain.ContactRequest{ID: "c-1", QuoteID: "q-1", State: domain.ContactContacted}
	contacts.On("GetByQuote", mock.Anything, "q-1").Return(existing, nil)

	c, err := hs.Request(context.Background(), handshakeQuote(), carTariff(), "again")
	assert.NoError(t, err)
	assert.Equal(t, "c-1", c.ID)
	notifier.AssertNotCalled(t, "SendOwnerContactRequest")
}

func TestHandshake_NotifyFailureStaysRequested(t *testing.T) {
	contacts := new(MockContactRepo)
	notifier := new(MockNotifier)
	hs := NewHandshakeManager(contacts, notifier, 0)

	contacts.On("GetByQuote", mock.Anything, "q-1").Return(nil, nil)
	contacts.On("Create", mock.Anything, mock.AnythingOfType("*domain.ContactRequest")).Return(nil)
	notifier.On("SendOwnerContactRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))

	c, err := hs.Request(context.Background(), handshakeQuote(), carTariff(), "hello")
	assert.NoError(t, err)
	assert.Equal(t, domain.ContactRequested, c.State)
	contacts.AssertNotCalled(t, "UpdateState", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandshake_ConfirmMonotonic(t *testing.T) {
	contacts := new(MockContactRepo)
	hs := NewHandshakeManager(contacts, new(MockNotifier), 0)

	contacts.On("GetByQuote", mock.Anything, "q-1").Return(&domain.ContactRequest{
		ID: "c-1", QuoteID: "q-1", State: domain.ContactContacted,
	}, nil).Once()
	contacts.On("UpdateState", mock.Anything, "c-1", domain.ContactConfirmed).Return(nil).Once()

	assert.NoError(t, hs.Confirm(context.Background(), "q-1"))

	// A second confirm on an already-confirmed handshake writes nothing.
	contacts.On("GetByQuote", mock.Anything, "q-1").Return(&domain.ContactRequest{
		ID: "c-1", QuoteID: "q-1", State: domain.ContactConfirmed,
	}, nil)
	assert.NoError(t, hs.Confirm(context.Background(), "q-1"))
	contacts.AssertNumberOfCalls(t, "UpdateState", 1)
}

func TestHandshake_ConfirmWithoutRequest(t *testing.T) {
	contacts := new(MockContactRepo)
	hs := NewHandshakeManager(contacts, new(MockNotifier), 0)

	contacts.On("GetByQuote", mock.Anything, "q-9").Return(nil, nil)
	assert.Error(t, hs.Confirm(context.Background(), "q-9"))
}

func TestHandshake_SimulatedAutoConfirm(t *testing.T) {
	contacts := new(MockContactRepo)
	notifier := new(MockNotifier)
	hs := NewHandshakeManager(contacts, notifier, 20*time.Millisecond)

	contacts.On("GetByQuote", mock.Anything, "q-1").Return(nil, nil).Once()
	contacts.On("Create", mock.Anything, mock.AnythingOfType("*domain.ContactRequest")).Return(nil)
	notifier.On("SendOwnerContactRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	contacts.On("UpdateState", mock.Anything, mock.Anything, domain.ContactContacted).Return(nil)

	c, err := hs.Request(context.Background(), handshakeQuote(), carTariff(), "hi")
	assert.NoError(t, err)

	contacts.On("GetByQuote", mock.Anything, "q-1").Return(&domain.ContactRequest{
		ID: c.ID, QuoteID: "q-1", State: domain.ContactContacted,
	}, nil)
	contacts.On("UpdateState", mock.Anything, c.ID, domain.ContactConfirmed).Return(nil)

	assert.Eventually(t, func() bool {
		for _, call := range contacts.Calls {
			if call.Method == "UpdateState" && call.Arguments.Get(2) == domain.ContactConfirmed {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
}

func TestHandshake_AbandonStopsAutoConfirm(t *testing.T) {
	contacts := new(MockContactRepo)
	notifier := new(MockNotifier)
	hs := NewHandshakeManager(contacts, notifier, 30*time.Millisecond)

	contacts.On("GetByQuote", mock.Anything, "q-1").Return(nil, nil).Once()
	contacts.On("Create", mock.Anything, mock.AnythingOfType("*domain.ContactRequest")).Return(nil)
	notifier.On("SendOwnerContactRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	contacts.On("UpdateState", mock.Anything, mock.Anything, domain.ContactContacted).Return(nil)

	_, err := hs.Request(context.Background(), handshakeQuote(), carTariff(), "hi")
	assert.NoError(t, err)
	assert.NoError(t, hs.Abandon(context.Background(), "q-1"))

	time.Sleep(60 * time.Millisecond)
	for _, call := range contacts.Calls {
		if call.Method == "UpdateState" {
			assert.NotEqual(t, domain.ContactConfirmed, call.Arguments.Get(2))
		}
	}
}
