package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"gochinamed/models"

	"github.com/stretchr/testify/mock"
)

// memoryOrders is an in-memory OrderRepository.
type memoryOrders struct {
	mu     sync.Mutex
	orders []models.Order
	err    error
}

func (m *memoryOrders) Create(ctx context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	order.UpdatedAt = order.CreatedAt
	m.orders = append(m.orders, *order)
	return nil
}

func (m *memoryOrders) GetByID(ctx context.Context, id string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			o := m.orders[i]
			return &o, nil
		}
	}
	return nil, nil
}

func (m *memoryOrders) FindRecentByAmount(ctx context.Context, userID string, amountKey float64, since time.Time) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var found *models.Order
	for i := range m.orders {
		o := m.orders[i]
		if o.UserID != userID || o.AmountKey != amountKey || o.CreatedAt.Before(since) {
			continue
		}
		if found == nil || o.CreatedAt.After(found.CreatedAt) {
			found = &o
		}
	}
	return found, nil
}

func (m *memoryOrders) GetByIdempotencyKey(ctx context.Context, userID, key string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.orders {
		if m.orders[i].UserID == userID && m.orders[i].IdempotencyKey == key {
			o := m.orders[i]
			return &o, nil
		}
	}
	return nil, nil
}

func (m *memoryOrders) ConfirmDoctorAppointment(ctx context.Context, id, ref string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id && m.orders[i].DoctorAppointmentStatus == models.AppointmentStatusPending {
			m.orders[i].DoctorAppointmentStatus = models.AppointmentStatusConfirmed
			m.orders[i].DoctorAppointmentRef = ref
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryOrders) ConfirmServiceReservation(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id && m.orders[i].ServiceReservationStatus == models.ReservationStatusPending {
			m.orders[i].ServiceReservationStatus = models.ReservationStatusConfirmed
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryOrders) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

// memoryItinerary is an in-memory ItineraryRepository.
type memoryItinerary struct {
	mu      sync.Mutex
	entries []models.ItineraryEntry
	err     error
}

func (m *memoryItinerary) CreateMany(ctx context.Context, entries []models.ItineraryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entries...)
	return nil
}

func (m *memoryItinerary) ListByOrder(ctx context.Context, orderID string) ([]models.ItineraryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ItineraryEntry
	for _, e := range m.entries {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (m *memoryItinerary) ConfirmEntry(ctx context.Context, id, providerRef string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		if m.entries[i].ID == id && m.entries[i].Status == models.EntryStatusPending {
			m.entries[i].Status = models.EntryStatusConfirmed
			m.entries[i].ProviderRef = providerRef
			return true, nil
		}
	}
	return false, nil
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) DispatchDoctorConfirmation(ctx context.Context, payload models.ConfirmationPayload) error {
	return m.Called(ctx, payload).Error(0)
}

func (m *MockDispatcher) DispatchItineraryConfirmation(ctx context.Context, payload models.ConfirmationPayload) error {
	return m.Called(ctx, payload).Error(0)
}

type MockProfiles struct {
	mock.Mock
}

func (m *MockProfiles) UpdatePreferences(ctx context.Context, userID string, intent models.BookingIntent) error {
	return m.Called(ctx, userID, intent).Error(0)
}

func (m *MockProfiles) SaveDocument(ctx context.Context, userID string, doc models.DocumentDetails) (*models.DocumentSnapshot, error) {
	args := m.Called(ctx, userID, doc)
	snap, _ := args.Get(0).(*models.DocumentSnapshot)
	return snap, args.Error(1)
}
