package service

import (
	"context"
	"sync"

	"github.com/daryakhvt/salon_bot/internal/model"
	"github.com/google/uuid"
)

// In-memory фейки хранилищ для unit-тестов сервисов. Book реализован как
// честный compare-and-swap под мьютексом - ровно та гарантия, которую
// обещает интерфейс SlotStore.

type memSlotStore struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*model.Slot
}

func newMemSlotStore() *memSlotStore {
	return &memSlotStore{slots: make(map[uuid.UUID]*model.Slot)}
}

func (m *memSlotStore) put(slot *model.Slot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *slot
	m.slots[slot.ID] = &clone
}

func (m *memSlotStore) GetByID(_ context.Context, id uuid.UUID) (*model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	slot, ok := m.slots[id]
	if !ok {
		return nil, nil
	}
	clone := *slot
	return &clone, nil
}

func (m *memSlotStore) ListBySpecialist(_ context.Context, specialistID uuid.UUID) ([]*model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*model.Slot
	for _, slot := range m.slots {
		if slot.SpecialistID == specialistID {
			clone := *slot
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (m *memSlotStore) ListAvailable(_ context.Context, specialistID uuid.UUID) ([]*model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*model.Slot
	for _, slot := range m.slots {
		if slot.SpecialistID == specialistID && !slot.Booked {
			clone := *slot
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (m *memSlotStore) CreateBatch(_ context.Context, slots []*model.Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, slot := range slots {
		clone := *slot
		m.slots[slot.ID] = &clone
	}
	return nil
}

func (m *memSlotStore) Book(_ context.Context, slotID, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	slot, ok := m.slots[slotID]
	if !ok || slot.Booked {
		return ErrSlotUnavailable
	}
	slot.Booked = true
	slot.UserID = &userID
	return nil
}

func (m *memSlotStore) Release(_ context.Context, slotID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	slot, ok := m.slots[slotID]
	if !ok {
		return ErrSlotNotFound
	}
	slot.Booked = false
	slot.UserID = nil
	return nil
}

func (m *memSlotStore) Delete(_ context.Context, slotID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	slot, ok := m.slots[slotID]
	if !ok {
		return ErrSlotNotFound
	}
	if slot.Booked {
		return ErrSlotInUse
	}
	delete(m.slots, slotID)
	return nil
}

func (m *memSlotStore) DeleteBySpecialist(_ context.Context, specialistID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, slot := range m.slots {
		if slot.SpecialistID == specialistID {
			delete(m.slots, id)
			deleted++
		}
	}
	return deleted, nil
}

type memAppointmentStore struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*model.Appointment
	createErr    error // подставная ошибка для теста компенсации
}

func newMemAppointmentStore() *memAppointmentStore {
	return &memAppointmentStore{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (m *memAppointmentStore) Create(_ context.Context, appointment *model.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	clone := *appointment
	m.appointments[appointment.ID] = &clone
	return nil
}

func (m *memAppointmentStore) GetByID(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	appointment, ok := m.appointments[id]
	if !ok {
		return nil, nil
	}
	clone := *appointment
	return &clone, nil
}

func (m *memAppointmentStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.appointments[id]; !ok {
		return ErrAppointmentNotFound
	}
	delete(m.appointments, id)
	return nil
}

func (m *memAppointmentStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*model.Appointment
	for _, appointment := range m.appointments {
		if appointment.UserID == userID {
			clone := *appointment
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (m *memAppointmentStore) ListBySpecialist(_ context.Context, specialistID uuid.UUID) ([]*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*model.Appointment
	for _, appointment := range m.appointments {
		if appointment.SpecialistID == specialistID {
			clone := *appointment
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (m *memAppointmentStore) ListAll(_ context.Context) ([]*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*model.Appointment
	for _, appointment := range m.appointments {
		clone := *appointment
		result = append(result, &clone)
	}
	return result, nil
}

func (m *memAppointmentStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.appointments)
}

type memSpecialistStore struct {
	mu          sync.Mutex
	specialists map[uuid.UUID]*model.Specialist
}

func newMemSpecialistStore() *memSpecialistStore {
	return &memSpecialistStore{specialists: make(map[uuid.UUID]*model.Specialist)}
}

func (m *memSpecialistStore) put(specialist *model.Specialist) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *specialist
	m.specialists[specialist.ID] = &clone
}

func (m *memSpecialistStore) GetByID(_ context.Context, id uuid.UUID) (*model.Specialist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	specialist, ok := m.specialists[id]
	if !ok {
		return nil, nil
	}
	clone := *specialist
	return &clone, nil
}

func (m *memSpecialistStore) List(_ context.Context) ([]*model.Specialist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*model.Specialist
	for _, specialist := range m.specialists {
		clone := *specialist
		result = append(result, &clone)
	}
	return result, nil
}

func (m *memSpecialistStore) Create(_ context.Context, specialist *model.Specialist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *specialist
	m.specialists[specialist.ID] = &clone
	return nil
}

func (m *memSpecialistStore) Update(_ context.Context, specialist *model.Specialist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.specialists[specialist.ID]; !ok {
		return ErrSpecialistNotFound
	}
	clone := *specialist
	m.specialists[specialist.ID] = &clone
	return nil
}

func (m *memSpecialistStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.specialists[id]; !ok {
		return ErrSpecialistNotFound
	}
	delete(m.specialists, id)
	return nil
}
