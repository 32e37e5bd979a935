package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/safaribooking/internal/domain"
	"github.com/Domenick1991/safaribooking/internal/kafka"
	"github.com/Domenick1991/safaribooking/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func newServices(t *testing.T, producer Producer) (Services, *store.Store) {
	t.Helper()
	st, err := store.New(store.WithPasswordCost(bcrypt.MinCost))
	require.NoError(t, err)
	return NewServices(st, producer, "booking_events"), st
}

func eventOfType(typ string) interface{} {
	return mock.MatchedBy(func(ev kafka.EntityEvent) bool { return ev.Type == typ })
}

func TestService_List_Search(t *testing.T) {
	svc, _ := newServices(t, nil)
	ctx := context.Background()

	all, err := svc.Agents.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byEmail, err := svc.Agents.List(ctx, "JANE@")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Jane Adventure", byEmail[0].Name)

	vehicles, err := svc.Vehicles.List(ctx, "land cruiser")
	require.NoError(t, err)
	assert.Len(t, vehicles, 2)

	guests, err := svc.Guests.List(ctx, "smith")
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "Michael", guests[0].FirstName)

	none, err := svc.Excursions.List(ctx, "kilimanjaro")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestService_Get_NotFound(t *testing.T) {
	svc, _ := newServices(t, nil)

	got, err := svc.Suppliers.Get(context.Background(), "missing")
	assert.Nil(t, got)
	assert.True(t, domain.IsNotFound(err))
	assert.Contains(t, err.Error(), "supplier missing")
}

func TestService_Create_PublishesEvent(t *testing.T) {
	producer := &MockProducer{}
	svc, st := newServices(t, producer)
	ctx := context.Background()

	producer.On("Publish", ctx, "booking_events", mock.Anything, eventOfType("agent_created")).Return(nil).Once()

	created, err := svc.Agents.Create(ctx, domain.Agent{
		Name:       "Amani Trails",
		Email:      "amani@trails.com",
		Commission: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, 3, st.Agents.Len())

	producer.AssertExpectations(t)
}

func TestService_Create_Validation(t *testing.T) {
	producer := &MockProducer{}
	svc, st := newServices(t, producer)

	_, err := svc.Excursions.Create(context.Background(), domain.Excursion{
		Name:        "Night drive",
		Duration:    decimal.NewFromInt(2),
		BasePrice:   decimal.NewFromInt(-5),
		MaxCapacity: 4,
	})
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 3, st.Excursions.Len())
	producer.AssertNotCalled(t, "Publish")
}

func TestService_Create_PublishFailureIsNotFatal(t *testing.T) {
	producer := &MockProducer{}
	svc, _ := newServices(t, producer)
	ctx := context.Background()

	producer.On("Publish", ctx, "booking_events", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	created, err := svc.Suppliers.Create(ctx, domain.Supplier{Name: "Mara Camps", Email: "ops@maracamps.com"})
	require.NoError(t, err)
	assert.Equal(t, "Mara Camps", created.Name)
}

func TestService_Update(t *testing.T) {
	producer := &MockProducer{}
	svc, _ := newServices(t, producer)
	ctx := context.Background()

	producer.On("Publish", ctx, "booking_events", "1", eventOfType("guest_updated")).Return(nil).Once()

	phone := "+255700000000"
	updated, err := svc.Guests.Update(ctx, "1", domain.GuestPatch{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "Sarah", updated.FirstName)
	assert.Equal(t, "1", updated.ID)

	producer.AssertExpectations(t)
}

func TestService_Update_Errors(t *testing.T) {
	svc, st := newServices(t, nil)
	ctx := context.Background()

	name := "Renamed"
	_, err := svc.Agents.Update(ctx, "99", domain.AgentPatch{Name: &name})
	assert.True(t, domain.IsNotFound(err))

	empty := ""
	_, err = svc.Agents.Update(ctx, "1", domain.AgentPatch{Name: &empty})
	assert.True(t, domain.IsValidation(err))

	status := domain.VehicleStatus("expired")
	_, err = svc.Vehicles.Update(ctx, "1", domain.VehiclePatch{Status: &status})
	assert.True(t, domain.IsValidation(err))

	v, ok := st.Vehicles.Get("1")
	require.True(t, ok)
	assert.Equal(t, domain.VehicleStatusAvailable, v.Status)
}

func TestService_Delete(t *testing.T) {
	producer := &MockProducer{}
	svc, st := newServices(t, producer)
	ctx := context.Background()

	producer.On("Publish", ctx, "booking_events", "2", eventOfType("vehicle_deleted")).Return(nil).Once()

	require.NoError(t, svc.Vehicles.Delete(ctx, "2"))
	assert.Equal(t, 2, st.Vehicles.Len())

	err := svc.Vehicles.Delete(ctx, "2")
	assert.True(t, domain.IsNotFound(err))

	producer.AssertExpectations(t)
}
