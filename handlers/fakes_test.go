package handlers

import (
	"context"

	settingsRepo "lumera/database/repository/servicesettings"
	"lumera/models"
	"lumera/services/finalize"
	"lumera/services/hapio"

	"github.com/hibiken/asynq"
)

// fakeHapio satisfies hapio.API with overridable behavior per method.
// Unset methods return empty pages or nil.
type fakeHapio struct {
	deleteService     func(ctx context.Context, serviceID string) error
	listServices      func(ctx context.Context, p hapio.ListParams) (*hapio.Page[models.HapioService], error)
	getService        func(ctx context.Context, serviceID string) (*models.HapioService, error)
	listBookableSlots func(ctx context.Context, serviceID string, q hapio.SlotQuery) (*hapio.Page[models.HapioBookableSlot], error)
	confirmBooking    func(ctx context.Context, bookingID string) (*models.HapioBooking, error)
}

func (f *fakeHapio) ListResources(ctx context.Context, p hapio.ListParams) (*hapio.Page[models.HapioResource], error) {
	return &hapio.Page[models.HapioResource]{}, nil
}

func (f *fakeHapio) CreateResource(ctx context.Context, in hapio.CreateResourceInput) (*models.HapioResource, error) {
	return &models.HapioResource{ID: "R1", Name: in.Name}, nil
}

func (f *fakeHapio) ListLocations(ctx context.Context, p hapio.ListParams) (*hapio.Page[models.HapioLocation], error) {
	return &hapio.Page[models.HapioLocation]{}, nil
}

func (f *fakeHapio) CreateLocation(ctx context.Context, in hapio.CreateLocationInput) (*models.HapioLocation, error) {
	return &models.HapioLocation{ID: "L1", Name: in.Name}, nil
}

func (f *fakeHapio) ListServices(ctx context.Context, p hapio.ListParams) (*hapio.Page[models.HapioService], error) {
	if f.listServices != nil {
		return f.listServices(ctx, p)
	}
	return &hapio.Page[models.HapioService]{}, nil
}

func (f *fakeHapio) GetService(ctx context.Context, serviceID string) (*models.HapioService, error) {
	if f.getService != nil {
		return f.getService(ctx, serviceID)
	}
	return &models.HapioService{ID: serviceID}, nil
}

func (f *fakeHapio) CreateService(ctx context.Context, in hapio.CreateServiceInput) (*models.HapioService, error) {
	return &models.HapioService{ID: "S1", Name: in.Name, Duration: in.Duration}, nil
}

func (f *fakeHapio) DeleteService(ctx context.Context, serviceID string) error {
	if f.deleteService != nil {
		return f.deleteService(ctx, serviceID)
	}
	return nil
}

func (f *fakeHapio) ListBookingGroups(ctx context.Context, p hapio.ListParams) (*hapio.Page[models.HapioBookingGroup], error) {
	return &hapio.Page[models.HapioBookingGroup]{}, nil
}

func (f *fakeHapio) CreateBookingGroup(ctx context.Context, in hapio.CreateBookingGroupInput) (*models.HapioBookingGroup, error) {
	return &models.HapioBookingGroup{ID: "G1"}, nil
}

func (f *fakeHapio) ListServiceResources(ctx context.Context, serviceID string, p hapio.ListParams) (*hapio.Page[models.HapioResource], error) {
	return &hapio.Page[models.HapioResource]{}, nil
}

func (f *fakeHapio) AssociateResource(ctx context.Context, serviceID, resourceID string) error {
	return nil
}

func (f *fakeHapio) ListBookableSlots(ctx context.Context, serviceID string, q hapio.SlotQuery) (*hapio.Page[models.HapioBookableSlot], error) {
	if f.listBookableSlots != nil {
		return f.listBookableSlots(ctx, serviceID, q)
	}
	return &hapio.Page[models.HapioBookableSlot]{}, nil
}

func (f *fakeHapio) GetBooking(ctx context.Context, bookingID string) (*models.HapioBooking, error) {
	return &models.HapioBooking{ID: bookingID}, nil
}

func (f *fakeHapio) ConfirmBooking(ctx context.Context, bookingID string) (*models.HapioBooking, error) {
	if f.confirmBooking != nil {
		return f.confirmBooking(ctx, bookingID)
	}
	return &models.HapioBooking{ID: bookingID, IsTemporary: false}, nil
}

func (f *fakeHapio) CancelBooking(ctx context.Context, bookingID string) error {
	return nil
}

// fakeSettings satisfies settingsRepo.SettingsRepository in memory.
type fakeSettings struct {
	orders  map[string]int
	deleted []string
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{orders: make(map[string]int)}
}

func (f *fakeSettings) Reorder(ctx context.Context, orders []settingsRepo.ServiceSetting) error {
	for _, order := range orders {
		f.orders[order.ServiceID] = order.DisplayOrder
	}
	return nil
}

func (f *fakeSettings) List(ctx context.Context) ([]settingsRepo.ServiceSetting, error) {
	return nil, nil
}

func (f *fakeSettings) Delete(ctx context.Context, serviceID string) error {
	f.deleted = append(f.deleted, serviceID)
	return nil
}

// fakeFinalizer records invocations and replays a scripted response.
type fakeFinalizer struct {
	calls  []string
	result *finalize.Result
	err    error
}

func (f *fakeFinalizer) Finalize(ctx context.Context, hapioBookingID, paymentIntentID string) (*finalize.Result, error) {
	f.calls = append(f.calls, hapioBookingID+"/"+paymentIntentID)
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &finalize.Result{
		Outcome:         finalize.OutcomeFinalized,
		HapioBookingID:  hapioBookingID,
		PaymentIntentID: paymentIntentID,
	}, nil
}

// fakeEnqueuer stands in for the asynq client.
type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}
