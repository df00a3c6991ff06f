package finalize

import (
	"context"
	"errors"
	"testing"

	"lumera/models"
	"lumera/utils"

	"go.uber.org/zap"
)

type fakeStore struct {
	bookings    map[string]*models.Booking // keyed by hapio booking id
	markPaidErr error
	markCalls   int
}

func (s *fakeStore) GetByHapioID(ctx context.Context, hapioBookingID string) (*models.Booking, error) {
	booking, ok := s.bookings[hapioBookingID]
	if !ok {
		return nil, &utils.NotFoundError{Resource: "booking", ID: hapioBookingID}
	}
	copied := *booking
	return &copied, nil
}

func (s *fakeStore) MarkPaid(ctx context.Context, bookingID, paymentIntentID string) (bool, error) {
	s.markCalls++
	if s.markPaidErr != nil {
		return false, s.markPaidErr
	}
	for _, booking := range s.bookings {
		if booking.ID == bookingID {
			if booking.PaymentStatus == models.BookingPaymentPaid {
				return false, nil
			}
			booking.PaymentStatus = models.BookingPaymentPaid
			return true, nil
		}
	}
	return false, &utils.NotFoundError{Resource: "booking", ID: bookingID}
}

type fakeConfirmer struct {
	calls int
	// errs[i] is returned on call i (zero-based); calls past the end succeed.
	errs []error
}

func (f *fakeConfirmer) ConfirmBooking(ctx context.Context, bookingID string) (*models.HapioBooking, error) {
	idx := f.calls
	f.calls++
	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	return &models.HapioBooking{ID: bookingID, IsTemporary: false}, nil
}

func pendingStore() *fakeStore {
	return &fakeStore{bookings: map[string]*models.Booking{
		"H1": {ID: "B1", HapioBookingID: "H1", PaymentStatus: models.BookingPaymentPending},
	}}
}

func TestFinalize_Idempotent(t *testing.T) {
	store := pendingStore()
	confirmer := &fakeConfirmer{}
	fin := NewFinalizer(store, confirmer, zap.NewNop())

	first, err := fin.Finalize(context.Background(), "H1", "PI1")
	if err != nil {
		t.Fatalf("first finalize failed: %v", err)
	}
	if first.Outcome != OutcomeFinalized {
		t.Fatalf("first outcome = %s, want %s", first.Outcome, OutcomeFinalized)
	}

	second, err := fin.Finalize(context.Background(), "H1", "PI1")
	if err != nil {
		t.Fatalf("second finalize failed: %v", err)
	}
	if second.Outcome != OutcomeAlreadyFinalized {
		t.Fatalf("second outcome = %s, want %s", second.Outcome, OutcomeAlreadyFinalized)
	}

	if confirmer.calls != 1 {
		t.Fatalf("confirm called %d times, want 1", confirmer.calls)
	}
	if store.bookings["H1"].PaymentStatus != models.BookingPaymentPaid {
		t.Fatalf("booking status = %s, want paid", store.bookings["H1"].PaymentStatus)
	}
}

func TestFinalize_ConflictIsSuccess(t *testing.T) {
	store := pendingStore()
	confirmer := &fakeConfirmer{errs: []error{&utils.ConflictError{Msg: "booking is not temporary"}}}
	fin := NewFinalizer(store, confirmer, zap.NewNop())

	result, err := fin.Finalize(context.Background(), "H1", "PI1")
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if result.Outcome != OutcomeFinalized {
		t.Fatalf("outcome = %s, want %s", result.Outcome, OutcomeFinalized)
	}
	if store.bookings["H1"].PaymentStatus != models.BookingPaymentPaid {
		t.Fatal("booking should be paid after conflict-as-success path")
	}
}

func TestFinalize_UpstreamFailureLeavesStateUntouched(t *testing.T) {
	store := pendingStore()
	confirmer := &fakeConfirmer{errs: []error{&utils.UpstreamError{Service: "hapio", Status: 503, Body: "down"}}}
	fin := NewFinalizer(store, confirmer, zap.NewNop())

	_, err := fin.Finalize(context.Background(), "H1", "PI1")
	if err == nil {
		t.Fatal("expected error on upstream outage")
	}
	if !utils.IsRetryable(err) {
		t.Fatalf("expected retryable error, got %v", err)
	}
	if store.bookings["H1"].PaymentStatus != models.BookingPaymentPending {
		t.Fatal("booking must stay pending when confirmation fails")
	}
	if store.markCalls != 0 {
		t.Fatal("store must not be written when confirmation fails")
	}
}

func TestFinalize_CrashBetweenConfirmAndPersistConverges(t *testing.T) {
	store := pendingStore()
	confirmer := &fakeConfirmer{
		// First run confirms the hold; the store write then "crashes".
		// On the retry the hold is already confirmed upstream.
		errs: []error{nil, &utils.ConflictError{Msg: "booking is not temporary"}},
	}
	fin := NewFinalizer(store, confirmer, zap.NewNop())

	store.markPaidErr = errors.New("store went away")
	if _, err := fin.Finalize(context.Background(), "H1", "PI1"); err == nil {
		t.Fatal("expected persistence failure")
	}
	if store.bookings["H1"].PaymentStatus != models.BookingPaymentPending {
		t.Fatal("crash must not leave a half-paid booking")
	}

	store.markPaidErr = nil
	result, err := fin.Finalize(context.Background(), "H1", "PI1")
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if result.Outcome != OutcomeFinalized {
		t.Fatalf("retry outcome = %s, want %s", result.Outcome, OutcomeFinalized)
	}
	if store.bookings["H1"].PaymentStatus != models.BookingPaymentPaid {
		t.Fatal("retry must converge to paid")
	}
}

func TestFinalize_ConcurrentLoserReportsAlreadyFinalized(t *testing.T) {
	// The guard passes on a stale read but another invocation wins inside
	// the transaction: MarkPaid reports no update.
	store := pendingStore()
	store.bookings["H1"].PaymentStatus = models.BookingPaymentPaid
	confirmer := &fakeConfirmer{}
	fin := NewFinalizer(&staleStore{inner: store}, confirmer, zap.NewNop())

	result, err := fin.Finalize(context.Background(), "H1", "PI1")
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if result.Outcome != OutcomeAlreadyFinalized {
		t.Fatalf("outcome = %s, want %s", result.Outcome, OutcomeAlreadyFinalized)
	}
}

// staleStore reports the booking as pending while the underlying store has
// already transitioned it, mimicking a concurrent finalization landing
// between the guard read and the transactional write.
type staleStore struct {
	inner *fakeStore
}

func (s *staleStore) GetByHapioID(ctx context.Context, hapioBookingID string) (*models.Booking, error) {
	booking, err := s.inner.GetByHapioID(ctx, hapioBookingID)
	if err != nil {
		return nil, err
	}
	booking.PaymentStatus = models.BookingPaymentPending
	return booking, nil
}

func (s *staleStore) MarkPaid(ctx context.Context, bookingID, paymentIntentID string) (bool, error) {
	return s.inner.MarkPaid(ctx, bookingID, paymentIntentID)
}

func TestFinalize_ValidatesInput(t *testing.T) {
	fin := NewFinalizer(pendingStore(), &fakeConfirmer{}, zap.NewNop())

	for _, pair := range [][2]string{{"", "PI1"}, {"H1", ""}} {
		_, err := fin.Finalize(context.Background(), pair[0], pair[1])
		var ve *utils.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("Finalize(%q, %q): expected ValidationError, got %v", pair[0], pair[1], err)
		}
	}
}

func TestFinalize_UnknownBooking(t *testing.T) {
	fin := NewFinalizer(pendingStore(), &fakeConfirmer{}, zap.NewNop())

	_, err := fin.Finalize(context.Background(), "H404", "PI1")
	var nf *utils.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
