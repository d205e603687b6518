package checkin

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/arisara-dev/event-checkin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- Fake RegistrationStore ---

type fakeStore struct {
	regs    []*models.Registration
	nextID  uint
	creates int
}

func (f *fakeStore) FindByCode(ctx context.Context, code string) (*models.Registration, error) {
	for _, r := range f.regs {
		if r.Code == code {
			cp := *r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) FindByEventID(ctx context.Context, eventID uint) ([]models.Registration, error) {
	var out []models.Registration
	for _, r := range f.regs {
		if r.EventID == eventID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) Create(ctx context.Context, reg *models.Registration) error {
	f.nextID++
	reg.ID = f.nextID
	f.regs = append(f.regs, reg)
	f.creates++
	return nil
}

func (f *fakeStore) seed(eventID uint, name, email, code string) *models.Registration {
	reg := &models.Registration{
		EventID:      eventID,
		Name:         name,
		Email:        email,
		Participants: 1,
		Code:         code,
	}
	_ = f.Create(context.Background(), reg)
	return reg
}

// --- Literal lookup ---

func TestResolve_LiteralCode_Success(t *testing.T) {
	store := &fakeStore{}
	seeded := store.seed(7, "Ada Lovelace", "ada@example.com", "ABCDEF")

	r := NewResolver(store)
	reg, err := r.Resolve(context.Background(), "ABCDEF", 7)

	require.NoError(t, err)
	assert.Equal(t, seeded.ID, reg.ID)
	assert.Equal(t, uint(7), reg.EventID)
}

func TestResolve_LiteralCode_TrimsWhitespace(t *testing.T) {
	store := &fakeStore{}
	store.seed(7, "Ada Lovelace", "ada@example.com", "ABCDEF")

	r := NewResolver(store)
	reg, err := r.Resolve(context.Background(), "  ABCDEF \n", 7)

	require.NoError(t, err)
	assert.Equal(t, "ABCDEF", reg.Code)
}

func TestResolve_LiteralCode_WrongEvent(t *testing.T) {
	store := &fakeStore{}
	store.seed(7, "Ada Lovelace", "ada@example.com", "ABCDEF")

	r := NewResolver(store)
	reg, err := r.Resolve(context.Background(), "ABCDEF", 9)

	assert.Nil(t, reg)
	var mismatch *EventMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, uint(7), mismatch.ParsedEventID)
	assert.Equal(t, uint(9), mismatch.RequestEventID)
	assert.NotErrorIs(t, err, ErrNoMatch)
}

func TestResolve_UnknownCode_NoMatch(t *testing.T) {
	store := &fakeStore{}
	store.seed(7, "Ada Lovelace", "ada@example.com", "ABCDEF")

	r := NewResolver(store)
	reg, err := r.Resolve(context.Background(), "definitely-not-a-code", 7)

	assert.Nil(t, reg)
	assert.ErrorIs(t, err, ErrNoMatch)
}

// --- Legacy test codes ---

func TestResolve_LegacyCode_CreatesPlaceholder(t *testing.T) {
	store := &fakeStore{}
	r := NewResolver(store)

	reg, err := r.Resolve(context.Background(), "QR-TEST-001", 3)

	require.NoError(t, err)
	assert.Equal(t, "QR-TEST-001", reg.Code)
	assert.Equal(t, uint(3), reg.EventID)
	assert.Equal(t, "Test Attendee", reg.Name)
	assert.Equal(t, 1, reg.Participants)
	assert.Equal(t, 1, store.creates)
}

func TestResolve_LegacyCode_SecondScanFindsFirst(t *testing.T) {
	store := &fakeStore{}
	r := NewResolver(store)

	first, err := r.Resolve(context.Background(), "EVENT1-TICKET-42", 3)
	require.NoError(t, err)

	second, err := r.Resolve(context.Background(), "EVENT1-TICKET-42", 3)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, store.creates, "placeholder must be created at most once")
}

func TestResolve_LegacyCode_PrefersExistingRegistration(t *testing.T) {
	store := &fakeStore{}
	seeded := store.seed(3, "Real Person", "real@example.com", "EVENT1-REGISTRATION-7")
	r := NewResolver(store)

	reg, err := r.Resolve(context.Background(), "EVENT1-REGISTRATION-7", 3)

	require.NoError(t, err)
	assert.Equal(t, seeded.ID, reg.ID)
	assert.Equal(t, "Real Person", reg.Name)
	assert.Equal(t, 1, store.creates, "no placeholder beyond the seed")
}

// --- URL unwrapping ---

func TestResolve_URLWithDataParam(t *testing.T) {
	store := &fakeStore{}
	store.seed(7, "Ada Lovelace", "ada@example.com", "ABCDEF")
	r := NewResolver(store)

	reg, err := r.Resolve(context.Background(), "https://x.test/?data=ABCDEF", 7)

	require.NoError(t, err)
	assert.Equal(t, "ABCDEF", reg.Code)
}

func TestResolve_URLWithCodeParam(t *testing.T) {
	store := &fakeStore{}
	store.seed(7, "Ada Lovelace", "ada@example.com", "ABCDEF")
	r := NewResolver(store)

	reg, err := r.Resolve(context.Background(), "http://tickets.example.com/scan?code=ABCDEF&src=mail", 7)

	require.NoError(t, err)
	assert.Equal(t, "ABCDEF", reg.Code)
}

func TestResolve_URLWithoutKnownParam_NoMatch(t *testing.T) {
	store := &fakeStore{}
	r := NewResolver(store)

	_, err := r.Resolve(context.Background(), "https://x.test/tickets/123", 7)

	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestTryUnwrapURL_NonURLPassesThrough(t *testing.T) {
	assert.Equal(t, "ABCDEF", tryUnwrapURL("ABCDEF"))
	assert.Equal(t, "httpsomething", tryUnwrapURL("httpsomething"))
}

func TestTryUnwrapURL_UnparseableKeepsOriginal(t *testing.T) {
	raw := "https://x.test/%zz"
	assert.Equal(t, raw, tryUnwrapURL(raw))
}

// --- JSON unwrapping ---

func TestResolve_JSONPayload_EmailMatch(t *testing.T) {
	store := &fakeStore{}
	seeded := store.seed(7, "Ada Lovelace", "a@b.com", "ABCDEF")
	r := NewResolver(store)

	reg, err := r.Resolve(context.Background(), `{"eventId": 7, "email": "a@b.com"}`, 7)

	require.NoError(t, err)
	assert.Equal(t, seeded.ID, reg.ID)
}

func TestResolve_JSONPayload_WrongEvent(t *testing.T) {
	store := &fakeStore{}
	store.seed(7, "Ada Lovelace", "a@b.com", "ABCDEF")
	r := NewResolver(store)

	reg, err := r.Resolve(context.Background(), `{"eventId": 7, "email": "a@b.com"}`, 9)

	assert.Nil(t, reg)
	var mismatch *EventMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, uint(7), mismatch.ParsedEventID)
	assert.Equal(t, uint(9), mismatch.RequestEventID)
}

func TestResolve_JSONPayload_NameFallback(t *testing.T) {
	store := &fakeStore{}
	seeded := store.seed(7, "Grace Hopper", "grace@example.com", "XYZ123")
	r := NewResolver(store)

	reg, err := r.Resolve(context.Background(), `{"eventId": 7, "name": "Grace Hopper"}`, 7)

	require.NoError(t, err)
	assert.Equal(t, seeded.ID, reg.ID)
}

func TestResolve_JSONPayload_EmailBeatsName(t *testing.T) {
	store := &fakeStore{}
	store.seed(7, "Grace Hopper", "grace@example.com", "CODE-A")
	byEmail := store.seed(7, "Somebody Else", "target@example.com", "CODE-B")
	r := NewResolver(store)

	reg, err := r.Resolve(context.Background(), `{"eventId": 7, "email": "target@example.com", "name": "Grace Hopper"}`, 7)

	require.NoError(t, err)
	assert.Equal(t, byEmail.ID, reg.ID)
}

func TestResolve_JSONPayload_SharedEmailFirstMatchWins(t *testing.T) {
	store := &fakeStore{}
	first := store.seed(7, "Parent", "family@example.com", "CODE-1")
	store.seed(7, "Sibling", "family@example.com", "CODE-2")
	r := NewResolver(store)

	reg, err := r.Resolve(context.Background(), `{"eventId": 7, "email": "family@example.com"}`, 7)

	require.NoError(t, err)
	assert.Equal(t, first.ID, reg.ID)
}

func TestResolve_JSONPayload_NoIdentityMatch_NoMatch(t *testing.T) {
	store := &fakeStore{}
	store.seed(7, "Ada Lovelace", "ada@example.com", "ABCDEF")
	r := NewResolver(store)

	_, err := r.Resolve(context.Background(), `{"eventId": 7, "email": "stranger@example.com"}`, 7)

	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestResolve_MalformedJSON_FallsThroughToLiteral(t *testing.T) {
	store := &fakeStore{}
	store.seed(7, "Ada Lovelace", "ada@example.com", `{"not json`)
	r := NewResolver(store)

	// Not brace-delimited on both ends, so the JSON stage never fires and the
	// literal lookup matches the stored code verbatim.
	reg, err := r.Resolve(context.Background(), `{"not json`, 7)

	require.NoError(t, err)
	assert.Equal(t, uint(7), reg.EventID)
}

func TestResolve_InvalidJSONObject_FallsThrough(t *testing.T) {
	store := &fakeStore{}
	r := NewResolver(store)

	_, err := r.Resolve(context.Background(), `{"eventId": oops}`, 7)

	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestResolve_JSONArray_FallsThrough(t *testing.T) {
	store := &fakeStore{}
	r := NewResolver(store)

	_, err := r.Resolve(context.Background(), `[1, 2, 3]`, 7)

	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestResolve_JSONWithoutIdentityFields_FallsThrough(t *testing.T) {
	store := &fakeStore{}
	r := NewResolver(store)

	_, err := r.Resolve(context.Background(), `{"eventId": 7}`, 7)
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = r.Resolve(context.Background(), `{"email": "a@b.com"}`, 7)
	assert.ErrorIs(t, err, ErrNoMatch)
}

// --- URL + JSON combined ---

func TestResolve_URLWrappedJSONPayload(t *testing.T) {
	store := &fakeStore{}
	seeded := store.seed(7, "Ada Lovelace", "a@b.com", "ABCDEF")
	r := NewResolver(store)

	raw := fmt.Sprintf("https://x.test/?data=%s", `{"eventId": 7, "email": "a@b.com"}`)
	reg, err := r.Resolve(context.Background(), raw, 7)

	require.NoError(t, err)
	assert.Equal(t, seeded.ID, reg.ID)
}

// --- Store failure propagation ---

type failingStore struct {
	fakeStore
	findErr error
}

func (f *failingStore) FindByCode(ctx context.Context, code string) (*models.Registration, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.fakeStore.FindByCode(ctx, code)
}

func TestResolve_StoreErrorPropagates(t *testing.T) {
	store := &failingStore{findErr: errors.New("connection refused")}
	r := NewResolver(store)

	_, err := r.Resolve(context.Background(), "ABCDEF", 7)

	assert.EqualError(t, err, "connection refused")
	assert.NotErrorIs(t, err, ErrNoMatch)
}
