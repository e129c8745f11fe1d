package checkout

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maeva109/FTHEARTIZONE/internal/cart"
	"github.com/Maeva109/FTHEARTIZONE/internal/checkout/repository"
	"github.com/Maeva109/FTHEARTIZONE/internal/domain"
)

type mockRepository struct {
	m        sync.Mutex
	sessions map[string]domain.CheckoutSession
}

func newMockRepository() *mockRepository {
	return &mockRepository{sessions: make(map[string]domain.CheckoutSession)}
}

func (m *mockRepository) Create(_ context.Context, session *domain.CheckoutSession) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.sessions[session.ID] = *session
	return nil
}

func (m *mockRepository) Get(_ context.Context, id string) (*domain.CheckoutSession, error) {
	m.m.Lock()
	defer m.m.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return &session, nil
}

func (m *mockRepository) Update(_ context.Context, session *domain.CheckoutSession) error {
	m.m.Lock()
	defer m.m.Unlock()
	if _, ok := m.sessions[session.ID]; !ok {
		return repository.ErrSessionNotFound
	}
	m.sessions[session.ID] = *session
	return nil
}

func (m *mockRepository) Close() error { return nil }

type mockCartProvider struct {
	result cart.FetchResult
}

func (m *mockCartProvider) Fetch(context.Context, domain.Session) cart.FetchResult {
	return m.result
}

func loadedCart() *mockCartProvider {
	items := []domain.CartItem{
		{ID: 1, Product: domain.Product{ID: 10, Price: 1000}, Quantity: 2},
		{ID: 2, Product: domain.Product{ID: 11, Price: 500}, Quantity: 1},
	}
	return &mockCartProvider{result: cart.FetchResult{
		Status: cart.FetchLoaded,
		Items:  items,
		Total:  domain.TotalAmount(items),
	}}
}

func webSession() domain.Session {
	return domain.Session{ID: "sess-1", Cookie: "cookie", Authenticated: true}
}

func shipping() domain.ShippingInfo {
	return domain.ShippingInfo{Name: "Awa Mbarga", Address: "Rue 112", City: "Douala", Phone: "699000000"}
}

func startSession(t *testing.T, sut *ServiceImpl) *domain.CheckoutSession {
	t.Helper()
	session, err := sut.Start(context.Background(), webSession())
	require.NoError(t, err)
	return session
}

func TestStart_BeginsAtContactStep(t *testing.T) {
	sut := NewService(newMockRepository(), loadedCart())

	session := startSession(t, sut)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "sess-1", session.UserID)
	assert.Equal(t, domain.StepContact, session.Step)
}

func TestSubmitContact_AdvancesToShipping(t *testing.T) {
	sut := NewService(newMockRepository(), loadedCart())
	session := startSession(t, sut)

	updated, err := sut.SubmitContact(context.Background(), webSession(), session.ID, " awa@example.com ")

	require.NoError(t, err)
	assert.Equal(t, "awa@example.com", updated.Email)
	assert.Equal(t, domain.StepShipping, updated.Step)
}

func TestSubmitContact_InvalidEmailLeavesStepUnchanged(t *testing.T) {
	sut := NewService(newMockRepository(), loadedCart())
	session := startSession(t, sut)

	for _, email := range []string{"", "   ", "pas-un-email"} {
		updated, err := sut.SubmitContact(context.Background(), webSession(), session.ID, email)
		assert.ErrorIs(t, err, ErrInvalidEmail)
		assert.Equal(t, "Veuillez entrer une adresse e-mail valide.", err.Error())
		assert.Equal(t, domain.StepContact, updated.Step)
	}
}

func TestSubmitContact_UnknownSession(t *testing.T) {
	sut := NewService(newMockRepository(), loadedCart())

	_, err := sut.SubmitContact(context.Background(), webSession(), "missing", "awa@example.com")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSubmitShipping_PricesCartAndRoutesToPaymentPage(t *testing.T) {
	sut := NewService(newMockRepository(), loadedCart())
	session := startSession(t, sut)
	_, err := sut.SubmitContact(context.Background(), webSession(), session.ID, "awa@example.com")
	require.NoError(t, err)

	updated, route, err := sut.SubmitShipping(context.Background(), webSession(), session.ID, shipping(), "Orange Money")

	require.NoError(t, err)
	assert.Equal(t, domain.StepPayment, updated.Step)
	assert.Equal(t, domain.PaymentOrangeMoney, updated.PaymentMethod)
	// subtotal 2500 + delivery 2500
	assert.Equal(t, float64(5000), updated.Total)
	assert.Equal(t, "/payment/orange-money/"+session.ID, route)
}

func TestSubmitShipping_MissingFieldRejected(t *testing.T) {
	sut := NewService(newMockRepository(), loadedCart())
	session := startSession(t, sut)
	_, err := sut.SubmitContact(context.Background(), webSession(), session.ID, "awa@example.com")
	require.NoError(t, err)

	info := shipping()
	info.City = "  "
	updated, _, err := sut.SubmitShipping(context.Background(), webSession(), session.ID, info, "Orange Money")

	assert.ErrorIs(t, err, ErrMissingShippingField)
	assert.Equal(t, "Tous les champs de livraison sont obligatoires.", err.Error())
	assert.Equal(t, domain.StepShipping, updated.Step)
}

func TestSubmitShipping_NoPaymentMethodAnywhere(t *testing.T) {
	sut := NewService(newMockRepository(), loadedCart())
	session := startSession(t, sut)
	_, err := sut.SubmitContact(context.Background(), webSession(), session.ID, "awa@example.com")
	require.NoError(t, err)

	_, _, err = sut.SubmitShipping(context.Background(), webSession(), session.ID, shipping(), "")
	assert.ErrorIs(t, err, ErrNoPaymentMethod)

	_, _, err = sut.SubmitShipping(context.Background(), webSession(), session.ID, shipping(), "bitcoin")
	assert.ErrorIs(t, err, ErrNoPaymentMethod)
}

func TestSubmitShipping_EmptyCartRejected(t *testing.T) {
	emptyCart := &mockCartProvider{result: cart.FetchResult{Status: cart.FetchEmpty}}
	sut := NewService(newMockRepository(), emptyCart)
	session := startSession(t, sut)
	_, err := sut.SubmitContact(context.Background(), webSession(), session.ID, "awa@example.com")
	require.NoError(t, err)

	updated, _, err := sut.SubmitShipping(context.Background(), webSession(), session.ID, shipping(), "Mobile Money")

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, domain.StepShipping, updated.Step)
}

func TestSubmitShipping_SkippingContactStepRejected(t *testing.T) {
	sut := NewService(newMockRepository(), loadedCart())
	session := startSession(t, sut)

	_, _, err := sut.SubmitShipping(context.Background(), webSession(), session.ID, shipping(), "Orange Money")

	assert.ErrorIs(t, err, IllegalTransitionError)
}

func TestSessionOnlyVisibleToItsOwner(t *testing.T) {
	sut := NewService(newMockRepository(), loadedCart())
	session := startSession(t, sut)

	stranger := domain.Session{ID: "sess-2", Cookie: "other", Authenticated: true}

	_, err := sut.Get(context.Background(), stranger, session.ID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)

	_, err = sut.SubmitContact(context.Background(), stranger, session.ID, "intrus@example.com")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)

	_, _, err = sut.SubmitShipping(context.Background(), stranger, session.ID, shipping(), "Orange Money")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)

	// the owner still sees it, untouched
	got, err := sut.Get(context.Background(), webSession(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepContact, got.Step)
	assert.Empty(t, got.Email)
}

func TestComplete_OnlyFromPaymentStep(t *testing.T) {
	sut := NewService(newMockRepository(), loadedCart())
	session := startSession(t, sut)

	_, err := sut.Complete(context.Background(), session.ID)
	assert.ErrorIs(t, err, IllegalTransitionError)

	_, err = sut.SubmitContact(context.Background(), webSession(), session.ID, "awa@example.com")
	require.NoError(t, err)
	_, _, err = sut.SubmitShipping(context.Background(), webSession(), session.ID, shipping(), "Carte Bancaire")
	require.NoError(t, err)

	completed, err := sut.Complete(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepConfirmation, completed.Step)
	assert.True(t, completed.Step.IsTerminal())

	// terminal, no further advance
	_, err = sut.Complete(context.Background(), session.ID)
	assert.ErrorIs(t, err, IllegalTransitionError)
}
