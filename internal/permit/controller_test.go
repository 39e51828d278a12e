package permit

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaqiyusuf/gatepass/internal/domain"
	"github.com/zaqiyusuf/gatepass/internal/pricing"
)

// recordingBackend captures submissions so tests can inspect the payload
// and count network calls.
type recordingBackend struct {
	mu      sync.Mutex
	created []*domain.EntryPermit
	updated []*domain.EntryPermit
	err     error
	block   chan struct{} // when set, Create blocks until closed
}

func (b *recordingBackend) CreatePermit(ctx context.Context, p *domain.EntryPermit) (*domain.EntryPermit, error) {
	if b.block != nil {
		<-b.block
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return nil, b.err
	}
	b.created = append(b.created, p)
	saved := *p
	saved.ID = "srv-1"
	return &saved, nil
}

func (b *recordingBackend) UpdatePermit(ctx context.Context, p *domain.EntryPermit) (*domain.EntryPermit, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return nil, b.err
	}
	b.updated = append(b.updated, p)
	return p, nil
}

func (b *recordingBackend) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.created) + len(b.updated)
}

func completeDraft() *Draft {
	d := NewDraft()
	d.DocumentNumber = "DOC-1"
	d.TenantID = "ten-1"
	d.CustomerID = "cus-1"
	return d
}

func TestControllerStartsAtHeader(t *testing.T) {
	c := NewController(NewDraft(), &recordingBackend{})
	assert.Equal(t, StepHeader, c.Step())
}

func TestAdvanceRequiresHeaderFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
		want   string
	}{
		{"missing document number", func(d *Draft) { d.DocumentNumber = "" }, "document number"},
		{"missing tenant", func(d *Draft) { d.TenantID = "" }, "tenant"},
		{"missing customer", func(d *Draft) { d.CustomerID = "" }, "customer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := completeDraft()
			tt.mutate(d)
			c := NewController(d, &recordingBackend{})

			err := c.Advance()
			require.ErrorIs(t, err, ErrDraftIncomplete)
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, StepHeader, c.Step())
		})
	}
}

func TestStepNeverLeavesRange(t *testing.T) {
	c := NewController(completeDraft(), &recordingBackend{})

	// Back at the first step stays at the first step.
	c.Back()
	assert.Equal(t, StepHeader, c.Step())

	for i := 0; i < 10; i++ {
		require.NoError(t, c.Advance())
	}
	assert.Equal(t, StepSummary, c.Step())

	for i := 0; i < 10; i++ {
		c.Back()
	}
	assert.Equal(t, StepHeader, c.Step())
}

func TestEmptyVehicleAndPersonnelListsNeverBlock(t *testing.T) {
	c := NewController(completeDraft(), &recordingBackend{})

	require.NoError(t, c.Advance()) // header -> vehicles
	require.NoError(t, c.Advance()) // vehicles -> personnel, no rows
	require.NoError(t, c.Advance()) // personnel -> summary, no rows
	assert.True(t, c.CanSubmit())
}

func TestSubmitCreatesWithoutID(t *testing.T) {
	backend := &recordingBackend{}
	d := completeDraft()
	d.AddVehicle(domain.VehicleEntry{PlateNumber: "B 1234 XY"})
	d.AddPersonnel(domain.PersonnelEntry{Name: "Sari", IDNumber: "3201"})
	c := NewController(d, backend)

	saved, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "srv-1", saved.ID)

	require.Len(t, backend.created, 1)
	sent := backend.created[0]
	assert.Empty(t, sent.ID)
	assert.Equal(t, "DOC-1", sent.DocumentNumber)
	require.Len(t, sent.Vehicles, 1)
	assert.Equal(t, "B 1234 XY", sent.Vehicles[0].PlateNumber)
	require.Len(t, sent.Personnel, 1)
}

func TestSubmitUpdatesWithID(t *testing.T) {
	backend := &recordingBackend{}
	d := completeDraft()
	d.ID = "perm-9"
	c := NewController(d, backend)

	_, err := c.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, backend.updated, 1)
	assert.Equal(t, "perm-9", backend.updated[0].ID)
	assert.Empty(t, backend.created)
}

func TestSubmitWithEmptyDocumentNumberMakesNoCall(t *testing.T) {
	backend := &recordingBackend{}
	d := completeDraft()
	d.DocumentNumber = ""
	c := NewController(d, backend)

	_, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrDraftIncomplete)
	assert.Zero(t, backend.calls())
}

func TestSecondSubmitWhileRunningIsRejected(t *testing.T) {
	backend := &recordingBackend{block: make(chan struct{})}
	c := NewController(completeDraft(), backend)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := c.Submit(context.Background())
		assert.NoError(t, err)
	}()

	// Wait for the first submission to take the guard.
	for !c.submitting.Load() {
	}
	_, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmitInFlight)

	close(backend.block)
	<-done
}

func TestTotalTracksPersonnelCount(t *testing.T) {
	d := completeDraft()
	c := NewController(d, &recordingBackend{})
	assert.Equal(t, 200000, c.Total())

	d.AddPersonnel(domain.PersonnelEntry{Name: "A"})
	d.AddPersonnel(domain.PersonnelEntry{Name: "B"})
	d.AddPersonnel(domain.PersonnelEntry{Name: "C"})
	assert.Equal(t, 228500, c.Total())

	c.SetRates(pricing.Rates{Base: 100, PerPersonnel: 10})
	assert.Equal(t, 130, c.Total())
}
