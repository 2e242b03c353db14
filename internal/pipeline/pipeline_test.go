package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// -- Mocks --

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) Run(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newRunner(t *testing.T, catalog, activity *serviceMock) *Runner {
	t.Helper()
	r, err := New(Params{Log: zap.NewNop(), Catalog: catalog, Activity: activity})
	require.NoError(t, err)
	return r
}

// -- Tests --

func TestNew_RequiresAllDependencies(t *testing.T) {
	_, err := New(Params{Log: zap.NewNop()})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRun_CatalogCompletesBeforeActivity(t *testing.T) {
	var order []string
	catalog := &serviceMock{}
	catalog.On("Run", mock.Anything).Run(func(mock.Arguments) {
		order = append(order, "catalog")
	}).Return(nil)
	activity := &serviceMock{}
	activity.On("Run", mock.Anything).Run(func(mock.Arguments) {
		order = append(order, "activity")
	}).Return(nil)

	err := newRunner(t, catalog, activity).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"catalog", "activity"}, order,
		"the songs table must be durable before the fact step starts")
}

func TestRun_CatalogFailureAbortsRun(t *testing.T) {
	wantErr := errors.New("destination unwritable")
	catalog := &serviceMock{}
	catalog.On("Run", mock.Anything).Return(wantErr)
	activity := &serviceMock{}

	err := newRunner(t, catalog, activity).Run(context.Background())
	assert.ErrorIs(t, err, wantErr)
	activity.AssertNotCalled(t, "Run", mock.Anything)
}

func TestRun_ActivityFailurePropagates(t *testing.T) {
	wantErr := errors.New("songs table unreadable")
	catalog := &serviceMock{}
	catalog.On("Run", mock.Anything).Return(nil)
	activity := &serviceMock{}
	activity.On("Run", mock.Anything).Return(wantErr)

	err := newRunner(t, catalog, activity).Run(context.Background())
	assert.ErrorIs(t, err, wantErr)
}
