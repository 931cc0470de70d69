package layout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/datavis/internal/testutil"
	"github.com/leapstack-labs/datavis/pkg/dataset"
	"github.com/leapstack-labs/datavis/pkg/rbf"
)

type panickingFitter struct{}

func (panickingFitter) Fit([][2]float64, []float64, rbf.Options) (rbf.Evaluator, error) {
	panic("fitter exploded")
}

func TestEngine_Create(t *testing.T) {
	engine := NewEngine(testutil.NewTestLogger(t))
	ds := load(t, testutil.CategoricalTable())

	req, err := NewRequest(KindPie)
	require.NoError(t, err)

	res := engine.Create(context.Background(), ds, req)
	require.True(t, res.Finished(), res.Reason)
	assert.Equal(t, "FINISHED", res.Status.String())
	assert.NotNil(t, res.Spec)
	assert.Empty(t, res.Reason)
}

func TestEngine_CreateCancelled(t *testing.T) {
	engine := NewEngine(testutil.NewTestLogger(t))

	invalid, _ := dataset.Load(dataset.RawTable{{"a"}}, dataset.Options{})
	surface, err := NewRequest(KindSurface)
	require.NoError(t, err)
	crashing := &SurfaceRequest{Common: DefaultCommon(), Density: 3, Fitter: panickingFitter{}}

	tests := []struct {
		name   string
		ds     *dataset.Dataset
		req    Request
		reason string
	}{
		{"no dataset", nil, surface, "no dataset loaded"},
		{"invalid dataset", invalid, surface, "dataset is invalid"},
		{"unavailable chart", load(t, testutil.CategoricalTable()), surface, "surface chart is not available"},
		{"nil request", load(t, testutil.CategoricalTable()), nil, "request"},
		{"panic", load(t, testutil.NumericalTable3D()), crashing, "fitter exploded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := engine.Create(context.Background(), tt.ds, tt.req)
			assert.Equal(t, StatusCancelled, res.Status)
			assert.Nil(t, res.Spec)
			assert.Contains(t, res.Reason, tt.reason)
			assert.Error(t, res.Err)
		})
	}
}
