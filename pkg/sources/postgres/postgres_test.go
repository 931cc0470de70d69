package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/datavis/pkg/source"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  source.Config
		want string
	}{
		{
			name: "defaults",
			cfg:  source.Config{Database: "charts"},
			want: "host=localhost port=5432 dbname=charts sslmode=disable",
		},
		{
			name: "credentials and sslmode",
			cfg: source.Config{
				Host:     "db.internal",
				Port:     6543,
				Database: "charts",
				Username: "viewer",
				Password: "s3cret",
				Options:  map[string]string{"sslmode": "require"},
			},
			want: "host=db.internal port=6543 dbname=charts sslmode=require user=viewer password=s3cret",
		},
		{
			name: "quoted password",
			cfg:  source.Config{Database: "charts", Password: "it's a pass"},
			want: `host=localhost port=5432 dbname=charts sslmode=disable password='it\'s a pass'`,
		},
		{
			name: "empty database",
			cfg:  source.Config{},
			want: "host=localhost port=5432 dbname='' sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildDSN(tt.cfg))
		})
	}
}

func TestSource_OpenRequiresQueryOrTable(t *testing.T) {
	err := New(nil).Open(context.Background(), source.Config{Database: "charts"})
	assert.ErrorContains(t, err, "either query or table")
}

func TestRegistered(t *testing.T) {
	assert.True(t, source.IsRegistered(Name))
}
