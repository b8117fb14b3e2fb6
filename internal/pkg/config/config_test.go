package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	err := InitConfig()
	require.NoError(t, err, "cannot init config")

	config := Get()
	require.NotNil(t, config)

	assert.Equal(t, 40, config.InitialBatchSize)
	assert.Equal(t, 40, config.BatchSize)
	assert.Equal(t, 400.0, config.ProximityThreshold)
	assert.Equal(t, 3, config.MaxConcurrentLoads)
	assert.Equal(t, 2, config.RetryLimit)
	assert.Equal(t, time.Second, config.RetryDelay)
	assert.Equal(t, "127.0.0.1:8000", config.ServeAddress)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "zero values are legal", config: Config{}},
		{name: "negative batch size", config: Config{BatchSize: -1}, wantErr: true},
		{name: "negative retry limit", config: Config{RetryLimit: -1}, wantErr: true},
		{name: "negative retry delay", config: Config{RetryDelay: -time.Second}, wantErr: true},
		{name: "negative threshold", config: Config{ProximityThreshold: -5}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHandleFlagsEdgeCases(t *testing.T) {
	viper.Set("live-stats", true)
	viper.Set("prometheus", true)
	defer func() {
		viper.Set("live-stats", false)
		viper.Set("prometheus", false)
		viper.Set("no-stdout-log", false)
		viper.Set("api", false)
	}()

	handleFlagsEdgeCases()

	assert.True(t, viper.GetBool("no-stdout-log"))
	assert.True(t, viper.GetBool("api"))
}
