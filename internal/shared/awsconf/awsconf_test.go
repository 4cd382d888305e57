package awsconf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProviderRequiresBothHalves(t *testing.T) {
	_, ok := staticProvider(Options{AccessKeyID: "AKID"})
	assert.False(t, ok)

	_, ok = staticProvider(Options{SecretAccessKey: "SECRET"})
	assert.False(t, ok)

	provider, ok := staticProvider(Options{AccessKeyID: "AKID", SecretAccessKey: "SECRET"})
	require.True(t, ok)

	creds, err := provider.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKID", creds.AccessKeyID)
	assert.Equal(t, "SECRET", creds.SecretAccessKey)
}

func TestLoadUsesRegionAndStaticCredentials(t *testing.T) {

	cfg, err := Load(context.Background(), Options{
		Region:          "eu-west-1",
		AccessKeyID:     "AKID",
		SecretAccessKey: "SECRET",
	})
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.Region)

	creds, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKID", creds.AccessKeyID)
}
