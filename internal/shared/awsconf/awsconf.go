package awsconf

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Options selects the region and, optionally, static credentials.
type Options struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// Load resolves an aws.Config. Static credentials are used only when both halves are set;
// otherwise the default provider chain applies.
func Load(ctx context.Context, opts Options) (aws.Config, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region := strings.TrimSpace(opts.Region); region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	if provider, ok := staticProvider(opts); ok {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(provider))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

func staticProvider(opts Options) (aws.CredentialsProvider, bool) {
	id := strings.TrimSpace(opts.AccessKeyID)
	secret := strings.TrimSpace(opts.SecretAccessKey)
	if id == "" || secret == "" {
		return nil, false
	}
	return aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(id, secret, "")), true
}
