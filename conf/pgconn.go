package conf

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretGetter is satisfied by *secretsmanager.Client.
type SecretGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// PgURL returns a postgres:// connection URL. Outside localhost the
// password comes from AWS Secrets Manager.
func (p Postgres) PgURL(ctx context.Context, awsRegion string) (string, error) {
	pw := p.Password
	if p.Host != "localhost" && p.PasswordSecretName != "" {
		cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
		if err != nil {
			return "", fmt.Errorf("failed to load aws config: %w", err)
		}
		pw, err = p.passwordFromSecret(ctx, secretsmanager.NewFromConfig(cfg))
		if err != nil {
			return "", err
		}
	}
	return p.url(pw), nil
}

func (p Postgres) url(pw string) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, pw),
		Host:   net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:   "/" + p.DB,
	}
	q := url.Values{}
	q.Set("sslmode", p.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

func (p Postgres) passwordFromSecret(ctx context.Context, sm SecretGetter) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	out, err := sm.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(p.PasswordSecretName),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get postgres password from AWS: %w", err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", p.PasswordSecretName)
	}

	var secret struct {
		Password string `json:"password"`
	}
	if err := json.Unmarshal([]byte(*out.SecretString), &secret); err != nil {
		return "", fmt.Errorf("failed to parse postgres password secret: %w", err)
	}
	return secret.Password, nil
}
