package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// kmsService resolves keepers by URI scheme: gcpkms://, awskms://, azurekeyvault://,
// hashivault:// and base64key:// for local keys.
type kmsService struct{}

// NewKMSService returns a KMSService backed by gocloud.dev/secrets.
func NewKMSService() KMSService {
	return &kmsService{}
}

func withKeeper(ctx context.Context, keyURI string, fn func(*secrets.Keeper) error) error {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() { _ = keeper.Close() }()
	return fn(keeper)
}

func (k *kmsService) EncryptSecret(ctx context.Context, keyURI string, plaintext []byte) (string, error) {
	var sealed []byte
	err := withKeeper(ctx, keyURI, func(keeper *secrets.Keeper) error {
		var err error
		if sealed, err = keeper.Encrypt(ctx, plaintext); err != nil {
			return fmt.Errorf("failed to encrypt secret: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (k *kmsService) DecryptSecret(ctx context.Context, keyURI string, ciphertext string) ([]byte, error) {
	sealed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	var plaintext []byte
	err = withKeeper(ctx, keyURI, func(keeper *secrets.Keeper) error {
		var err error
		if plaintext, err = keeper.Decrypt(ctx, sealed); err != nil {
			return fmt.Errorf("failed to decrypt secret: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}
