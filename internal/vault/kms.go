package vault

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"errors"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	kmstypes "github.com/aws/aws-sdk-go-v2/service/kms/types"
	"github.com/aws/smithy-go"
	"github.com/tagreel/videos-ms-go/internal/port"
)

const gcmNonceSize = 12

type kmsClient interface {
	Decrypt(ctx context.Context, params *kms.DecryptInput, optFns ...func(*kms.Options)) (*kms.DecryptOutput, error)
}

// KMSDecrypter opens envelope-encrypted platform credentials: the key
// management service decrypts the data key, AES-GCM opens the payload.
type KMSDecrypter struct {
	client kmsClient
}

// compile-time check: *KMSDecrypter must satisfy port.CredentialDecrypter
var _ port.CredentialDecrypter = (*KMSDecrypter)(nil)

func NewKMSDecrypter(ctx context.Context, region string) (*KMSDecrypter, error) {
	log.Println("initialising kms client...")
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("could not load AWS config: %w", err)
	}
	return &KMSDecrypter{client: kms.NewFromConfig(cfg)}, nil
}

// Decrypt opens a stored credential blob. Blob layout:
// 2-byte big-endian data key length, encrypted data key, 12-byte nonce,
// AES-GCM ciphertext.
func (d *KMSDecrypter) Decrypt(ctx context.Context, blob []byte) (string, error) {
	encKey, nonce, ciphertext, err := splitBlob(blob)
	if err != nil {
		return "", fmt.Errorf("%w: %v", port.ErrPermanent, err)
	}

	out, err := d.client.Decrypt(ctx, &kms.DecryptInput{CiphertextBlob: encKey})
	if err != nil {
		return "", classifyKMSErr(err)
	}

	block, err := aes.NewCipher(out.Plaintext)
	if err != nil {
		return "", fmt.Errorf("%w: bad data key: %v", port.ErrPermanent, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("%w: %v", port.ErrPermanent, err)
	}
	token, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: credential does not open: %v", port.ErrPermanent, err)
	}
	return string(token), nil
}

func splitBlob(blob []byte) (encKey, nonce, ciphertext []byte, err error) {
	if len(blob) < 2 {
		return nil, nil, nil, errors.New("credential blob too short")
	}
	keyLen := int(binary.BigEndian.Uint16(blob))
	rest := blob[2:]
	if len(rest) < keyLen+gcmNonceSize+1 {
		return nil, nil, nil, errors.New("credential blob truncated")
	}
	encKey = rest[:keyLen]
	nonce = rest[keyLen : keyLen+gcmNonceSize]
	ciphertext = rest[keyLen+gcmNonceSize:]
	return encKey, nonce, ciphertext, nil
}

// classifyKMSErr separates configuration errors, which retrying cannot fix,
// from service outages, which the queue is allowed to retry.
func classifyKMSErr(err error) error {
	var notFound *kmstypes.NotFoundException
	var invalid *kmstypes.InvalidCiphertextException
	var disabled *kmstypes.DisabledException
	var wrongKey *kmstypes.IncorrectKeyException
	if errors.As(err, &notFound) || errors.As(err, &invalid) || errors.As(err, &disabled) || errors.As(err, &wrongKey) {
		return fmt.Errorf("%w: %v", port.ErrPermanent, err)
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "AccessDeniedException" {
		return fmt.Errorf("%w: %v", port.ErrPermanent, err)
	}
	return fmt.Errorf("kms decrypt failed: %w", err)
}
