package carbon

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"Receipt-Carbon-Backend/domain"
	"Receipt-Carbon-Backend/entities"
	"Receipt-Carbon-Backend/internal/utils/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const receiptFolder = "receipts"

type (
	StoredImage struct {
		ObjectKey string
		URL       string
		Existed   bool
	}

	// ContentStore stores receipt images idempotently: identical bytes map
	// to the same object key, so a re-upload resolves to the existing URL
	// without touching the remote store again.
	ContentStore interface {
		StoreOrLookup(ctx context.Context, data []byte, fileStem string, contentType string) (StoredImage, error)
	}

	s3ContentStore struct {
		s3     storage.AwsS3
		images CarbonRepository
	}
)

func NewContentStore(s3 storage.AwsS3, images CarbonRepository) ContentStore {
	return &s3ContentStore{s3: s3, images: images}
}

// StoreOrLookup keys the object by a SHA-256 digest of the image bytes. The
// uploaded filename is a weak dedup key (collides across users, misses
// across renames); the digest is not. A "not found" on lookup is the normal
// upload path, any other failure is a storage error.
func (s *s3ContentStore) StoreOrLookup(ctx context.Context, data []byte, fileStem string, contentType string) (StoredImage, error) {
	if len(data) == 0 {
		return StoredImage{}, domain.ErrEmptyImagePayload
	}

	digest := sha256.Sum256(data)
	objectKey := fmt.Sprintf("%s/%s", receiptFolder, hex.EncodeToString(digest[:]))

	image, err := s.images.GetReceiptImageByKey(ctx, objectKey)
	if err == nil {
		return StoredImage{ObjectKey: objectKey, URL: image.ImageURL, Existed: true}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return StoredImage{}, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}

	// The row can be missing while the object exists (restored database,
	// prior partial failure); the head call keeps the upload idempotent
	// either way.
	exists, err := s.s3.ObjectExists(ctx, objectKey)
	if err != nil {
		return StoredImage{}, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}

	if !exists {
		if _, err := s.s3.UploadBytes(ctx, objectKey, data, contentType); err != nil {
			return StoredImage{}, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
		}
	}

	url := s.s3.GetPublicLinkKey(objectKey)
	record := &entities.ReceiptImage{
		ID:        uuid.New(),
		ObjectKey: objectKey,
		ImageURL:  url,
		FileStem:  fileStem,
	}
	if err := s.images.CreateReceiptImage(ctx, record); err != nil {
		// A concurrent upload of the same bytes can win the insert race on
		// object_key between our lookup and this create; the row it wrote is
		// the answer, not a failure.
		if existing, lookupErr := s.images.GetReceiptImageByKey(ctx, objectKey); lookupErr == nil {
			return StoredImage{ObjectKey: objectKey, URL: existing.ImageURL, Existed: true}, nil
		}
		return StoredImage{}, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}

	return StoredImage{ObjectKey: objectKey, URL: url, Existed: exists}, nil
}
