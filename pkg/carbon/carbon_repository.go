package carbon

import (
	"context"

	"Receipt-Carbon-Backend/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	CarbonRepository interface {
		// AppendEntry persists a new entry under its user. Returns
		// gorm.ErrRecordNotFound when the user does not exist.
		AppendEntry(ctx context.Context, entry *entities.CarbonEntry) error
		GetUserByID(ctx context.Context, userID string) (*entities.User, error)
		GetEntriesNewestFirst(ctx context.Context, userID string) ([]*entities.CarbonEntry, error)
		GetEntriesChronological(ctx context.Context, userID string) ([]*entities.CarbonEntry, error)

		GetReceiptImageByKey(ctx context.Context, objectKey string) (*entities.ReceiptImage, error)
		CreateReceiptImage(ctx context.Context, image *entities.ReceiptImage) error
	}

	carbonRepository struct {
		db *gorm.DB
	}
)

func NewCarbonRepository(db *gorm.DB) CarbonRepository {
	return &carbonRepository{db: db}
}

func (r *carbonRepository) AppendEntry(ctx context.Context, entry *entities.CarbonEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Row lock on the user serializes concurrent appends to one
		// user's history, so simultaneous uploads never lose an entry.
		var user entities.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", entry.UserID).
			First(&user).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (r *carbonRepository) GetUserByID(ctx context.Context, userID string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *carbonRepository) GetEntriesNewestFirst(ctx context.Context, userID string) ([]*entities.CarbonEntry, error) {
	var entries []*entities.CarbonEntry
	if err := r.db.WithContext(ctx).
		Preload("FoodItems").
		Preload("ShoppingItems").
		Preload("TravelItems").
		Where("user_id = ?", userID).
		Order("uploaded_at desc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *carbonRepository) GetEntriesChronological(ctx context.Context, userID string) ([]*entities.CarbonEntry, error) {
	var entries []*entities.CarbonEntry
	if err := r.db.WithContext(ctx).
		Preload("FoodItems").
		Preload("ShoppingItems").
		Preload("TravelItems").
		Where("user_id = ?", userID).
		Order("uploaded_at asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *carbonRepository) GetReceiptImageByKey(ctx context.Context, objectKey string) (*entities.ReceiptImage, error) {
	var image entities.ReceiptImage
	if err := r.db.WithContext(ctx).Where("object_key = ?", objectKey).First(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *carbonRepository) CreateReceiptImage(ctx context.Context, image *entities.ReceiptImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}
