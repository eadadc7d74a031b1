package models

import (
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PicturesCollection is the single-file media collection holding a deal's picture.
const PicturesCollection = "pictures"

type Deal struct {
	ID                 uint   `gorm:"primaryKey"`
	Title              string `gorm:"not null" validate:"required,max=255"`
	Slug               string `gorm:"uniqueIndex;not null"`
	Subtitle           string
	Value              decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" validate:"gte=0"`
	Instructions       string          `gorm:"type:text"`
	MultipleItems      bool            `gorm:"not null;default:false"`
	Sil                bool            `gorm:"not null;default:false"`
	Power              int             `gorm:"not null;default:0"`
	AvailableAddresses AddressList     `gorm:"type:text"`
	DealLinks          DealLinks       `gorm:"type:jsonb"`
	CreatedByID        *uint           `gorm:"column:created_by"`
	CreatedBy          *Staff          `gorm:"foreignKey:CreatedByID"`
	AddressID          *uint
	PrimaryAddress     *ShippingAddress `gorm:"foreignKey:AddressID"`
	PublishedAt        *time.Time
	EndsAt             *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`

	DealItems          []DealItem
	DealVendors        []DealVendor
	DealItemQuantities []DealItemQuantity
	DealTags           []DealTag
	Meta               []DealMeta
	Comments           []Comment
	Commitments        []UserCommitment
	OrderDeals         []OrderDeal
	OrderItems         []OrderItem
	ReceivedItems      []ReceivedItem
	Users              []User `gorm:"many2many:deal_user;"`
}

// BeforeCreate derives the slug from the title once. Soft-deleted deals keep
// their slug reserved.
func (deal *Deal) BeforeCreate(tx *gorm.DB) (err error) {
	if deal.Slug != "" {
		return
	}
	base := slug.Make(deal.Title)
	candidate := base
	for i := 1; ; i++ {
		var count int64
		err = tx.Session(&gorm.Session{NewDB: true}).
			Model(&Deal{}).
			Unscoped().
			Where("slug = ?", candidate).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			break
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	deal.Slug = candidate
	return
}

// Power restricts a deal query to rows whose power flag is unset.
func Power(db *gorm.DB) *gorm.DB {
	return db.Where("power = ?", 0)
}

// TopLevelComments restricts a comment query to comments without a parent.
func TopLevelComments(db *gorm.DB) *gorm.DB {
	return db.Where("parent_id IS NULL")
}
