package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates every table the application touches.
// Row models are private to this package, so migration lives here too.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&planManagerModel{},
		&planManagerHistoryModel{},
		&customerModel{},
		&ledgerModel{},
		&priceModel{},
		&subscriptionModel{},
		&paymentModel{},
	)
}
