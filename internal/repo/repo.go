package repo

import "gorm.io/gorm"

type GormRepo struct {
	DB *gorm.DB
}

// All means no limit for list queries.
const All = -1
