package availability

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/facilityhub/facility-rental-app/models"
)

// Store is the persistence contract the scheduling service depends on. The
// gorm-backed implementation is used in production; tests substitute an
// in-memory fake.
type Store interface {
	WeeklySchedule(facilityID uint) ([]models.WeeklySchedule, error)
	ReplaceWeeklySchedule(facilityID uint, rows []models.WeeklySchedule) error
	Exceptions(facilityID uint, from, to time.Time) ([]models.AvailabilityException, error)
	CreateException(exc *models.AvailabilityException) error
	DeleteException(facilityID, exceptionID uint) error
	Config(facilityID uint) (*models.FacilityConfig, error)
	SaveConfig(cfg *models.FacilityConfig) error
}

type gormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm connection in the Store interface.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) WeeklySchedule(facilityID uint) ([]models.WeeklySchedule, error) {
	var rows []models.WeeklySchedule
	if err := s.db.Where("facility_id = ?", facilityID).
		Order("day_of_week ASC, start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch weekly schedule: %w", err)
	}
	return rows, nil
}

// ReplaceWeeklySchedule swaps the facility's entire weekly schedule for the
// given rows. Delete and insert run in one transaction so a failure can
// never leave the facility with an empty schedule.
func (s *gormStore) ReplaceWeeklySchedule(facilityID uint, rows []models.WeeklySchedule) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("facility_id = ?", facilityID).
			Delete(&models.WeeklySchedule{}).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].FacilityID = facilityID
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace weekly schedule for facility %d: %w", facilityID, err)
	}
	return nil
}

func (s *gormStore) Exceptions(facilityID uint, from, to time.Time) ([]models.AvailabilityException, error) {
	var rows []models.AvailabilityException
	if err := s.db.Where("facility_id = ? AND exception_date BETWEEN ? AND ?",
		facilityID, from.Format(DateFormat), to.Format(DateFormat)).
		Order("exception_date ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch exceptions: %w", err)
	}
	return rows, nil
}

func (s *gormStore) CreateException(exc *models.AvailabilityException) error {
	if err := s.db.Create(exc).Error; err != nil {
		return fmt.Errorf("create exception: %w", err)
	}
	return nil
}

func (s *gormStore) DeleteException(facilityID, exceptionID uint) error {
	res := s.db.Where("facility_id = ?", facilityID).
		Delete(&models.AvailabilityException{}, exceptionID)
	if res.Error != nil {
		return fmt.Errorf("delete exception %d: %w", exceptionID, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *gormStore) Config(facilityID uint) (*models.FacilityConfig, error) {
	var cfg models.FacilityConfig
	if err := s.db.Where("facility_id = ?", facilityID).First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *gormStore) SaveConfig(cfg *models.FacilityConfig) error {
	if err := s.db.Save(cfg).Error; err != nil {
		return fmt.Errorf("save availability config: %w", err)
	}
	return nil
}
