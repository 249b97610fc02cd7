// Package sqlite implements storage.Store on top of gorm with a SQLite
// database.
//
// Per-user isolation is enforced by parameterizing every query with the
// owning user id. Paired writes run in a single database transaction.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/budgetfold/backend/internal/models"
	"github.com/budgetfold/backend/internal/storage"
)

type Store struct {
	db *gorm.DB
}

var _ storage.Store = &Store{}

// Open connects to the SQLite database and configures the connection pool.
func Open(dsn string) (*Store, error) {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(models.Envelope{}, models.Transaction{}, models.User{})
	if err != nil {
		return nil, fmt.Errorf("error during DB migration: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// This is done to prevent SQLITE_BUSY errors.
	// If you have ideas how to improve this, you are very welcome to open an issue or a PR. Thank you!
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	// Error normalization callbacks
	err = db.Callback().Query().After("*").Register("budgetfold:after_query", queryCallback)
	if err != nil {
		return nil, err
	}

	err = db.Callback().Query().After("*").Register("budgetfold:after_query_general", generalCallback)
	if err != nil {
		return nil, err
	}

	err = db.Callback().Create().After("*").Register("budgetfold:after_create", createUpdateCallback)
	if err != nil {
		return nil, err
	}

	err = db.Callback().Create().After("*").Register("budgetfold:after_create_general", generalCallback)
	if err != nil {
		return nil, err
	}

	err = db.Callback().Update().After("*").Register("budgetfold:after_update", createUpdateCallback)
	if err != nil {
		return nil, err
	}

	err = db.Callback().Update().After("*").Register("budgetfold:after_update_general", generalCallback)
	if err != nil {
		return nil, err
	}

	err = db.Callback().Delete().After("*").Register("budgetfold:after_delete_general", generalCallback)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and strip the plural "s"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", models.ErrResourceNotFound, name)
	}
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// Email addresses must be unique
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: users.email") {
		db.Error = models.ErrEmailTaken
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		// A general error where we cannot provide more useful information to the end user
		// We log the error and provide a general error message so that server admins can debug
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = models.ErrGeneral

		return
	}
}

func (s *Store) Envelopes(ctx context.Context, userID uint64) ([]models.Envelope, error) {
	envelopes := make([]models.Envelope, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&envelopes).Error

	return envelopes, err
}

func (s *Store) Envelope(ctx context.Context, userID, id uint64) (models.Envelope, error) {
	var envelope models.Envelope
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&envelope).Error

	return envelope, err
}

func (s *Store) CreateEnvelope(ctx context.Context, envelope *models.Envelope) error {
	if err := envelope.Validate(); err != nil {
		return err
	}

	// Id lookup and insert are one unit so that concurrent creates cannot
	// reuse an id.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, &models.Envelope{})
		if err != nil {
			return err
		}

		envelope.ID = id
		return tx.Create(envelope).Error
	})
}

func (s *Store) UpdateEnvelope(ctx context.Context, envelope models.Envelope) (models.Envelope, error) {
	if err := envelope.Validate(); err != nil {
		return models.Envelope{}, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return updateEnvelope(tx, &envelope)
	})

	return envelope, err
}

func (s *Store) UpdateEnvelopePair(ctx context.Context, first, second models.Envelope) (models.Envelope, models.Envelope, error) {
	if err := first.Validate(); err != nil {
		return models.Envelope{}, models.Envelope{}, err
	}
	if err := second.Validate(); err != nil {
		return models.Envelope{}, models.Envelope{}, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateEnvelope(tx, &first); err != nil {
			return err
		}

		return updateEnvelope(tx, &second)
	})
	if err != nil {
		return models.Envelope{}, models.Envelope{}, err
	}

	return first, second, nil
}

func (s *Store) DeleteEnvelope(ctx context.Context, userID, id uint64) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.Envelope{})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w envelope matching your query", models.ErrResourceNotFound)
	}

	return nil
}

func (s *Store) Transactions(ctx context.Context, userID uint64) ([]models.Transaction, error) {
	transactions := make([]models.Transaction, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&transactions).Error

	return transactions, err
}

func (s *Store) Transaction(ctx context.Context, userID, id uint64) (models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&transaction).Error

	return transaction, err
}

func (s *Store) SaveTransactionWithEnvelope(ctx context.Context, transaction *models.Transaction, envelope models.Envelope) (models.Envelope, error) {
	if err := transaction.Validate(); err != nil {
		return models.Envelope{}, err
	}
	if err := envelope.Validate(); err != nil {
		return models.Envelope{}, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if transaction.ID == 0 {
			id, err := nextID(tx, &models.Transaction{})
			if err != nil {
				return err
			}

			transaction.ID = id
			if err := tx.Create(transaction).Error; err != nil {
				return err
			}
		} else {
			var existing models.Transaction
			err := tx.Where("user_id = ? AND id = ?", transaction.UserID, transaction.ID).
				First(&existing).Error
			if err != nil {
				return err
			}

			transaction.CreatedAt = existing.CreatedAt
			if err := tx.Save(transaction).Error; err != nil {
				return err
			}
		}

		return updateEnvelope(tx, &envelope)
	})
	if err != nil {
		return models.Envelope{}, err
	}

	return envelope, nil
}

func (s *Store) DeleteTransactionWithEnvelope(ctx context.Context, userID, id uint64, envelope models.Envelope) (models.Envelope, error) {
	if err := envelope.Validate(); err != nil {
		return models.Envelope{}, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var transaction models.Transaction
		err := tx.Where("user_id = ? AND id = ?", userID, id).
			First(&transaction).Error
		if err != nil {
			return err
		}

		err = tx.Delete(&transaction).Error
		if err != nil {
			return err
		}

		return updateEnvelope(tx, &envelope)
	})
	if err != nil {
		return models.Envelope{}, err
	}

	return envelope, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	return user, err
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Create(user).Error
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// updateEnvelope overwrites an existing envelope record, preserving its
// creation timestamp.
func updateEnvelope(tx *gorm.DB, envelope *models.Envelope) error {
	var existing models.Envelope
	err := tx.Where("user_id = ? AND id = ?", envelope.UserID, envelope.ID).
		First(&existing).Error
	if err != nil {
		return err
	}

	envelope.CreatedAt = existing.CreatedAt
	return tx.Save(envelope).Error
}

// nextID returns the next identifier for the model: the current maximum
// over all users plus one, 1 when the table is empty.
func nextID(tx *gorm.DB, model any) (uint64, error) {
	var maxID uint64
	err := tx.Model(model).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error
	if err != nil {
		return 0, err
	}

	return maxID + 1, nil
}
