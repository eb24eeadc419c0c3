package mock

import (
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/finance-tracker/tracker/config"
	"github.com/finance-tracker/tracker/internal/infra/db"
)

var once sync.Once
var database *Db

type Db struct {
	DbConn *gorm.DB
	conn   *db.Database
	models map[string]any
}

// NewDb opens a shared in-memory SQLite database migrated with the
// application schema. models maps table names to their GORM models.
func NewDb(models map[string]any) *Db {
	if database == nil {
		once.Do(
			func() {
				database = open(models)
			},
		)
	}

	return database
}

func open(models map[string]any) *Db {
	conn, err := db.NewConnection(&config.DatabaseConfig{
		Driver: db.DriverSQLite,
		URL:    "file::memory:?cache=shared",
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	if err := conn.Migrate(); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	newDbMock := &Db{
		DbConn: conn.DB(),
		conn:   conn,
		models: models,
	}

	if err := newDbMock.checkTables(); err != nil {
		panic(err)
	}

	return newDbMock
}

// Database returns the wrapped connection, for health checks.
func (d *Db) Database() *db.Database {
	return d.conn
}

// ClearDB removes every row from the known tables.
func (d *Db) ClearDB() error {
	for table, model := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}

		err = d.DbConn.Exec("DELETE FROM sqlite_sequence WHERE name = ?", table).Error
		if err != nil && !strings.Contains(err.Error(), "no such table: sqlite_sequence") {
			return err
		}
	}

	return nil
}

func (d *Db) checkTables() error {
	for table, model := range d.models {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table %s for model %T was not created", table, model)
		}
	}

	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
