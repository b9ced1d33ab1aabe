package postgres

import "github.com/shiftwise/shiftwise/server/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.CalendarEvent{},
}
