// Package model contains the persisted entities of the clinic queue service.
package model

// All returns every model in dependency order, for migrations.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Service{},
		&UserDetail{},
		&Customer{},
		&QueueEntry{},
	}
}
