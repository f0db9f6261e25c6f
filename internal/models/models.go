package models

// All returns every model for migrations.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Technology{},
		&Project{},
		&Skill{},
		&Experience{},
		&ContactMessage{},
	}
}
