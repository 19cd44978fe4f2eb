package entity

import "time"

// Customer cliente final; los proyectos cuelgan de él.
type Customer struct {
	ID        int64
	Name      string
	Contact   string
	CreatedAt time.Time
}
