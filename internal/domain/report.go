package domain

import "time"

// IngestReport — итог одного прогона пайплайна импорта.
type IngestReport struct {
	RunID      string // uuid прогона
	Collection string
	Inserted   int // точек записано в хранилище
	Skipped    int // записей пропущено (fetch/encode)
	Failed     int // точек потеряно из-за сбоев батчей
	StartedAt  time.Time
	FinishedAt time.Time
}
