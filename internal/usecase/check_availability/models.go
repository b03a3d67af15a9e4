package check_availability

import "time"

// Request запрос проверки доступности слота
type Request struct {
	Date       time.Time
	TimeSlotID int64
	Children   int
}

// Result решение калькулятора доступности
type Result struct {
	Available   bool
	Remaining   int
	MaxCapacity int
	Reason      string
}

// Response ответ use case
type Response struct {
	Date       time.Time
	TimeSlotID int64
	Result
}

// DayRequest занятость всех слотов на дату
type DayRequest struct {
	Date time.Time
}

// SlotInfo остаток по одному слоту
type SlotInfo struct {
	TimeSlotID  int64
	StartTime   string
	EndTime     string
	MaxCapacity int
	Booked      int
	Remaining   int
}

// DayResponse ответ по дню; при выходном Closed=true и слоты пустые
type DayResponse struct {
	Date   time.Time
	Closed bool
	Reason string
	Slots  []SlotInfo
}
