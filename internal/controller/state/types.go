package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Состояния диалога ввода контактов
	StateContactPhone UserState = "contact_phone"
	StateContactEmail UserState = "contact_email"

	// Состояния админского диалога генерации слотов
	StateGenerateDates    UserState = "generate_dates"
	StateGenerateHours    UserState = "generate_hours"
	StateGenerateWeekdays UserState = "generate_weekdays"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога
}
