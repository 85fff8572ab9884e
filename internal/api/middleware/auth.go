package middleware

import (
	"net/http"

	"github.com/m04kA/SLN-AppointmentService/internal/api/handlers"
)

// StaffIDHeader заголовок идентификации сотрудника салона
// Аутентификацию выполняет внешний гейтвей; сервис доверяет заголовку
const StaffIDHeader = "X-Staff-ID"

// Auth middleware для служебных маршрутов (управление расписанием,
// просмотр и отмена записей). Требует наличия X-Staff-ID
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(StaffIDHeader) == "" {
			handlers.RespondForbidden(w, "требуется заголовок X-Staff-ID")
			return
		}
		next.ServeHTTP(w, r)
	})
}
