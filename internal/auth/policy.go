package auth

// Action защищённое действие над ресурсами системы
type Action string

const (
	ActionManageFields         Action = "fields.manage"
	ActionListAllReservations  Action = "reservations.list_all"
	ActionSetReservationStatus Action = "reservations.set_status"
	ActionDeleteReservation    Action = "reservations.delete"
	ActionCancelReservation    Action = "reservations.cancel"
	ActionListUsers            Action = "users.list"
)

// Allow единая точка проверки прав: роль + владение ресурсом + действие.
// Администратору разрешено всё, обычному пользователю — только отмена
// собственной брони.
func Allow(identity Identity, isOwner bool, action Action) bool {
	if identity.IsAdmin() {
		return true
	}
	switch action {
	case ActionCancelReservation:
		return isOwner
	}
	return false
}
