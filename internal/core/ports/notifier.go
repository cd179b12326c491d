package ports

// Notifier surfaces user-facing notifications, the equivalent of toasts.
//
//go:generate go run go.uber.org/mock/mockgen -source=notifier.go -destination=mocks/mock_notifier.go -package=mocks
type Notifier interface {
	Success(msg string)
	Error(title, msg string)
}

// Navigator moves the user to an application route.
type Navigator interface {
	Navigate(route string)
}
