package i

// Logger is the component-tagged logger every service receives.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}
